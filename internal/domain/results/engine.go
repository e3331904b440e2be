package results

import (
	"sort"

	"github.com/google/uuid"

	"github.com/wedkarski/competitions-api/internal/domain/catalog"
	"github.com/wedkarski/competitions-api/internal/domain/competition"
)

// Compute recalculates every enabled leaderboard from the current snapshot.
// speciesNames is an optional display lookup; a nil map only blanks the
// species names on best catches.
//
// Sector mode is detected from the snapshot itself: one approved competitor
// with a non-blank sector flips the whole computation into per-sector
// partitioning. Approved competitors without a sector are then excluded from
// every sector's results; that mirrors the published behavior and is pinned
// by tests rather than corrected here.
func Compute(c *competition.Competition, speciesNames map[uuid.UUID]string) *CompetitionResults {
	out := &CompetitionResults{
		CompetitionID:   c.ID,
		CompetitionName: c.Name,
	}

	competitors := c.ApprovedCompetitors()
	categories := enabledCategories(c)

	for _, p := range competitors {
		if p.HasSector() {
			out.UsesSectors = true
			break
		}
	}

	if !out.UsesSectors {
		out.Categories = computeCategories(c, categories, competitors, speciesNames)
		return out
	}

	for _, sector := range distinctSectors(competitors) {
		var scope []*competition.Participant
		for _, p := range competitors {
			if p.HasSector() && *p.Sector == sector {
				scope = append(scope, p)
			}
		}
		out.Sectors = append(out.Sectors, SectorResults{
			Sector:     sector,
			Categories: computeCategories(c, categories, scope, speciesNames),
		})
	}

	return out
}

// enabledCategories returns the enabled bindings ordered by sort order
func enabledCategories(c *competition.Competition) []*competition.Category {
	var out []*competition.Category
	for i := range c.Categories {
		if c.Categories[i].Enabled {
			out = append(out, &c.Categories[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortOrder < out[j].SortOrder
	})
	return out
}

// distinctSectors returns the sorted distinct non-blank sector labels
func distinctSectors(competitors []*competition.Participant) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range competitors {
		if !p.HasSector() {
			continue
		}
		if _, ok := seen[*p.Sector]; ok {
			continue
		}
		seen[*p.Sector] = struct{}{}
		out = append(out, *p.Sector)
	}
	sort.Strings(out)
	return out
}

func computeCategories(c *competition.Competition, categories []*competition.Category, scope []*competition.Participant, speciesNames map[uuid.UUID]string) []CategoryResult {
	out := make([]CategoryResult, 0, len(categories))
	for _, cat := range categories {
		out = append(out, computeCategory(c, cat, scope, speciesNames))
	}
	return out
}

func computeCategory(c *competition.Competition, cat *competition.Category, scope []*competition.Participant, speciesNames map[uuid.UUID]string) CategoryResult {
	def := cat.Definition
	result := CategoryResult{
		CategoryID:    cat.ID,
		Name:          cat.DisplayName(),
		Description:   cat.DisplayDescription(),
		Type:          def.Type,
		Logic:         def.Logic,
		Metric:        def.Metric,
		Primary:       cat.Primary,
		NotComputable: def.EntityType == catalog.ParticipantProfile || def.Logic == catalog.ManualAssignment,
	}

	entries := make([]Entry, 0, len(scope))
	for _, p := range scope {
		entries = append(entries, computeEntry(c, cat, p, speciesNames))
	}

	sortEntries(def.Logic, entries)
	assignPositions(entries)

	// Take(max(cap, count)): the configured cap can only ever widen the
	// list, so nothing is truncated in practice. Preserved until product
	// decides whether min was intended.
	keep := max(cat.MaxWinners, len(entries))
	result.Entries = entries[:min(keep, len(entries))]
	return result
}

// computeEntry scores one participant in one category. A participant with no
// scorable catches still gets a zero-valued entry so the ranking lists the
// whole field.
func computeEntry(c *competition.Competition, cat *competition.Category, p *competition.Participant, speciesNames map[uuid.UUID]string) Entry {
	def := cat.Definition
	entry := Entry{
		ParticipantID: p.ID,
		Name:          p.Name,
		Sector:        p.Sector,
		Stand:         p.Stand,
	}

	if def.EntityType == catalog.ParticipantProfile {
		entry.DisplayValue = FormatValue(def.Metric, 0)
		return entry
	}

	filtered := filterCatches(c.CatchesByParticipant(p.ID), cat.SpeciesFilterID, def.Metric)
	if len(filtered) == 0 {
		entry.DisplayValue = FormatValue(def.Metric, 0)
		return entry
	}

	entry.CatchCount = len(filtered)

	var best *competition.Catch
	switch def.EntityType {
	case catalog.ParticipantAggregateCatches:
		entry.Value = aggregateValue(def.Metric, filtered)
		best = displayBest(def.Metric, filtered)
	default:
		best = selectCatch(def.Logic, def.Metric, filtered)
		entry.Value = metricValue(def.Metric, best)
	}

	entry.DisplayValue = FormatValue(def.Metric, entry.Value)
	entry.BestCatch = summarize(best, speciesNames)
	return entry
}

func summarize(c *competition.Catch, speciesNames map[uuid.UUID]string) *CatchSummary {
	if c == nil {
		return nil
	}
	s := &CatchSummary{
		CatchID:   c.ID,
		SpeciesID: c.SpeciesID,
		CaughtAt:  c.CaughtAt,
		LengthCm:  c.LengthCm(),
		WeightKg:  c.WeightKg(),
	}
	if c.SpeciesID != nil {
		s.SpeciesName = speciesNames[*c.SpeciesID]
	}
	return s
}

// sortEntries orders a leaderboard by the category's calculation logic.
// Name ascending breaks value ties; occurrence-based categories order by the
// winning catch timestamp with missing timestamps sorting last.
func sortEntries(logic catalog.CalculationLogic, entries []Entry) {
	switch logic {
	case catalog.MinValue:
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].Value != entries[j].Value {
				return entries[i].Value < entries[j].Value
			}
			return entries[i].Name < entries[j].Name
		})
	case catalog.FirstOccurrence:
		sort.SliceStable(entries, func(i, j int) bool {
			ti, tj := entries[i].BestCatch, entries[j].BestCatch
			if ti == nil || tj == nil {
				return ti != nil
			}
			if !ti.CaughtAt.Equal(tj.CaughtAt) {
				return ti.CaughtAt.Before(tj.CaughtAt)
			}
			return entries[i].Name < entries[j].Name
		})
	case catalog.LastOccurrence:
		sort.SliceStable(entries, func(i, j int) bool {
			ti, tj := entries[i].BestCatch, entries[j].BestCatch
			if ti == nil || tj == nil {
				return ti != nil
			}
			if !ti.CaughtAt.Equal(tj.CaughtAt) {
				return ti.CaughtAt.After(tj.CaughtAt)
			}
			return entries[i].Name < entries[j].Name
		})
	default:
		// MaxValue, SumValue and everything else: value descending
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].Value != entries[j].Value {
				return entries[i].Value > entries[j].Value
			}
			return entries[i].Name < entries[j].Name
		})
	}
}

// assignPositions applies competition ranking with gaps: an entry sharing
// the previous entry's value shares its position, otherwise it takes
// index+1. Values [5,5,3] rank as [1,1,3].
func assignPositions(entries []Entry) {
	for i := range entries {
		if i == 0 || entries[i].Value != entries[i-1].Value {
			entries[i].Position = i + 1
		} else {
			entries[i].Position = entries[i-1].Position
		}
	}
}
