package results

import (
	"github.com/google/uuid"

	"github.com/wedkarski/competitions-api/internal/domain/catalog"
	"github.com/wedkarski/competitions-api/internal/domain/competition"
)

// The scoring strategy space is the cross product of CalculationLogic,
// Metric and EntityType. Instead of one large conditional it is composed
// from three small pure functions: filterCatches narrows the candidate set,
// metricValue extracts one number from one catch, and selectCatch /
// aggregateValue pick or fold the winning value per entity type.

// filterCatches keeps the catches a category may score: species-filtered
// when the binding restricts to one species, then metric-filtered so that
// length-scored categories only see measured lengths and weight-scored
// categories only measured weights.
func filterCatches(catches []*competition.Catch, speciesFilter *uuid.UUID, metric catalog.Metric) []*competition.Catch {
	var out []*competition.Catch
	for _, c := range catches {
		if speciesFilter != nil {
			if c.SpeciesID == nil || *c.SpeciesID != *speciesFilter {
				continue
			}
		}
		switch metric {
		case catalog.LengthCm:
			if !c.HasLength() {
				continue
			}
		case catalog.WeightKg:
			if !c.HasWeight() {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// metricValue extracts the numeric value of a single catch under a metric
func metricValue(metric catalog.Metric, c *competition.Catch) float64 {
	switch metric {
	case catalog.LengthCm:
		return c.LengthCm()
	case catalog.WeightKg:
		return c.WeightKg()
	case catalog.FishCount:
		return 1
	case catalog.TimeOfCatch:
		return float64(c.CaughtAt.Unix())
	default:
		return 0
	}
}

// selectCatch picks the single scoring catch for FishCatch categories. Ties
// resolve to the first catch encountered.
func selectCatch(logic catalog.CalculationLogic, metric catalog.Metric, catches []*competition.Catch) *competition.Catch {
	best := catches[0]
	switch logic {
	case catalog.MaxValue:
		for _, c := range catches[1:] {
			if metricValue(metric, c) > metricValue(metric, best) {
				best = c
			}
		}
	case catalog.MinValue:
		for _, c := range catches[1:] {
			if metricValue(metric, c) < metricValue(metric, best) {
				best = c
			}
		}
	case catalog.FirstOccurrence:
		for _, c := range catches[1:] {
			if c.CaughtAt.Before(best.CaughtAt) {
				best = c
			}
		}
	case catalog.LastOccurrence:
		for _, c := range catches[1:] {
			if c.CaughtAt.After(best.CaughtAt) {
				best = c
			}
		}
	}
	return best
}

// aggregateValue folds all filtered catches into one value for
// ParticipantAggregateCatches categories
func aggregateValue(metric catalog.Metric, catches []*competition.Catch) float64 {
	switch metric {
	case catalog.LengthCm:
		var sum float64
		for _, c := range catches {
			sum += c.LengthCm()
		}
		return sum
	case catalog.WeightKg:
		var sum float64
		for _, c := range catches {
			sum += c.WeightKg()
		}
		return sum
	case catalog.FishCount:
		return float64(len(catches))
	case catalog.SpeciesVariety:
		species := make(map[uuid.UUID]struct{})
		for _, c := range catches {
			if c.SpeciesID != nil {
				species[*c.SpeciesID] = struct{}{}
			}
		}
		return float64(len(species))
	default:
		return 0
	}
}

// displayBest returns the per-metric maximum catch, used as the display-only
// best catch of aggregate categories
func displayBest(metric catalog.Metric, catches []*competition.Catch) *competition.Catch {
	best := catches[0]
	for _, c := range catches[1:] {
		if metricValue(metric, c) > metricValue(metric, best) {
			best = c
		}
	}
	return best
}
