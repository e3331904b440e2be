package results

import (
	"fmt"
	"time"

	"github.com/wedkarski/competitions-api/internal/domain/catalog"
)

// FormatValue renders a ranking value with its unit suffix. Time-of-catch
// values are unix seconds and render as a wall-clock time in UTC.
func FormatValue(metric catalog.Metric, value float64) string {
	switch metric {
	case catalog.LengthCm:
		return fmt.Sprintf("%.1f cm", value)
	case catalog.WeightKg:
		return fmt.Sprintf("%.2f kg", value)
	case catalog.FishCount:
		return fmt.Sprintf("%.0f szt.", value)
	case catalog.SpeciesVariety:
		return fmt.Sprintf("%.0f gatunków", value)
	case catalog.TimeOfCatch:
		return time.Unix(int64(value), 0).UTC().Format("15:04:05")
	default:
		return fmt.Sprintf("%g", value)
	}
}
