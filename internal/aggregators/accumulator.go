package aggregators

import (
	"slices"

	"log-analyzer/internal/models"
)

// Accumulator folds log entries into per-path statistics.
// It is not safe for concurrent use; the partitioned mode gives each worker its own.
type Accumulator struct {
	stats  map[string]*models.PathStats
	order  []string
	totals models.RunTotals
}

func NewAccumulator() *Accumulator {
	return &Accumulator{stats: make(map[string]*models.PathStats)}
}

// Record adds one entry to its path and to the run totals.
func (a *Accumulator) Record(entry models.LogEntry) {
	a.getOrCreate(entry.Path).Record(entry.RequestTime)
	a.totals.TotalCount++
	a.totals.TotalTime += entry.RequestTime
}

// Merge folds other into a. Paths unknown to a are appended in other's order.
func (a *Accumulator) Merge(other *Accumulator) {
	for _, path := range other.order {
		a.getOrCreate(path).Merge(other.stats[path])
	}
	a.totals.TotalCount += other.totals.TotalCount
	a.totals.TotalTime += other.totals.TotalTime
}

func (a *Accumulator) Totals() models.RunTotals { return a.totals }

// Len returns the number of distinct paths.
func (a *Accumulator) Len() int { return len(a.order) }

// Rows derives one report row per path, in first-seen order.
func (a *Accumulator) Rows() []models.ReportRow {
	rows := make([]models.ReportRow, 0, len(a.order))
	for _, path := range a.order {
		rows = append(rows, newReportRow(path, a.stats[path], a.totals))
	}
	return rows
}

// Result snapshots the rows and totals.
func (a *Accumulator) Result() *models.AggregateResult {
	return &models.AggregateResult{Rows: a.Rows(), Totals: a.totals}
}

// restoreSourceOrder replaces the path order and totals with the ones observed
// by the dispatcher, so a merged accumulator matches a sequential one exactly.
// Every path of a must appear in order.
func (a *Accumulator) restoreSourceOrder(order []string, totals models.RunTotals) {
	a.order = order
	a.totals = totals
}

func (a *Accumulator) getOrCreate(path string) *models.PathStats {
	stats, ok := a.stats[path]
	if !ok {
		stats = &models.PathStats{}
		a.stats[path] = stats
		a.order = append(a.order, path)
	}
	return stats
}

func newReportRow(path string, stats *models.PathStats, totals models.RunTotals) models.ReportRow {
	return models.ReportRow{
		URL:       path,
		Count:     stats.Count,
		CountPerc: ratio(float64(stats.Count), float64(totals.TotalCount)),
		TimeSum:   stats.TimeSum,
		TimePerc:  ratio(stats.TimeSum, totals.TotalTime),
		TimeAvg:   ratio(stats.TimeSum, float64(stats.Count)),
		TimeMax:   maxOf(stats.Times),
		TimeMed:   median(stats.Times),
	}
}

func ratio(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole
}

func maxOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return slices.Max(values)
}

// median sorts a copy; values is left untouched.
func median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
