package models

// PathStats accumulates the samples recorded for one request path.
// len(Times) always equals Count.
type PathStats struct {
	Count   int64
	TimeSum float64
	Times   []float64
}

// Record adds one request time sample.
func (p *PathStats) Record(requestTime float64) {
	p.Count++
	p.TimeSum += requestTime
	p.Times = append(p.Times, requestTime)
}

// Merge folds other into p.
func (p *PathStats) Merge(other *PathStats) {
	p.Count += other.Count
	p.TimeSum += other.TimeSum
	p.Times = append(p.Times, other.Times...)
}

// RunTotals are the run-wide sums used for the percentage columns.
type RunTotals struct {
	TotalCount int64   `json:"total_count"`
	TotalTime  float64 `json:"total_time"`
}
