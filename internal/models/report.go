package models

import "time"

// ReportRow is the derived summary of one request path.
//
// Example JSON:
//
//	{
//	  "url": "/api/v2/banner/25019354",
//	  "count": 2,
//	  "count_perc": 0.5,
//	  "time_sum": 0.579,
//	  "time_perc": 0.62,
//	  "time_avg": 0.2895,
//	  "time_max": 0.456,
//	  "time_med": 0.2895
//	}
type ReportRow struct {
	URL       string  `json:"url"`
	Count     int64   `json:"count"`
	CountPerc float64 `json:"count_perc"`
	TimeSum   float64 `json:"time_sum"`
	TimePerc  float64 `json:"time_perc"`
	TimeAvg   float64 `json:"time_avg"`
	TimeMax   float64 `json:"time_max"`
	TimeMed   float64 `json:"time_med"`
}

// AggregateResult is the output of one aggregation pass. Rows are in the order
// their paths were first seen.
type AggregateResult struct {
	Rows   []ReportRow
	Totals RunTotals
}

// ReportMeta describes the run that produced a report.
type ReportMeta struct {
	RunID       string    `json:"run_id"`
	SourceFile  string    `json:"source_file"`
	SourceDate  time.Time `json:"source_date"`
	GeneratedAt time.Time `json:"generated_at"`
	RunTotals
	ParseStats
}

// Report is everything a renderer needs.
type Report struct {
	Rows []ReportRow
	Meta ReportMeta
}
