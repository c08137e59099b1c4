package models

// LogEntry is one parsed access log line.
type LogEntry struct {
	Path        string
	RequestTime float64 // seconds
}

// ParseStats counts the lines seen by one parser run. Blank lines are counted
// in Lines only; Skipped holds malformed lines dropped under the skip policy.
type ParseStats struct {
	Lines   int64 `json:"lines"`
	Parsed  int64 `json:"parsed_lines"`
	Skipped int64 `json:"skipped_lines"`
}

// MalformedRatio returns Skipped / (Parsed + Skipped), or 0 when nothing was read.
func (s ParseStats) MalformedRatio() float64 {
	considered := s.Parsed + s.Skipped
	if considered == 0 {
		return 0
	}
	return float64(s.Skipped) / float64(considered)
}
