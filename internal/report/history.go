package report

import (
	"time"

	"github.com/theirongolddev/pflow/internal/model"
)

// Prepend returns a new history with r first.
func Prepend(history []model.Report, r model.Report) []model.Report {
	out := make([]model.Report, 0, len(history)+1)
	out = append(out, r)
	return append(out, history...)
}

// Find returns the report with the given ID.
func Find(history []model.Report, id string) (model.Report, bool) {
	for _, r := range history {
		if r.ID == id {
			return r, true
		}
	}
	return model.Report{}, false
}

// HistoryStats is the header shown above the report list.
type HistoryStats struct {
	Total     int
	ThisMonth int
	Latest    time.Time // zero when the history is empty
}

// Summarize counts the history and finds its newest entry. The list is kept
// newest-first, but Latest is taken as the maximum so imported or seeded
// history in any order reports correctly.
func Summarize(history []model.Report, today time.Time) HistoryStats {
	var s HistoryStats
	for _, r := range history {
		s.Total++
		if r.Date.Year() == today.Year() && r.Date.Month() == today.Month() {
			s.ThisMonth++
		}
		if r.Date.After(s.Latest) {
			s.Latest = r.Date
		}
	}
	return s
}
