package screening

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tlk-hr/aptitude-screener/internal/document"
)

// UnreadableDocument identifies a document that yielded no text at all and
// therefore never entered the scoring pipeline.
type UnreadableDocument struct {
	FileName string          `json:"file_name"`
	Reason   document.Reason `json:"reason"`
}

// Result is the outcome of a batch run: accepted rows plus the two side
// buckets. Only aggregate counts of the buckets are user-facing.
type Result struct {
	Rows          []*FinalRow          `json:"rows"`
	LowConfidence []string             `json:"low_confidence"`
	Unreadable    []UnreadableDocument `json:"unreadable"`
	Threshold     float64              `json:"threshold"`
}

// CountByLabel tallies accepted rows by their best label.
func (r *Result) CountByLabel() map[string]int {
	counts := make(map[string]int)
	for _, row := range r.Rows {
		counts[row.BestLabel]++
	}
	return counts
}

// Report renders a compact text table of the accepted rows.
func (r *Result) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-28s %-22s %5s %6s %6s %6s %6s  %s\n",
		"FILE", "CANDIDATE", "CONF", "IN", "OUT", "APP", "BEST", "LABEL")
	for _, row := range r.Rows {
		fmt.Fprintf(&b, "%-28s %-22s %5.2f %6d %6d %6d %6d  %s\n",
			clip(row.FileName, 28), clip(row.FullName, 22), row.Confidence,
			row.Inbound.Score, row.Outbound.Score, row.Appointment.Score,
			row.BestScore, row.BestLabel,
		)
	}
	fmt.Fprintf(&b, "\naccepted: %d, low confidence: %d, unreadable: %d\n",
		len(r.Rows), len(r.LowConfidence), len(r.Unreadable))
	return b.String()
}

// DumpToTmpFile writes the full result as indented JSON to a temporary file
// and returns its name. This is the hand-off format for the external
// presentation layer.
func (r *Result) DumpToTmpFile() (string, error) {
	f, err := os.CreateTemp("", "aptitude-rows-*.json")
	if err != nil {
		return "", fmt.Errorf("create tmp file: %w", err)
	}
	defer f.Close()

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		return "", fmt.Errorf("write result: %w", err)
	}

	return f.Name(), nil
}

func clip(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	if limit <= 3 {
		return s[:limit]
	}
	return s[:limit-3] + "..."
}
