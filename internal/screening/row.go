package screening

import (
	"strings"

	"github.com/google/uuid"
	"github.com/tlk-hr/aptitude-screener/internal/document"
	"github.com/tlk-hr/aptitude-screener/internal/enrich"
	"github.com/tlk-hr/aptitude-screener/internal/profile"
)

// RoleResult is the per-role slice of a FinalRow.
type RoleResult struct {
	Score    int      `json:"score"`
	Label    string   `json:"label"`
	Reasons  []string `json:"reasons"`
	Evidence []string `json:"evidence"`
}

// FinalRow is the read-only record assembled once per accepted document. It
// combines the blended confidence, the candidate identity, derived summary
// fields and the three role assessments.
type FinalRow struct {
	ID         string  `json:"id"`
	FileName   string  `json:"file_name"`
	FullName   string  `json:"full_name"`
	Confidence float64 `json:"confidence"`
	ReadReason string  `json:"read_reason"`

	Email  string   `json:"email"`
	Phones []string `json:"phones"`

	ToolsSummary         string   `json:"tools_summary"`
	PhoneStructuredCount int      `json:"phone_structured_count"`
	PhoneTypes           []string `json:"phone_types"`
	PhoneEvidence        []string `json:"phone_evidence"`

	Inbound     RoleResult `json:"inbound_call_center"`
	Outbound    RoleResult `json:"outbound_telemarketing"`
	Appointment RoleResult `json:"appointment_setting"`

	BestScore int    `json:"best_score"`
	BestLabel string `json:"best_label"`
}

// assembleRow builds the final record for one document. Everything derived
// lives here; the row is never mutated afterwards.
func assembleRow(fileName string, read document.ReadResult, p profile.ExtractedProfile, scores profile.ScoreSet, blended float64) *FinalRow {
	best := scores.BestScore()

	row := &FinalRow{
		ID:         uuid.New().String(),
		FileName:   fileName,
		FullName:   enrich.ResolveFullName(p.Candidate.Name, p.Candidate.Surname, read.Text, p.Candidate.Email),
		Confidence: blended,
		ReadReason: string(read.Reason),

		Email:  p.Candidate.Email,
		Phones: p.Candidate.Phones,

		ToolsSummary:         toolsSummary(p.Skills),
		PhoneStructuredCount: p.PhoneStructuredCount(),

		Inbound:     roleResult(scores.Inbound),
		Outbound:    roleResult(scores.Outbound),
		Appointment: roleResult(scores.Appointment),

		BestScore: best,
		BestLabel: profile.LabelForScore(best),
	}

	for _, e := range p.Experience {
		if !e.IsPhoneStructured {
			continue
		}
		if e.PhoneType != "" && !containsString(row.PhoneTypes, e.PhoneType) {
			row.PhoneTypes = append(row.PhoneTypes, e.PhoneType)
		}
		if len(e.Evidence) > 0 && len(row.PhoneEvidence) < profile.MaxEvidence && !containsString(row.PhoneEvidence, e.Evidence[0]) {
			row.PhoneEvidence = append(row.PhoneEvidence, e.Evidence[0])
		}
	}

	return row
}

func roleResult(rs profile.RoleScore) RoleResult {
	return RoleResult{
		Score:    rs.Score,
		Label:    rs.Label,
		Reasons:  rs.Reasons,
		Evidence: rs.Evidence,
	}
}

// toolsSummary joins the strongest tool signals per category into a compact
// display string, e.g. "Excel, Outlook | Salesforce | Zendesk".
func toolsSummary(s profile.Skills) string {
	parts := make([]string, 0, 4)
	for _, group := range []struct {
		items []string
		max   int
	}{
		{s.OfficeTools, 4},
		{s.CRMTools, 4},
		{s.TicketingTools, 3},
		{s.ContactCenterTools, 3},
	} {
		if joined := shortList(group.items, group.max); joined != "" {
			parts = append(parts, joined)
		}
	}
	return strings.Join(parts, " | ")
}

func shortList(items []string, max int) string {
	kept := make([]string, 0, max)
	for _, it := range items {
		if it = strings.TrimSpace(it); it == "" {
			continue
		}
		if containsString(kept, it) {
			continue
		}
		kept = append(kept, it)
		if len(kept) == max {
			break
		}
	}
	return strings.Join(kept, ", ")
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
