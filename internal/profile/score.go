package profile

import "math"

// Score labels, banded for display purposes.
const (
	LabelAlta  = "Alta"
	LabelMedia = "Media"
	LabelBassa = "Bassa"
)

// Role keys in the scoring schema.
const (
	RoleInboundCallCenter     = "inbound_call_center"
	RoleOutboundTelemarketing = "outbound_telemarketing"
	RoleAppointmentSetting    = "appointment_setting"
)

// RoleScore is a calibrated fit assessment for a single role. Score is
// asserted by the scoring capability to derive from a weighted average of its
// five 0-5 dimensions; it is trusted as returned and never recomputed here.
type RoleScore struct {
	Score      int            `json:"score" mapstructure:"score"`
	Label      string         `json:"label" mapstructure:"label"`
	Dimensions map[string]int `json:"dimensions" mapstructure:"dimensions"`
	Reasons    []string       `json:"reasons" mapstructure:"reasons"`
	Evidence   []string       `json:"evidence" mapstructure:"evidence"`
}

// ScoreSet holds the three per-role assessments produced by the scoring
// stage.
type ScoreSet struct {
	SchemaVersion string    `json:"schema_version"`
	Inbound       RoleScore `json:"inbound_call_center"`
	Outbound      RoleScore `json:"outbound_telemarketing"`
	Appointment   RoleScore `json:"appointment_setting"`
}

// DefaultScoreSet returns the canonical all-zero score set: score 0 and label
// Bassa for every role. It is the stage output whenever the scoring
// capability fails or returns nothing usable.
func DefaultScoreSet() ScoreSet {
	return ScoreSet{
		SchemaVersion: SchemaVersion,
		Inbound:       defaultRoleScore(),
		Outbound:      defaultRoleScore(),
		Appointment:   defaultRoleScore(),
	}
}

func defaultRoleScore() RoleScore {
	return RoleScore{
		Label:      LabelBassa,
		Dimensions: map[string]int{},
		Reasons:    []string{},
		Evidence:   []string{},
	}
}

// BestScore returns the highest of the three role scores.
func (s *ScoreSet) BestScore() int {
	best := s.Inbound.Score
	if s.Outbound.Score > best {
		best = s.Outbound.Score
	}
	if s.Appointment.Score > best {
		best = s.Appointment.Score
	}
	return best
}

// LabelForScore bands an integer score for display: Alta >= 75, Media 45-74,
// Bassa <= 44. It is never used to override a label the capability returned.
func LabelForScore(score int) string {
	switch {
	case score >= 75:
		return LabelAlta
	case score >= 45:
		return LabelMedia
	default:
		return LabelBassa
	}
}

// CoerceScoreSet repairs a raw decoded scoring response. The second return
// is false when the response carries no usable "scores" object at all, in
// which case the default set is returned.
func CoerceScoreSet(data map[string]any) (ScoreSet, bool) {
	out := DefaultScoreSet()
	if data == nil {
		return out, false
	}
	scores, ok := data["scores"].(map[string]any)
	if !ok {
		return out, false
	}

	if v := coerceString(data["schema_version"]); v != "" {
		out.SchemaVersion = v
	}
	out.Inbound = coerceRoleScore(scores[RoleInboundCallCenter])
	out.Outbound = coerceRoleScore(scores[RoleOutboundTelemarketing])
	out.Appointment = coerceRoleScore(scores[RoleAppointmentSetting])
	return out, true
}

func coerceRoleScore(v any) RoleScore {
	out := defaultRoleScore()
	m, ok := v.(map[string]any)
	if !ok {
		return out
	}

	var rs RoleScore
	if err := weakDecode(m, &rs); err != nil {
		return out
	}

	out.Score = clampInt(rs.Score, 0, 100)
	switch rs.Label {
	case LabelAlta, LabelMedia, LabelBassa:
		out.Label = rs.Label
	}
	for name, val := range rs.Dimensions {
		out.Dimensions[name] = clampInt(val, 0, 5)
	}
	out.Reasons = cleanStrings(rs.Reasons, MaxReasons, 0)
	out.Evidence = cleanStrings(rs.Evidence, MaxEvidence, MaxEvidenceLen)
	return out
}

func clampInt(v, lo, hi int) int {
	return int(math.Min(float64(hi), math.Max(float64(lo), float64(v))))
}
