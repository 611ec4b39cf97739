package profile

// SchemaVersion identifies the extraction/scoring contract the generative
// capabilities are asked to honor.
const SchemaVersion = "2.0"

const (
	// MaxExperienceEntries caps the experience list; excess entries are
	// dropped from the tail.
	MaxExperienceEntries = 8
	// MaxEvidence caps evidence lists everywhere they appear.
	MaxEvidence = 3
	// MaxEvidenceLen caps the length of a single evidence excerpt.
	MaxEvidenceLen = 220
	// MaxReasons caps reason lists on role scores.
	MaxReasons = 3
)

// Phone type classifications for a structured telephone experience.
const (
	PhoneTypeInbound  = "inbound"
	PhoneTypeOutbound = "outbound"
	PhoneTypeMixed    = "mixed"
	PhoneTypeNone     = "none"
)

// ExtractedProfile is the canonical evidence-backed candidate profile
// produced by the extraction stage and consumed by the scoring stage.
type ExtractedProfile struct {
	SchemaVersion string       `json:"schema_version" mapstructure:"schema_version"`
	Candidate     Candidate    `json:"candidate" mapstructure:"candidate"`
	Extraction    Extraction   `json:"extraction" mapstructure:"extraction"`
	Experience    []Experience `json:"experience" mapstructure:"experience"`
	Skills        Skills       `json:"skills" mapstructure:"skills"`
	Constraints   []Constraint `json:"constraints" mapstructure:"constraints"`
}

// Candidate holds contact identity fields.
type Candidate struct {
	Name    string   `json:"name" mapstructure:"name"`
	Surname string   `json:"surname" mapstructure:"surname"`
	Email   string   `json:"email" mapstructure:"email"`
	Phones  []string `json:"phones" mapstructure:"phones"`
}

// Extraction carries the capability's own self-assessment of its output.
type Extraction struct {
	LanguageHint string  `json:"language_hint" mapstructure:"language_hint"`
	Confidence   float64 `json:"confidence" mapstructure:"confidence"`
	Notes        string  `json:"notes" mapstructure:"notes"`
}

// Experience is a single work history entry. IsPhoneStructured marks core
// telephone-based duties as opposed to incidental phone use, and must always
// be corroborated by at least one verbatim evidence excerpt.
type Experience struct {
	Role              string   `json:"role" mapstructure:"role"`
	Company           string   `json:"company" mapstructure:"company"`
	Start             string   `json:"start" mapstructure:"start"`
	End               string   `json:"end" mapstructure:"end"`
	Description       string   `json:"description" mapstructure:"description"`
	IsPhoneStructured bool     `json:"is_phone_structured" mapstructure:"is_phone_structured"`
	PhoneType         string   `json:"phone_type" mapstructure:"phone_type"`
	Channels          []string `json:"channels" mapstructure:"channels"`
	Tools             []string `json:"tools" mapstructure:"tools"`
	KPISignals        []string `json:"kpi_signals" mapstructure:"kpi_signals"`
	Evidence          []string `json:"evidence" mapstructure:"evidence"`
}

// Skills groups tool and language signals by category.
type Skills struct {
	OfficeTools        []string `json:"office_tools" mapstructure:"office_tools"`
	CRMTools           []string `json:"crm_tools" mapstructure:"crm_tools"`
	TicketingTools     []string `json:"ticketing_tools" mapstructure:"ticketing_tools"`
	ContactCenterTools []string `json:"contact_center_tools" mapstructure:"contact_center_tools"`
	Languages          []string `json:"languages" mapstructure:"languages"`
	Other              []string `json:"other" mapstructure:"other"`
}

// Constraint is an availability or contractual limitation with its evidence.
type Constraint struct {
	Type     string `json:"type" mapstructure:"type"`
	Evidence string `json:"evidence" mapstructure:"evidence"`
}

// DefaultProfile returns the canonical empty profile: every field present,
// every value empty, false or zero. It is the stage output whenever the
// extraction capability fails or produces nothing usable.
func DefaultProfile() ExtractedProfile {
	return ExtractedProfile{
		SchemaVersion: SchemaVersion,
		Candidate:     Candidate{Phones: []string{}},
		Extraction:    Extraction{LanguageHint: "auto"},
		Experience:    []Experience{},
		Skills: Skills{
			OfficeTools:        []string{},
			CRMTools:           []string{},
			TicketingTools:     []string{},
			ContactCenterTools: []string{},
			Languages:          []string{},
			Other:              []string{},
		},
		Constraints: []Constraint{},
	}
}

// EvidenceStrings collects every evidence excerpt present anywhere in the
// profile: experience evidence plus constraint evidence. The scoring stage is
// only allowed to quote from this set.
func (p *ExtractedProfile) EvidenceStrings() []string {
	var out []string
	for _, e := range p.Experience {
		out = append(out, e.Evidence...)
	}
	for _, c := range p.Constraints {
		if c.Evidence != "" {
			out = append(out, c.Evidence)
		}
	}
	return out
}

// PhoneStructuredCount returns how many experience entries were classified
// as structured telephone work.
func (p *ExtractedProfile) PhoneStructuredCount() int {
	n := 0
	for _, e := range p.Experience {
		if e.IsPhoneStructured {
			n++
		}
	}
	return n
}

// Clamp01 constrains a confidence value into [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
