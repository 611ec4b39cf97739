package enrich

import "github.com/tlk-hr/aptitude-screener/internal/extract"

// Rules are the keyword lists driving the strong phone-structured signal
// re-derivation. The rule is a heuristic with no documented precision
// target, so the lists are a policy knob: callers may override any of them
// from configuration, with the defaults below as the shipped policy.
type Rules struct {
	// StrongPhone phrases flag an experience as structured telephone work
	// on their own.
	StrongPhone []string
	// Outbound phrases combined with a KPI phrase also trigger the flag,
	// and drive phone-type inference.
	Outbound []string
	// Inbound phrases drive phone-type inference.
	Inbound []string
	// KPI phrases are matched as prefixes of KPI/target/conversion talk.
	KPI []string
	// PhoneEvidence keywords locate backfill snippets for entries flagged
	// by the re-derivation.
	PhoneEvidence []string
	// GenericEvidence keywords locate the last-resort snippet for entries
	// that still have no evidence.
	GenericEvidence []string
}

// DefaultRules returns the shipped signal policy.
func DefaultRules() Rules {
	return Rules{
		StrongPhone: []string{
			"call center", "contact center", "telemarketing", "telesales",
			"dialer", "cold calling",
		},
		Outbound: extract.OutboundKeywords,
		Inbound:  extract.InboundKeywords,
		KPI:      []string{"kpi", "target", "obiettiv", "conversion", "appunt"},
		PhoneEvidence: []string{
			"call center", "contact center", "telemarketing", "telesales",
			"chiamate in uscita", "chiamate in entrata", "presa appuntamenti",
			"dialer", "kpi", "target",
		},
		GenericEvidence: []string{
			"crm", "salesforce", "hubspot", "zendesk", "kpi", "target",
			"appuntamenti",
		},
	}
}

// merged returns a copy of r with empty lists replaced by the defaults, so a
// partial configuration override keeps the rest of the policy intact.
func (r Rules) merged() Rules {
	def := DefaultRules()
	if len(r.StrongPhone) == 0 {
		r.StrongPhone = def.StrongPhone
	}
	if len(r.Outbound) == 0 {
		r.Outbound = def.Outbound
	}
	if len(r.Inbound) == 0 {
		r.Inbound = def.Inbound
	}
	if len(r.KPI) == 0 {
		r.KPI = def.KPI
	}
	if len(r.PhoneEvidence) == 0 {
		r.PhoneEvidence = def.PhoneEvidence
	}
	if len(r.GenericEvidence) == 0 {
		r.GenericEvidence = def.GenericEvidence
	}
	return r
}
