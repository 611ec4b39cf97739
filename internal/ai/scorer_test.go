package ai

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/tlk-hr/aptitude-screener/internal/profile"
	"go.uber.org/zap"
)

func TestScorerScore(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{response: `{
		"schema_version": "2.0",
		"scores": {
			"inbound_call_center": {"score": 80, "label": "Alta", "dimensions": {"phone_experience": 5}, "reasons": ["esperienza in call center"], "evidence": ["gestione chiamate in entrata"]},
			"outbound_telemarketing": {"score": 55, "label": "Media"},
			"appointment_setting": {"score": 30, "label": "Bassa"}
		}
	}`}

	scorer := NewScorer(stub, zap.NewNop(), 0)

	p := profile.DefaultProfile()
	p.Experience = []profile.Experience{{
		Role:              "Operatore call center",
		IsPhoneStructured: true,
		PhoneType:         profile.PhoneTypeInbound,
		Evidence:          []string{"gestione chiamate in entrata"},
	}}

	got := scorer.Score(context.Background(), p)

	if got.Inbound.Score != 80 || got.Inbound.Label != profile.LabelAlta {
		t.Fatalf("unexpected inbound: %+v", got.Inbound)
	}
	if got.Outbound.Score != 55 || got.Appointment.Score != 30 {
		t.Fatalf("unexpected role scores: %+v", got)
	}
	if got.BestScore() != 80 {
		t.Fatalf("expected best score 80, got %d", got.BestScore())
	}

	// the scorer sees only the profile, never raw document text
	if !strings.Contains(stub.lastPrompt, `"is_phone_structured":true`) {
		t.Fatalf("expected serialized profile in prompt")
	}
	if strings.Contains(stub.lastPrompt, "{{INPUT_JSON}}") {
		t.Fatalf("placeholder not substituted")
	}
}

func TestScorerDropsInventedEvidence(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{response: `{
		"scores": {
			"inbound_call_center": {"score": 70, "label": "Media", "evidence": ["gestione chiamate", "this quote exists nowhere"]},
			"outbound_telemarketing": {"score": 0, "label": "Bassa"},
			"appointment_setting": {"score": 0, "label": "Bassa"}
		}
	}`}

	scorer := NewScorer(stub, zap.NewNop(), 0)

	p := profile.DefaultProfile()
	p.Experience = []profile.Experience{{Evidence: []string{"gestione chiamate in entrata"}}}

	got := scorer.Score(context.Background(), p)

	want := []string{"gestione chiamate"}
	if !reflect.DeepEqual(got.Inbound.Evidence, want) {
		t.Fatalf("expected invented evidence dropped, got %v", got.Inbound.Evidence)
	}
}

func TestScorerNeverFails(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		stub *stubGenerator
	}{
		{
			name: "capability error",
			stub: &stubGenerator{err: errors.New("timeout")},
		},
		{
			name: "unparseable response",
			stub: &stubGenerator{response: "no json here"},
		},
		{
			name: "missing scores object",
			stub: &stubGenerator{response: `{"schema_version": "2.0"}`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			scorer := NewScorer(tt.stub, zap.NewNop(), 0)
			got := scorer.Score(context.Background(), profile.DefaultProfile())
			if !reflect.DeepEqual(got, profile.DefaultScoreSet()) {
				t.Fatalf("expected the default score set, got %+v", got)
			}
		})
	}
}

func TestScorerNilGenerator(t *testing.T) {
	t.Parallel()

	scorer := NewScorer(nil, zap.NewNop(), 0)
	got := scorer.Score(context.Background(), profile.DefaultProfile())
	if !reflect.DeepEqual(got, profile.DefaultScoreSet()) {
		t.Fatalf("expected the default score set, got %+v", got)
	}
}
