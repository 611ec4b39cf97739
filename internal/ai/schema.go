package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Advisory JSON-Schema checks for capability output. A mismatch is logged by
// the caller but never rejects the response: per-field coercion remains the
// repair mechanism, so the never-fail contract holds.

func stringList() map[string]any {
	return map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
}

func extractionSchemaMap() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"schema_version": map[string]any{"type": "string"},
			"candidate": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":    map[string]any{"type": "string"},
					"surname": map[string]any{"type": "string"},
					"email":   map[string]any{"type": "string"},
					"phones":  stringList(),
				},
			},
			"extraction": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"language_hint": map[string]any{"type": "string"},
					"confidence":    map[string]any{"type": "number"},
					"notes":         map[string]any{"type": "string"},
				},
			},
			"experience": map[string]any{
				"type":     "array",
				"maxItems": 8,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"role":                map[string]any{"type": "string"},
						"company":             map[string]any{"type": "string"},
						"start":               map[string]any{"type": "string"},
						"end":                 map[string]any{"type": "string"},
						"description":         map[string]any{"type": "string"},
						"is_phone_structured": map[string]any{"type": "boolean"},
						"phone_type":          map[string]any{"type": "string", "enum": []string{"inbound", "outbound", "mixed", "none"}},
						"channels":            stringList(),
						"tools":               stringList(),
						"kpi_signals":         stringList(),
						"evidence":            stringList(),
					},
				},
			},
			"skills": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"office_tools":         stringList(),
					"crm_tools":            stringList(),
					"ticketing_tools":      stringList(),
					"contact_center_tools": stringList(),
					"languages":            stringList(),
					"other":                stringList(),
				},
			},
			"constraints": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"type":     map[string]any{"type": "string"},
						"evidence": map[string]any{"type": "string"},
					},
				},
			},
		},
	}
}

func roleScoreSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score":      map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
			"label":      map[string]any{"type": "string", "enum": []string{"Alta", "Media", "Bassa"}},
			"dimensions": map[string]any{"type": "object", "additionalProperties": map[string]any{"type": "integer"}},
			"reasons":    stringList(),
			"evidence":   stringList(),
		},
	}
}

func scoringSchemaMap() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"schema_version": map[string]any{"type": "string"},
			"scores": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"inbound_call_center":    roleScoreSchema(),
					"outbound_telemarketing": roleScoreSchema(),
					"appointment_setting":    roleScoreSchema(),
				},
				"required": []string{"inbound_call_center", "outbound_telemarketing", "appointment_setting"},
			},
		},
		"required": []string{"scores"},
	}
}

var (
	schemaOnce       sync.Once
	extractionSchema *jsonschema.Schema
	scoringSchema    *jsonschema.Schema
	schemaCompileErr error
)

func compileSchemas() {
	extractionSchema, schemaCompileErr = compileSchema("extraction.json", extractionSchemaMap())
	if schemaCompileErr != nil {
		return
	}
	scoringSchema, schemaCompileErr = compileSchema("scoring.json", scoringSchemaMap())
}

func compileSchema(name string, schemaMap map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return compiler.Compile(name)
}

func validateExtraction(data map[string]any) error {
	schemaOnce.Do(compileSchemas)
	if schemaCompileErr != nil {
		return schemaCompileErr
	}
	return extractionSchema.Validate(roundTrip(data))
}

func validateScoring(data map[string]any) error {
	schemaOnce.Do(compileSchemas)
	if schemaCompileErr != nil {
		return schemaCompileErr
	}
	return scoringSchema.Validate(roundTrip(data))
}

// roundTrip re-encodes the map through json so numeric types match what the
// validator expects from unmarshalled documents.
func roundTrip(data map[string]any) any {
	b, err := json.Marshal(data)
	if err != nil {
		return data
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return data
	}
	return v
}
