package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// resultSchema returns the JSON-Schema (draft 2020-12 subset) for the
// four-section extraction shape, as a generic map. Every leaf admits null;
// sections and keys are required so the blob is always fully shaped.
func resultSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"employeeInfo":     sectionSchema("name", "employeeID", "department"),
			"insuranceDetails": sectionSchema("provider", "policyNumber", "coverageType", "benefitRate", "maxWeeks"),
			"benefitBreakdown": sectionSchema("shortTermDisability", "maternityCoverage", "paternalCoverage", "adoptionCoverage"),
			"companyPolicy": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"topUpOffered":    map[string]any{"type": []string{"boolean", "null"}},
					"topUpPercentage": nullableString(),
					"totalCoverage":   nullableString(),
				},
				"required": []string{"topUpOffered", "topUpPercentage", "totalCoverage"},
			},
		},
		"required": []string{"employeeInfo", "insuranceDetails", "benefitBreakdown", "companyPolicy"},
	}
}

func sectionSchema(keys ...string) map[string]any {
	props := make(map[string]any, len(keys))
	for _, key := range keys {
		props[key] = nullableString()
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   keys,
	}
}

func nullableString() map[string]any {
	return map[string]any{"type": []string{"string", "null"}}
}

var compiledSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	b, err := json.Marshal(resultSchema())
	if err != nil {
		panic(fmt.Sprintf("marshal extraction schema: %v", err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("extraction.json", bytes.NewReader(b)); err != nil {
		panic(fmt.Sprintf("add extraction schema: %v", err))
	}
	schema, err := compiler.Compile("extraction.json")
	if err != nil {
		panic(fmt.Sprintf("compile extraction schema: %v", err))
	}
	return schema
}

// ValidateResultJSON checks a recovered model payload against the extraction
// schema. A violation is degradation, not a hard error: the caller falls back
// to a fully-null record.
func ValidateResultJSON(raw json.RawMessage) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("unmarshal extraction: %w", err)
	}
	if err := compiledSchema.Validate(v); err != nil {
		return fmt.Errorf("extraction does not match schema: %w", err)
	}
	return nil
}

// ParseResult decodes a schema-valid payload into the typed result.
func ParseResult(raw json.RawMessage) (ExtractionResult, error) {
	var result ExtractionResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return ExtractionResult{}, err
	}
	return result, nil
}
