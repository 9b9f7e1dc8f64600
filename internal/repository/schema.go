package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/landdoc-verifier/internal/common"
)

var nonEmpty = map[string]any{"type": "string", "minLength": 1}

var percent = map[string]any{"type": "integer", "minimum": 0, "maximum": 100}

var verificationSchema = map[string]any{
	"type": "object",
	"required": []string{
		"id", "documentName", "uploadDate", "status", "isLegal", "ownershipType",
		"documentType", "surveyNumber", "district", "taluk", "village", "area",
		"owner", "classification", "discrepancies", "confidence", "verificationDetails",
	},
	"properties": map[string]any{
		"id":             nonEmpty,
		"documentName":   nonEmpty,
		"uploadDate":     nonEmpty,
		"status":         map[string]any{"enum": []string{"Verified", "Issues Found", "Processing Failed"}},
		"isLegal":        map[string]any{"type": "boolean"},
		"ownershipType":  nonEmpty,
		"documentType":   nonEmpty,
		"surveyNumber":   nonEmpty,
		"district":       nonEmpty,
		"taluk":          nonEmpty,
		"village":        nonEmpty,
		"area":           nonEmpty,
		"owner":          nonEmpty,
		"classification": nonEmpty,
		"discrepancies":  map[string]any{"type": "array", "items": nonEmpty},
		"confidence":     percent,
		"verificationDetails": map[string]any{
			"type":     "object",
			"required": []string{"registrationStatus", "portalMatch", "ownershipVerified", "boundariesConfirmed", "taxStatus"},
		},
	},
	// legal exactly when there are no discrepancies
	"if":   map[string]any{"properties": map[string]any{"discrepancies": map[string]any{"maxItems": 0}}},
	"then": map[string]any{"properties": map[string]any{"isLegal": map[string]any{"const": true}}},
	"else": map[string]any{"properties": map[string]any{"isLegal": map[string]any{"const": false}}},
}

var contractSchema = map[string]any{
	"type":     "object",
	"required": []string{"id", "name", "extractedText", "summary", "keyPoints", "sections"},
	"properties": map[string]any{
		"id":        nonEmpty,
		"name":      nonEmpty,
		"keyPoints": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"sections": map[string]any{
			"type":     "array",
			"minItems": 8,
			"maxItems": 8,
			"items": map[string]any{
				"type":     "object",
				"required": []string{"title", "key", "content", "alerts", "confidence", "hasContent"},
				"properties": map[string]any{
					"key":        nonEmpty,
					"confidence": percent,
					"alerts": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items": map[string]any{
							"type":     "object",
							"required": []string{"message", "level", "category"},
							"properties": map[string]any{
								"level": map[string]any{"enum": []string{"info", "warning", "error", "critical"}},
							},
						},
					},
				},
			},
		},
	},
}

var (
	verificationValidator = sync.OnceValues(func() (*jsonschema.Schema, error) {
		return compileSchema("verification.json", verificationSchema)
	})
	contractValidator = sync.OnceValues(func() (*jsonschema.Schema, error) {
		return compileSchema("contract.json", contractSchema)
	})
)

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

// validateRecord encodes rec and checks it against its schema.
func validateRecord[T any](load func() (*jsonschema.Schema, error), rec T) error {
	_, err := encode(load, rec)
	return err
}

// validatePayload checks a serialized history document against its schema.
func validatePayload(load func() (*jsonschema.Schema, error), data []byte) error {
	schema, err := load()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %w", common.ErrValidation, err)
	}
	return nil
}
