// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package configstack

import (
	"errors"
	"fmt"
	"sort"

	"github.com/xeipuuv/gojsonschema"
)

// Validate checks config against a JSON Schema (draft-04) document. Keys
// declared in the schema's `properties` must match their declared type when
// present, keys listed in `required` must be present, and keys the schema
// does not declare pass through untouched — the schema is permissive unless
// it says otherwise.
//
// On violation the returned error carries one [*SchemaValidationError] per
// failure, combined with [errors.Join] and sorted by key path so the same
// config and schema always produce the same error text. A schema document
// the validator cannot compile is reported as [ErrMalformedSchema].
func (c *Config) Validate(config, schema map[string]any) error {
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(config))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSchema, err)
	}
	if result.Valid() {
		return nil
	}

	failures := make([]*SchemaValidationError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		failures = append(failures, shapeFailure(desc))
	}
	sort.Slice(failures, func(i, j int) bool {
		if failures[i].Path != failures[j].Path {
			return failures[i].Path < failures[j].Path
		}
		return failures[i].Expected < failures[j].Expected
	})

	if len(failures) == 1 {
		return failures[0]
	}

	errs := make([]error, len(failures))
	for i, failure := range failures {
		errs[i] = failure
	}
	return errors.Join(errs...)
}

// shapeFailure turns one gojsonschema result into the structured error the
// rest of the system reports.
func shapeFailure(desc gojsonschema.ResultError) *SchemaValidationError {
	details := desc.Details()

	switch desc.Type() {
	case "invalid_type":
		return newTypeError(desc.Field(), detailString(details, "expected"), detailString(details, "given"), desc.Value())
	case "required":
		path := detailString(details, "property")
		if field := desc.Field(); field != gojsonschema.STRING_CONTEXT_ROOT {
			path = field + "." + path
		}
		return newRequiredError(path)
	default:
		return &SchemaValidationError{
			Path:   desc.Field(),
			Value:  desc.Value(),
			Reason: desc.Description(),
		}
	}
}

func detailString(details gojsonschema.ErrorDetails, key string) string {
	if v, ok := details[key]; ok {
		return fmt.Sprintf("%v", v)
	}
	return ""
}
