package validation

import (
	"fmt"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/xeipuuv/gojsonschema"
)

// Result captures the outcome of validating a payload against a schema.
type Result struct {
	Valid  bool
	Errors []string
}

// ErrorMessages joins all validation errors into a single string.
func (r *Result) ErrorMessages() string {
	return strings.Join(r.Errors, "; ")
}

// Validate checks data (a decoded JSON document) against a JSON schema
// expressed as a Go map.
func Validate(data interface{}, schema map[string]interface{}) (*Result, error) {
	schemaLoader := gojsonschema.NewGoLoader(schema)
	documentLoader := gojsonschema.NewGoLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	out := &Result{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, desc.String())
	}
	return out, nil
}

// IsEmail reports whether s looks like a valid email address.
func IsEmail(s string) bool {
	return govalidator.IsEmail(s)
}

// IsPhone reports whether s looks like a dialable phone number. The funnel
// accepts international formats with separators, so this is intentionally
// loose: at least 7 digits after stripping formatting characters.
func IsPhone(s string) bool {
	stripped := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '+', '.':
			return -1
		}
		return r
	}, s)
	return len(stripped) >= 7 && govalidator.IsNumeric(stripped)
}
