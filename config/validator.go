package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/grovetools/git-log-pretty/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaResource = "git-log-pretty.schema.json"

// SchemaValidator validates configuration against the reflected schema.
type SchemaValidator struct {
	schema *jsonschema.Schema
}

var (
	defaultValidator     *SchemaValidator
	defaultValidatorErr  error
	defaultValidatorOnce sync.Once
)

// NewSchemaValidator compiles the schema produced by GenerateSchema.
func NewSchemaValidator() (*SchemaValidator, error) {
	data, err := GenerateSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to generate schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaResource, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	schema, err := compiler.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &SchemaValidator{schema: schema}, nil
}

// Validate checks configData, which may be any value that marshals to a
// JSON object.
func (v *SchemaValidator) Validate(configData interface{}) error {
	// Round-trip through JSON so the validator sees plain objects.
	jsonData, err := json.Marshal(configData)
	if err != nil {
		return fmt.Errorf("failed to marshal config to JSON for validation: %w", err)
	}

	var dataToValidate interface{}
	if err := json.Unmarshal(jsonData, &dataToValidate); err != nil {
		return fmt.Errorf("failed to unmarshal JSON for validation: %w", err)
	}

	if err := v.schema.Validate(dataToValidate); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			var errorMessages []string
			collectErrors(validationErr, &errorMessages)
			return fmt.Errorf("schema validation failed:\n%s", strings.Join(errorMessages, "\n"))
		}
		return fmt.Errorf("schema validation failed: %w", err)
	}

	return nil
}

// Validate checks cfg against the schema and returns a CONFIG_INVALID
// error describing every violation.
func Validate(cfg *Config) error {
	defaultValidatorOnce.Do(func() {
		defaultValidator, defaultValidatorErr = NewSchemaValidator()
	})
	if defaultValidatorErr != nil {
		return errors.Wrap(defaultValidatorErr, errors.ErrCodeInternal, "failed to create validator")
	}

	if err := defaultValidator.Validate(cfg); err != nil {
		return errors.ConfigInvalid(err.Error())
	}
	return nil
}

// collectErrors recursively collects all validation errors into a slice
func collectErrors(err *jsonschema.ValidationError, messages *[]string) {
	if len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		*messages = append(*messages, fmt.Sprintf("- %s: %s", location, err.Message))
	}
	for _, cause := range err.Causes {
		collectErrors(cause, messages)
	}
}
