package config

import (
	"encoding/json"
	"testing"

	"github.com/grovetools/git-log-pretty/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)

	var schema map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &schema))

	assert.Equal(t, "http://json-schema.org/draft-07/schema#", schema["$schema"])
	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, false, schema["additionalProperties"])
	assert.NotContains(t, schema, "required")

	props, ok := schema["properties"].(map[string]interface{})
	require.True(t, ok)
	for _, key := range []string{"base_branch", "limit", "theme", "icons", "commit_pattern", "exclude"} {
		assert.Contains(t, props, key)
	}
	assert.NotContains(t, props, "Extensions")
	assert.NotContains(t, props, "Sources")

	theme := props["theme"].(map[string]interface{})
	assert.ElementsMatch(t, []interface{}{"auto", "dark", "light"}, theme["enum"])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr string
	}{
		{name: "empty", config: &Config{}},
		{name: "full", config: &Config{BaseBranch: "main", Limit: intPtr(0), Theme: "light", Icons: "ascii", Exclude: []string{"x"}}},
		{name: "extensions are not validated", config: &Config{Extensions: map[string]interface{}{"logging": 1}}},
		{name: "bad theme", config: &Config{Theme: "sepia"}, wantErr: "/theme"},
		{name: "bad icons", config: &Config{Icons: "emoji"}, wantErr: "/icons"},
		{name: "negative limit", config: &Config{Limit: intPtr(-1)}, wantErr: "/limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.config)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeConfigInvalid))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSchemaValidatorAcceptsMaps(t *testing.T) {
	v, err := NewSchemaValidator()
	require.NoError(t, err)

	assert.NoError(t, v.Validate(map[string]interface{}{"theme": "dark"}))
	assert.Error(t, v.Validate(map[string]interface{}{"unknown": true}))
}
