package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestMergeConfigs(t *testing.T) {
	base := &Config{
		BaseBranch: "main",
		Limit:      intPtr(10),
		Theme:      "dark",
		Exclude:    []string{"vendor/"},
		Extensions: map[string]interface{}{
			"logging": map[string]interface{}{"level": "info", "report_caller": true},
			"other":   "keep",
		},
		Sources: []string{"a.yml"},
	}
	override := &Config{
		Limit: intPtr(0),
		Icons: "none",
		Extensions: map[string]interface{}{
			"logging": map[string]interface{}{"level": "debug"},
		},
	}

	merged := mergeConfigs(base, override)

	assert.Equal(t, "main", merged.BaseBranch)
	assert.Equal(t, 0, merged.CommitLimit())
	assert.Equal(t, "dark", merged.Theme)
	assert.Equal(t, "none", merged.Icons)
	assert.Equal(t, []string{"vendor/"}, merged.Exclude)
	assert.Equal(t, map[string]interface{}{"level": "debug", "report_caller": true}, merged.Extensions["logging"])
	assert.Equal(t, "keep", merged.Extensions["other"])

	// The base layer is left untouched.
	assert.Equal(t, 10, base.CommitLimit())
	assert.Equal(t, "info", base.Extensions["logging"].(map[string]interface{})["level"])
}

func TestMergeConfigsReplacesExclude(t *testing.T) {
	merged := mergeConfigs(
		&Config{Exclude: []string{"a"}},
		&Config{Exclude: []string{"b", "c"}},
	)
	assert.Equal(t, []string{"b", "c"}, merged.Exclude)
}
