package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Defaults applied by SetDefaults.
const (
	DefaultBaseBranch = "main"
	DefaultLimit      = 15
	DefaultTheme      = "auto"
	DefaultIcons      = "nerd"
)

// Config is the effective git-log-pretty configuration.
type Config struct {
	BaseBranch    string   `yaml:"base_branch,omitempty" json:"base_branch,omitempty" mapstructure:"base_branch" jsonschema:"description=Branch commits are compared against (default: main)"`
	Limit         *int     `yaml:"limit,omitempty" json:"limit,omitempty" mapstructure:"limit" jsonschema:"minimum=0,description=Maximum commits to show; 0 shows all (default: 15)"`
	Theme         string   `yaml:"theme,omitempty" json:"theme,omitempty" mapstructure:"theme" jsonschema:"enum=auto,enum=dark,enum=light,description=Color theme; auto probes the terminal background"`
	Icons         string   `yaml:"icons,omitempty" json:"icons,omitempty" mapstructure:"icons" jsonschema:"enum=nerd,enum=ascii,enum=none,description=File icon style in trees"`
	CommitPattern string   `yaml:"commit_pattern,omitempty" json:"commit_pattern,omitempty" mapstructure:"commit_pattern" jsonschema:"description=Regular expression with type/scope/description groups used to parse commit summaries"`
	Exclude       []string `yaml:"exclude,omitempty" json:"exclude,omitempty" mapstructure:"exclude" jsonschema:"description=Gitignore-style patterns hidden from changed-file trees"`

	// Extensions captures all other top-level keys, such as logging.
	Extensions map[string]interface{} `yaml:",inline" json:"-" mapstructure:",remain" jsonschema:"-"`

	// Sources lists the files merged into this config, lowest precedence first.
	Sources []string `yaml:"-" json:"-" mapstructure:"-" jsonschema:"-"`
}

// SetDefaults fills every unset field.
func (c *Config) SetDefaults() {
	if c.BaseBranch == "" {
		c.BaseBranch = DefaultBaseBranch
	}
	if c.Limit == nil {
		limit := DefaultLimit
		c.Limit = &limit
	}
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	if c.Icons == "" {
		c.Icons = DefaultIcons
	}
}

// CommitLimit returns the configured limit, or the default when unset.
func (c *Config) CommitLimit() int {
	if c.Limit == nil {
		return DefaultLimit
	}
	return *c.Limit
}

// UnmarshalExtension decodes the extension section key into target, which
// must be a pointer. A missing section leaves target untouched.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
