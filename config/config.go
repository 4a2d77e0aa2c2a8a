package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/grovetools/git-log-pretty/errors"
	"github.com/grovetools/git-log-pretty/pkg/paths"
	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvTheme = "GIT_LOG_PRETTY_THEME"
	EnvIcons = "GIT_LOG_PRETTY_ICONS"
	EnvBase  = "GIT_LOG_PRETTY_BASE"
)

// GlobalFileName is the user-wide config file inside the XDG config directory.
const GlobalFileName = "config.yml"

// ProjectFileNames are searched, in order, in every directory from the
// working directory up to the filesystem root.
var ProjectFileNames = []string{
	".git-log-pretty.yml",
	".git-log-pretty.yaml",
	".git-log-pretty.toml",
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// LoadOptions controls which layers LoadLayered reads.
type LoadOptions struct {
	// WorkDir is where the project file search starts. Defaults to the
	// current directory.
	WorkDir string
	// ExplicitPath is a --config file layered over the project file. It
	// must exist.
	ExplicitPath string
	// SkipGlobal ignores the XDG config file.
	SkipGlobal bool
	Logger     *logrus.Entry
}

// LoadDefault loads every layer starting from the current directory.
func LoadDefault() (*Config, error) {
	return LoadLayered(LoadOptions{})
}

// LoadLayered merges, lowest precedence first: defaults, the global XDG
// file, the nearest project file, the explicit file and the environment.
// Missing optional layers are skipped; a file that exists but fails to
// parse or validate is an error.
func LoadLayered(opts LoadOptions) (*Config, error) {
	logger := opts.Logger
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = logrus.NewEntry(discard)
	}

	workDir := opts.WorkDir
	if workDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to get current directory")
		}
		workDir = cwd
	}

	var paths []string
	if !opts.SkipGlobal {
		if globalPath := getXDGConfigPath(); globalPath != "" {
			if info, err := os.Stat(globalPath); err == nil && !info.IsDir() {
				paths = append(paths, globalPath)
			}
		}
	}
	if projectPath, ok := FindProjectFile(workDir); ok {
		paths = append(paths, projectPath)
	}
	if opts.ExplicitPath != "" {
		paths = append(paths, opts.ExplicitPath)
	}

	final := &Config{}
	for _, path := range paths {
		logger.WithField("path", path).Debug("Loading configuration layer")
		layer, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		final = mergeConfigs(final, layer)
		final.Sources = append(final.Sources, path)
	}

	applyEnv(final)
	final.SetDefaults()

	if err := Validate(final); err != nil {
		return nil, err
	}

	if logger.Logger.IsLevelEnabled(logrus.DebugLevel) {
		if data, err := yaml.Marshal(final); err == nil {
			logger.Debugf("Merged configuration:\n%s", string(data))
		}
	}

	return final, nil
}

// FindProjectFile walks from startDir to the filesystem root and returns
// the first project config file found.
func FindProjectFile(startDir string) (string, bool) {
	dir := startDir
	for {
		for _, name := range ProjectFileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, true
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// loadFile parses and validates one layer without applying defaults.
func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	var cfg *Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		cfg, err = parseTOML(data)
	} else {
		cfg, err = parseYAML(data)
	}
	if err != nil {
		return nil, withPath(err, path)
	}

	if err := Validate(cfg); err != nil {
		return nil, withPath(err, path)
	}
	return cfg, nil
}

func parseYAML(data []byte) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse YAML configuration")
	}
	return &cfg, nil
}

// parseTOML decodes into a generic map first so unknown tables land in
// Extensions just like inline YAML keys.
func parseTOML(data []byte) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var raw map[string]interface{}
	if err := toml.NewDecoder(bytes.NewReader([]byte(expanded))).Decode(&raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse TOML configuration")
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &cfg,
		TagName: "mapstructure",
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create mapstructure decoder")
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to decode TOML configuration")
	}
	return &cfg, nil
}

func withPath(err error, path string) error {
	if e, ok := errors.As(err); ok {
		return e.WithDetail("path", path)
	}
	return err
}

func applyEnv(c *Config) {
	if v := os.Getenv(EnvTheme); v != "" {
		c.Theme = v
	}
	if v := os.Getenv(EnvIcons); v != "" {
		c.Icons = v
	}
	if v := os.Getenv(EnvBase); v != "" {
		c.BaseBranch = v
	}
}

// expandEnvVars replaces ${VAR} with environment variable values
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := envVarRegex.FindStringSubmatch(match)[1]

		// Handle default values: ${VAR:-default}
		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]
		defaultValue := ""
		if len(parts) > 1 {
			defaultValue = parts[1]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultValue
	})
}

// getXDGConfigPath returns the global config file path.
func getXDGConfigPath() string {
	dir := paths.ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, GlobalFileName)
}
