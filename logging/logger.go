package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/grovetools/git-log-pretty/config"
	"github.com/grovetools/git-log-pretty/pkg/paths"
	"github.com/grovetools/git-log-pretty/util/pathutil"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// Environment variables read by NewLogger.
const (
	EnvLogLevel  = "GIT_LOG_PRETTY_LOG_LEVEL"
	EnvLogCaller = "GIT_LOG_PRETTY_LOG_CALLER"
	EnvDebug     = "GIT_LOG_PRETTY_DEBUG"
)

// DefaultLogFile is the file name used when the file sink has no path.
const DefaultLogFile = "git-log-pretty.log"

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex

	// levelOverride is set by SetLevel and beats every other level source.
	levelOverride *logrus.Level

	fileSinks = make(map[string]*os.File)

	loadConfigOnce sync.Once
	loadedConfig   Config
)

// NewLogger creates and returns a pre-configured logger for a specific component.
// It uses a singleton pattern per component to avoid re-initializing.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	logger := logrus.New()
	configure(logger, fileConfig())

	entry := logger.WithField("component", component)
	loggers[component] = entry
	return entry
}

// SetLevel forces level on every existing and future logger. The CLI
// uses it for --verbose.
func SetLevel(level logrus.Level) {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	levelOverride = &level
	cfg := fileConfig()
	for _, entry := range loggers {
		configure(entry.Logger, cfg)
	}
}

// fileConfig reads the logging section of the layered config once per
// process. A missing or broken config yields defaults.
func fileConfig() Config {
	loadConfigOnce.Do(func() {
		cfg, err := config.LoadDefault()
		if err != nil {
			return
		}
		if err := cfg.UnmarshalExtension("logging", &loadedConfig); err != nil {
			logrus.Warnf("Failed to parse 'logging' config: %v", err)
		}
	})
	return loadedConfig
}

// configure applies level, formatter and sinks. Callers hold loggersMu.
func configure(logger *logrus.Logger, logCfg Config) {
	logger.SetLevel(resolveLevel(logCfg))

	if os.Getenv(EnvLogCaller) == "true" || logCfg.ReportCaller {
		logger.SetReportCaller(true)
	}

	switch logCfg.Format.Preset {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "simple":
		logger.SetFormatter(&TextFormatter{Config: FormatConfig{
			DisableTimestamp: true,
			DisableComponent: true,
		}})
	default:
		logger.SetFormatter(&TextFormatter{Config: logCfg.Format})
	}

	var writers []io.Writer

	// The file sink is opt-in.
	if logCfg.File.Enabled {
		if file := openFileSink(logger, sinkPath(logCfg.File)); file != nil {
			writers = append(writers, file)
		}
	}

	if shouldLogToStderr(logCfg, logger.GetLevel()) {
		writers = append(writers, os.Stderr)
	}

	switch len(writers) {
	case 0:
		logger.SetOutput(io.Discard)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}
}

func resolveLevel(logCfg Config) logrus.Level {
	if levelOverride != nil {
		return *levelOverride
	}

	levelStr := "info"
	if env := os.Getenv(EnvLogLevel); env != "" {
		levelStr = env
	} else if logCfg.Level != "" {
		levelStr = logCfg.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// shouldLogToStderr implements the structured_to_stderr modes. In "auto"
// mode logs reach stderr only when debugging or when stderr is not an
// interactive terminal.
func shouldLogToStderr(logCfg Config, level logrus.Level) bool {
	mode := "auto"
	if logCfg.Format.StructuredToStderr != "" {
		mode = logCfg.Format.StructuredToStderr
	}

	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		isDebug := os.Getenv(EnvDebug) == "1" || level >= logrus.DebugLevel
		isInteractive := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
		return isDebug || !isInteractive
	}
}

// sinkPath returns the configured log file, or the default under the
// state directory.
func sinkPath(cfg FileSinkConfig) string {
	if cfg.Path != "" {
		return cfg.Path
	}
	return filepath.Join(paths.StateDir(), DefaultLogFile)
}

func openFileSink(logger *logrus.Logger, configured string) *os.File {
	path, err := pathutil.Expand(configured)
	if err != nil {
		logger.Warnf("Failed to resolve log file %s: %v", configured, err)
		return nil
	}
	if file, ok := fileSinks[path]; ok {
		return file
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Warnf("Failed to create log directory %s: %v", dir, err)
		return nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		logger.Warnf("Failed to open log file %s: %v", path, err)
		return nil
	}
	fileSinks[path] = file
	return file
}

