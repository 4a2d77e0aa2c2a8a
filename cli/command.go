package cli

import (
	"github.com/grovetools/git-log-pretty/config"
	"github.com/grovetools/git-log-pretty/errors"
	"github.com/grovetools/git-log-pretty/logging"
	"github.com/grovetools/git-log-pretty/util/pathutil"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommandOptions holds the persistent options every command accepts.
type CommandOptions struct {
	ConfigFile string
	Verbose    bool
	JSONOutput bool
	Theme      string
	Icons      string
}

// NewStandardCommand creates a new command with the standard persistent flags.
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to a config file layered over the project config")
	cmd.PersistentFlags().String("theme", "", "Color theme: auto, dark, light")
	cmd.PersistentFlags().String("icons", "", "File icon style: nerd, ascii, none")

	SetStyledHelp(cmd)

	return cmd
}

// GetLogger returns the CLI logger, raising every component to debug when
// --verbose is set.
func GetLogger(cmd *cobra.Command) *logrus.Entry {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		logging.SetLevel(logrus.DebugLevel)
	}
	return logging.NewLogger("cli")
}

// GetOptions extracts common options from a command
func GetOptions(cmd *cobra.Command) CommandOptions {
	configFile, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	themeName, _ := cmd.Flags().GetString("theme")
	icons, _ := cmd.Flags().GetString("icons")

	return CommandOptions{
		ConfigFile: configFile,
		Verbose:    verbose,
		JSONOutput: jsonOutput,
		Theme:      themeName,
		Icons:      icons,
	}
}

// LoadConfig loads the layered configuration starting at workDir and
// applies the --theme and --icons flags on top.
func LoadConfig(cmd *cobra.Command, workDir string) (*config.Config, error) {
	opts := GetOptions(cmd)

	explicit, err := pathutil.Expand(opts.ConfigFile)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid --config path")
	}

	cfg, err := config.LoadLayered(config.LoadOptions{
		WorkDir:      workDir,
		ExplicitPath: explicit,
		Logger:       GetLogger(cmd),
	})
	if err != nil {
		return nil, err
	}

	if opts.Theme == "" && opts.Icons == "" {
		return cfg, nil
	}
	if opts.Theme != "" {
		cfg.Theme = opts.Theme
	}
	if opts.Icons != "" {
		cfg.Icons = opts.Icons
	}
	if err := config.Validate(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid --theme or --icons value")
	}
	return cfg, nil
}
