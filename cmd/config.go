package cmd

import (
	"fmt"
	"os"

	"github.com/grovetools/git-log-pretty/cli"
	"github.com/grovetools/git-log-pretty/config"
	"github.com/grovetools/git-log-pretty/display"
	"github.com/grovetools/git-log-pretty/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect git-log-pretty configuration",
	}
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigSchemaCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration after merging every layer",
		Long: `Print the configuration used for the current directory. Layers are merged
in order: global config, project config, --config, environment, flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return errors.Wrap(err, errors.ErrCodeInternal, "failed to get current directory")
			}

			cfg, err := cli.LoadConfig(cmd, cwd)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if cli.GetOptions(cmd).JSONOutput {
				return display.WriteJSON(w, cfg)
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return errors.Wrap(err, errors.ErrCodeInternal, "failed to marshal config")
			}
			if len(cfg.Sources) == 0 {
				fmt.Fprintln(w, "# Sources: defaults only")
			}
			for _, src := range cfg.Sources {
				fmt.Fprintf(w, "# Source: %s\n", src)
			}
			_, err = w.Write(data)
			return err
		},
	}
}

func newConfigSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema config files are validated against",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := config.GenerateSchema()
			if err != nil {
				return errors.Wrap(err, errors.ErrCodeInternal, "failed to generate schema")
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(schema))
			return nil
		},
	}
}
