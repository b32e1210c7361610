package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/setia/htmldicts/internal/config"
	"github.com/setia/htmldicts/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Manage htmldicts configuration.

Configuration precedence (lowest to highest):
  1. Defaults
  2. User config (~/.config/htmldicts/config.yaml)
  3. Project config (.htmldicts.yaml in the working directory)
  4. Environment variables (HTMLDICTS_*)`,
		Example: `  # Show effective configuration
  htmldicts config show

  # Write the defaults to the user config file
  htmldicts config init

  # Print the user config file path
  htmldicts config path`,
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigPathCmd())
	cmd.AddCommand(newConfigBackupsCmd())
	cmd.AddCommand(newConfigRestoreCmd())

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			switch format {
			case "json":
				return output.New(cmd.OutOrStdout()).JSON(cfg)
			case "yaml", "":
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return fmt.Errorf("failed to marshal config: %w", err)
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			default:
				return fmt.Errorf("unknown format %q (use yaml or json)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: yaml, json")

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the user configuration file",
		Long: `Write the default configuration to ~/.config/htmldicts/config.yaml
(or $XDG_CONFIG_HOME/htmldicts/config.yaml). An existing file is backed
up before --force overwrites it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := output.New(cmd.OutOrStdout())

			backup, err := config.InitUserConfig(force)
			if err != nil {
				return err
			}
			if backup != "" {
				out.Status("", "Previous config saved to "+backup)
			}
			out.Successf("Created %s", config.GetUserConfigPath())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the user configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), config.GetUserConfigPath())
			return err
		},
	}
}

func newConfigBackupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backups",
		Short: "List user configuration backups, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			backups, err := config.ListUserConfigBackups()
			if err != nil {
				return err
			}
			out := output.New(cmd.OutOrStdout())
			if len(backups) == 0 {
				out.Line("No backups.")
				return nil
			}
			for _, b := range backups {
				out.Line(b)
			}
			return nil
		},
	}
}

func newConfigRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <backup>",
		Short: "Restore the user configuration from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.RestoreUserConfig(args[0]); err != nil {
				return err
			}
			output.New(cmd.OutOrStdout()).Successf("Restored %s", config.GetUserConfigPath())
			return nil
		},
	}
}
