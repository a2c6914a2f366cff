package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/autowall/internal/config"
)

var configOpts struct {
	force bool
}

// configCmd represents the config command group.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the daemon configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShowRun(cmd, args)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	Long:  `Print the configuration autowalld would use, with defaults filled in.`,
	Args:  cobra.NoArgs,
	RunE:  configShowRun,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write the default configuration to ~/.config/hypr/auto-wallpaper.toml
(or --config). An existing file is left alone unless --force is given.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipSettingsAnnotation: "true"},
	RunE:        configInitRun,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)

	configInitCmd.Flags().BoolVarP(&configOpts.force, "force", "f", false,
		"Overwrite an existing configuration file")
}

func configShowRun(cmd *cobra.Command, args []string) error {
	encoder := toml.NewEncoder(cmd.OutOrStdout())
	return encoder.Encode(cfg)
}

func configInitRun(cmd *cobra.Command, args []string) error {
	path := globalOpts.configPath
	if path == "" {
		var err error
		if path, err = config.DaemonConfigPath(); err != nil {
			return err
		}
	}

	if _, err := os.Stat(path); err == nil && !configOpts.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := config.SaveDaemonConfig(path, config.DefaultDaemonConfig()); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
	return nil
}
