package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/git-release-name/internal/config"
)

var errConfigExists = errors.New("config file already exists (use --force to overwrite)")

func init() {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long:  "Write the default settings to the config path (--config, else $XDG_CONFIG_HOME/git-release-name/config.yaml).",
		// Skips loading, so a broken file can be replaced with --force.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run:               runConfigInit,
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective config as YAML",
		Run:   runConfigShow,
	}

	configCmd.AddCommand(initCmd, showCmd)
	RootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) {
	force, _ := cmd.Flags().GetBool("force")

	path := configPath
	if path == "" {
		path = config.Path()
	}
	if err := writeConfig(path, config.Default(), force); err != nil {
		exitErr("config init", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"path":%q}`+"\n", path)
}

func runConfigShow(cmd *cobra.Command, args []string) {
	b, err := yaml.Marshal(cfg)
	if err != nil {
		exitErr("config show", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(b))
}

// writeConfig saves c to path, refusing to replace an existing file unless
// force is set.
func writeConfig(path string, c *config.Config, force bool) error {
	if path == "" {
		return errors.New("no config path: set --config")
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", errConfigExists, path)
		}
	}
	return c.SaveToFile(path)
}
