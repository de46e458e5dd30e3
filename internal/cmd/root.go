// Package cmd implements the claude-config command tree.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jander99/claude-config/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "claude-config",
	Short: "Generate agent prompt files from YAML persona definitions",
	Long: `claude-config loads YAML agent persona and trait definitions, validates
the agent-to-agent coordination graph (cycle detection, reachability,
consistency checks), and generates Markdown agent prompt files plus a
master CLAUDE.md coordination document.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/claude-config/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("CLAUDE_CONFIG")
	// Replace dots with underscores for nested keys in env vars,
	// e.g. CLAUDE_CONFIG_LOGGING_LEVEL for logging.level
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
