package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/glare-project/glare/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config <command>",
	Short: "Manage Glare configuration",
	Long: `Manage Glare configuration stored in ~/.glare/config.yaml.

Configuration options:
  origin                          - Console API base URL
  token                           - Bearer token for the console API
  sync.poll_interval              - Polling fallback interval
  sync.reconnect_delay            - Stream reconnect delay
  match.time_tolerance            - Attribution time-proximity window
  match.single_candidate_shortcut - Accept lone short-id candidates
  logging.level                   - Log level (debug, info, warn, error)

Available commands:
  show              - Show current configuration
  set <key> <value> - Set a configuration value`,
	DisableFlagsInUseLine: true,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadedConfig()

		if jsonOutput {
			outputJSON(cfg)
			return
		}

		fmt.Println("# Glare Configuration")
		fmt.Printf("# Location: %s\n\n", currentConfigPath())
		fmt.Printf("origin: %s\n", cfg.Origin)
		if cfg.Token != "" {
			fmt.Println("token: (set)")
		} else {
			fmt.Println("token: (not set)")
		}
		fmt.Printf("sync.poll_interval: %s\n", cfg.Sync.PollInterval)
		fmt.Printf("sync.reconnect_delay: %s\n", cfg.Sync.ReconnectDelay)
		fmt.Printf("match.time_tolerance: %s\n", cfg.Match.TimeTolerance)
		fmt.Printf("match.single_candidate_shortcut: %v\n", cfg.Match.SingleCandidateShortcut)
		fmt.Printf("logging.level: %s\n", cfg.Logging.Level)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		key, value := args[0], args[1]
		path := currentConfigPath()
		cfg, err := config.Load(path)
		if err != nil {
			fmtErr("load config: %v", err)
			os.Exit(1)
		}

		if err := applyConfigKey(cfg, key, value); err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}
		if err := config.Save(path, cfg); err != nil {
			fmtErr("save config: %v", err)
			os.Exit(1)
		}

		if jsonOutput {
			outputJSON(map[string]string{"key": key, "value": value})
			return
		}
		fmt.Printf("Set %s = %s\n", key, value)
	},
}

func currentConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPath()
}

func applyConfigKey(cfg *config.Config, key, value string) error {
	switch key {
	case "origin":
		cfg.Origin = value
	case "token":
		cfg.Token = value
	case "sync.poll_interval":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %v", value, err)
		}
		cfg.Sync.PollInterval = d
	case "sync.reconnect_delay":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %v", value, err)
		}
		cfg.Sync.ReconnectDelay = d
	case "match.time_tolerance":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %v", value, err)
		}
		cfg.Match.TimeTolerance = d
	case "match.single_candidate_shortcut":
		switch value {
		case "true":
			cfg.Match.SingleCandidateShortcut = true
		case "false":
			cfg.Match.SingleCandidateShortcut = false
		default:
			return fmt.Errorf("invalid boolean %q (want true or false)", value)
		}
	case "logging.level":
		switch value {
		case "debug", "info", "warn", "error":
			cfg.Logging.Level = value
		default:
			return fmt.Errorf("invalid log level %q", value)
		}
	default:
		return fmt.Errorf("unknown configuration key %q", key)
	}
	return nil
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
