package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glare-project/glare/pkg/color"
	"github.com/glare-project/glare/pkg/logging"
)

var (
	jsonOutput bool
	noColor    bool
	configPath string
	originFlag string
	tokenFlag  string

	rootCmd = &cobra.Command{
		Use:   "glare",
		Short: "Glare - backup console recovery-point browser",
		Long: `Glare browses the recovery points of a backup console: it lists
snapshots with their originating workers, inspects snapshot file trees,
and follows live backup activity over the console's update stream.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			color.Init(noColor)
			cfg := loadedConfig()
			logging.SetGlobal(logging.NewLogger(logging.Level(cfg.Logging.Level)))
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.glare/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&originFlag, "origin", "", "console API origin, e.g. https://glare.example.com")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "bearer token for the console API")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// outputJSON prints v as JSON if --json flag is set, otherwise does nothing.
func outputJSON(v any) error {
	if !jsonOutput {
		return nil
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
