package cli

import (
	"fmt"
	"os"

	"github.com/glare-project/glare/internal/api"
	"github.com/glare-project/glare/pkg/color"
	"github.com/glare-project/glare/pkg/config"
)

// loadedConfig loads the config file and applies flag overrides, or exits
// with error.
func loadedConfig() *config.Config {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmtErr("load config: %v", err)
		os.Exit(1)
	}
	if originFlag != "" {
		cfg.Origin = originFlag
	}
	if tokenFlag != "" {
		cfg.Token = tokenFlag
	}
	return cfg
}

// requireClient builds an API client from the loaded config, or exits with
// error.
func requireClient() (*api.Client, *config.Config) {
	cfg := loadedConfig()
	client, err := api.NewClient(cfg.Origin, cfg.Token)
	if err != nil {
		fmtErr("console origin %q: %v", cfg.Origin, err)
		os.Exit(1)
	}
	return client, cfg
}

func fmtErr(format string, args ...any) {
	// Colorize the error prefix
	prefix := "glare: "
	if color.Enabled() {
		prefix = color.Error("glare:") + " "
	}
	fmt.Fprintf(os.Stderr, prefix+format+"\n", args...)
}
