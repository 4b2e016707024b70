package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meet-captions/internal/config"
	"github.com/nguyentantai21042004/meet-captions/internal/logger"
)

// Dependencies are resolved once flags are parsed.
type Dependencies struct {
	Config *config.Config
	Logger logger.Logger
}

func NewRootCmd() *cobra.Command {
	var configPath string
	var logLevel string
	deps := &Dependencies{}

	rootCmd := &cobra.Command{
		Use:           "captionflow",
		Short:         "Aggregate live meeting captions into clean transcripts",
		Long:          "captionflow collects noisy live caption redraws per speaker, coalesces them into timestamped utterances, and exports the transcript.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Logging.Level = logLevel
			}
			deps.Config = cfg
			deps.Logger = logger.NewWithFormat(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override logging.level (debug, info, warn, error)")

	rootCmd.AddCommand(NewServeCmd(deps))
	rootCmd.AddCommand(NewReplayCmd(deps))
	rootCmd.AddCommand(NewProcessCmd(deps))
	rootCmd.AddCommand(NewFeedCmd(deps))
	rootCmd.AddCommand(NewSummarizeCmd(deps))

	return rootCmd
}

// loadConfig falls back to defaults when the default config file does not
// exist. An explicitly requested file must exist.
func loadConfig(path string, explicit bool) (*config.Config, error) {
	if _, err := os.Stat(path); !explicit && errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
