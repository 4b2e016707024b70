package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meet-captions/internal/summarizer"
)

func NewSummarizeCmd(deps *Dependencies) *cobra.Command {
	var destDir string

	cmd := &cobra.Command{
		Use:   "summarize [transcripts-dir]",
		Short: "Summarize saved transcripts with Gemini",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := deps.Config
			if len(cfg.Gemini.APIKeys) == 0 {
				return fmt.Errorf("no Gemini API keys: set gemini.api_keys or CAPTIONFLOW_GEMINI_API_KEYS")
			}

			srcDir := cfg.Paths.Output
			if len(args) == 1 {
				srcDir = args[0]
			}
			if destDir == "" {
				destDir = filepath.Join(srcDir, "summaries")
			}

			sum := summarizer.New(cfg.Gemini.APIKeys, cfg.Gemini.Model, cfg.Export.Docx, deps.Logger)
			return sum.SummarizeAll(cmd.Context(), srcDir, destDir)
		},
	}

	cmd.Flags().StringVar(&destDir, "dest", "", "Output directory (defaults to <transcripts-dir>/summaries)")
	return cmd
}
