package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meet-captions/internal/caption"
	"github.com/nguyentantai21042004/meet-captions/internal/capture"
	"github.com/nguyentantai21042004/meet-captions/internal/processor"
	"github.com/nguyentantai21042004/meet-captions/internal/summarizer"
)

func NewReplayCmd(deps *Dependencies) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "replay <capture.jsonl>",
		Short: "Print the transcript a capture file produces",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			events, err := capture.ReadFile(args[0])
			if err != nil {
				return err
			}

			records := capture.Replay(ctx, events, caption.Options{GracePeriod: deps.Config.GracePeriod()}, deps.Logger)
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			if len(records) > 0 {
				fmt.Fprintln(out, caption.JoinRecords(records))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print structured records instead of transcript lines")
	return cmd
}

func NewProcessCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "process <capture.jsonl>...",
		Short: "Export transcripts for capture files and archive them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ensureDirectories(deps.Config); err != nil {
				return err
			}

			proc := processor.New(deps.Config, newSummarizer(deps), deps.Logger)
			for _, path := range args {
				if err := proc.Process(cmd.Context(), path); err != nil {
					return fmt.Errorf("process %s: %w", path, err)
				}
			}
			return nil
		},
	}
}

// newSummarizer returns nil unless summaries are enabled and keys are present.
func newSummarizer(deps *Dependencies) summarizer.Summarizer {
	cfg := deps.Config
	if !cfg.Export.Summarize || len(cfg.Gemini.APIKeys) == 0 {
		return nil
	}
	return summarizer.New(cfg.Gemini.APIKeys, cfg.Gemini.Model, cfg.Export.Docx, deps.Logger)
}
