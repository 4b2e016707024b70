package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meet-captions/internal/capture"
	"github.com/nguyentantai21042004/meet-captions/internal/feeder"
)

func NewFeedCmd(deps *Dependencies) *cobra.Command {
	var baseURL string
	var meeting string
	var speed float64

	cmd := &cobra.Command{
		Use:   "feed <capture.jsonl>",
		Short: "Stream a capture file into a running server",
		Long:  "Create a session on a running server and stream the capture's caption events over the websocket. --speed 1 replays in real time; 0 sends as fast as possible.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := capture.ReadFile(args[0])
			if err != nil {
				return err
			}
			if meeting == "" {
				meeting = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}

			f := feeder.New(feeder.Options{BaseURL: baseURL, Meeting: meeting, Speed: speed}, deps.Logger)
			res, err := f.Feed(cmd.Context(), events)
			if err != nil {
				return err
			}

			deps.Logger.Info(cmd.Context(), "Sent %d events to session %s", res.Sent, res.SessionID)
			if res.Transcript != "" {
				fmt.Fprintln(cmd.OutOrStdout(), res.Transcript)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", "http://localhost:8080", "Server base URL")
	cmd.Flags().StringVar(&meeting, "meeting", "", "Meeting code (defaults to the capture file name)")
	cmd.Flags().Float64Var(&speed, "speed", 0, "Replay speed multiplier; 0 disables pacing")

	return cmd
}
