package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/glare-project/glare/internal/attribution"
	"github.com/glare-project/glare/internal/livesync"
	"github.com/glare-project/glare/pkg/color"
	"github.com/glare-project/glare/pkg/logging"
	"github.com/glare-project/glare/pkg/model"
)

var watchWorker string

var watchCmd = &cobra.Command{
	Use:   "watch <repository-id>",
	Short: "Follow live backup activity for a repository",
	Long: `Follow live backup activity for a repository.

Subscribes to the console's snapshot update stream and reprints the
recovery-point summary on every change. Falls back to polling when the
stream is unavailable. Press Ctrl-C to stop.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, cfg := requireClient()
		repoID := args[0]

		streamURL, err := client.StreamURL(repoID)
		if err != nil {
			// No stream endpoint; the controller polls instead.
			logging.Warn("stream URL unavailable, polling only", map[string]any{"error": err.Error()})
			streamURL = ""
		}

		updates := make(chan livesync.View, 16)
		ctrl := livesync.Subscribe(client, livesync.NewWebSocketTransport(cfg.Token), livesync.Options{
			RepositoryID:   repoID,
			StreamURL:      streamURL,
			PollInterval:   cfg.Sync.PollInterval,
			ReconnectDelay: cfg.Sync.ReconnectDelay,
			Match: attribution.Config{
				TimeTolerance:           cfg.Match.TimeTolerance,
				SingleCandidateShortcut: cfg.Match.SingleCandidateShortcut,
			},
			WorkerID: watchWorker,
			OnUpdate: func(v livesync.View) {
				select {
				case updates <- v:
				default:
				}
			},
		})
		defer ctrl.Dispose()

		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(interrupt)

		for {
			select {
			case v := <-updates:
				printWatchUpdate(repoID, v)
			case <-interrupt:
				fmt.Println()
				return
			}
		}
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchWorker, "worker", "", "only show snapshots from this worker")
	rootCmd.AddCommand(watchCmd)
}

func printWatchUpdate(repoID string, v livesync.View) {
	if jsonOutput {
		outputJSON(map[string]any{
			"repository": repoID,
			"state":      v.State,
			"snapshots":  len(v.Snapshots),
			"running":    countKind(v.Items, model.ItemRunning),
			"pending":    countKind(v.Items, model.ItemPending),
		})
		return
	}

	fmt.Printf("%s %s  %d snapshots, %d running, %d pending\n",
		color.Dim(fmt.Sprintf("[%s]", v.State)),
		repoID,
		len(v.Snapshots),
		countKind(v.Items, model.ItemRunning),
		countKind(v.Items, model.ItemPending))
	for _, item := range v.Items {
		if item.Kind == model.ItemSnapshot {
			continue
		}
		printItem(&item)
	}
}

func countKind(items []model.ViewItem, kind model.ItemKind) int {
	n := 0
	for _, item := range items {
		if item.Kind == kind {
			n++
		}
	}
	return n
}
