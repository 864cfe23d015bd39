package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glare-project/glare/internal/attribution"
	"github.com/glare-project/glare/internal/view"
	"github.com/glare-project/glare/pkg/color"
	"github.com/glare-project/glare/pkg/errclass"
	"github.com/glare-project/glare/pkg/model"
)

var snapshotsWorker string

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots <repository-id>",
	Short: "List recovery points for a repository",
	Long: `List recovery points for a repository.

Completed snapshots are correlated with their originating workers and
interleaved with any running or pending backup activity, newest first,
grouped by month and day.

Examples:
  glare snapshots prod-east              # All recovery points
  glare snapshots prod-east --worker w1  # Only worker w1's snapshots`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, cfg := requireClient()
		repoID := args[0]
		ctx := context.Background()

		snapshots, err := client.ListSnapshots(ctx, repoID)
		if err != nil {
			exitErr("list snapshots", err)
		}
		attrs, err := client.ListAttributions(ctx, repoID)
		if err != nil {
			exitErr("list snapshot workers", err)
		}
		activities, err := client.ListActivities(ctx, repoID)
		if err != nil {
			exitErr("list snapshot activity", err)
		}

		ix := attribution.NewIndex(attrs, attribution.Config{
			TimeTolerance:           cfg.Match.TimeTolerance,
			SingleCandidateShortcut: cfg.Match.SingleCandidateShortcut,
		})
		result := view.Assemble(snapshots, ix, activities, view.Options{
			WorkerID: snapshotsWorker,
		})

		if jsonOutput {
			outputJSON(result.Groups)
			return
		}

		if len(result.Items) == 0 {
			fmt.Println("No recovery points found.")
			return
		}
		printGroups(result.Groups)
	},
}

func init() {
	snapshotsCmd.Flags().StringVar(&snapshotsWorker, "worker", "", "only show snapshots from this worker")
	rootCmd.AddCommand(snapshotsCmd)
}

func printGroups(groups []view.MonthGroup) {
	for _, month := range groups {
		fmt.Println(color.Header(month.Key))
		for _, day := range month.Days {
			fmt.Printf("  %s\n", day.Key)
			for _, item := range day.Items {
				printItem(&item)
			}
		}
	}
}

func printItem(item *model.ViewItem) {
	marker := " "
	switch item.Kind {
	case model.ItemRunning:
		marker = color.Success("*")
	case model.ItemPending:
		marker = color.Dim("~")
	}
	fmt.Printf("    %s %s\n", marker, item.Title)
	if item.WorkerSummary != "" {
		fmt.Printf("      %s\n", item.WorkerSummary)
	}
	if item.Meta != "" {
		fmt.Printf("      %s\n", color.Dim(item.Meta))
	}
}

// exitErr prints err with its remediation hint, if any, and exits.
func exitErr(action string, err error) {
	fmtErr("%s: %v", action, err)
	var ge *errclass.GlareError
	if errors.As(err, &ge) && ge.Hint != "" {
		fmt.Fprintf(os.Stderr, "  hint: %s\n", ge.Hint)
	}
	os.Exit(1)
}
