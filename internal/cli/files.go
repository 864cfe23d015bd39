package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/glare-project/glare/internal/filetree"
	"github.com/glare-project/glare/pkg/color"
	"github.com/glare-project/glare/pkg/model"
)

var filesWorker string

var filesCmd = &cobra.Command{
	Use:   "files <repository-id> <snapshot-id>",
	Short: "Show the file tree of a snapshot",
	Long: `Show the file tree of a snapshot.

The flat path listing reported by the worker is folded into a directory
tree. Directories sort before files; names sort locale-aware.

Examples:
  glare files prod-east 9f8e7d6c
  glare files prod-east 9f8e7d6c --worker w1`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		client, _ := requireClient()
		repoID, snapshotID := args[0], args[1]

		entries, err := client.ListSnapshotFiles(context.Background(), repoID, snapshotID, filesWorker)
		if err != nil {
			exitErr("list snapshot files", err)
		}

		forest := filetree.Build(entries)

		if jsonOutput {
			outputJSON(forest)
			return
		}

		if len(forest) == 0 {
			fmt.Println("Snapshot is empty.")
			return
		}
		for _, root := range forest {
			printTree(root, 0)
		}
	},
}

func init() {
	filesCmd.Flags().StringVar(&filesWorker, "worker", "", "worker holding the snapshot")
	rootCmd.AddCommand(filesCmd)
}

func printTree(node *model.PathTreeNode, depth int) {
	indent := strings.Repeat("  ", depth)
	name := node.Name
	if node.Kind == model.FileKindDir {
		fmt.Printf("%s%s/\n", indent, color.Header(name))
	} else if node.Size > 0 {
		fmt.Printf("%s%s %s\n", indent, name, color.Dim(humanize.IBytes(uint64(node.Size))))
	} else {
		fmt.Printf("%s%s\n", indent, name)
	}
	for _, child := range node.Children {
		printTree(child, depth+1)
	}
}
