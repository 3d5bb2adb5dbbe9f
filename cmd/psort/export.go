package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/franz/photo-sorter/internal/export"
	"github.com/franz/photo-sorter/internal/util"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Move photos into tag-named folders",
	Long: `Reorganize tagged photos into tag-named folders under the export root.

Each photo moves into its primary tag's folder; every secondary tag gets
a hardlink (or a copy where linking is unsupported). Untagged photos are
left in place. The operation can be undone with 'psort revert' as long
as the project record is intact.

Use --dry-run to preview the plan without touching the filesystem.
Export is not fully transactional: if an item fails, already-completed
moves and links are kept and the failure is reported.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("dest", "", "export root (default: the photo root)")
	exportCmd.Flags().Bool("dry-run", false, "compute and print the plan without executing")
	exportCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	viper.BindPFlag("dest", exportCmd.Flags().Lookup("dest"))
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	assumeYes, _ := cmd.Flags().GetBool("yes")

	sess, _, logger, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()
	defer logger.Close()

	dest := viper.GetString("dest")
	if dest == "" {
		dest = viper.GetString("root")
	} else if same, err := util.IsSameFilesystem(viper.GetString("root"), dest); err == nil && !same {
		util.WarnLog("Export root is on a different filesystem: moves will copy and links will become copies")
	}

	plan, err := sess.ExportDryRun(dest)
	if err != nil {
		return fmt.Errorf("failed to plan export: %w", err)
	}

	printPlan(plan)

	if dryRun {
		util.InfoLog("Dry run: no files were changed")
		return nil
	}

	if plan.Tagged == 0 {
		util.WarnLog("Nothing to export: no tagged photos")
		return nil
	}

	if !assumeYes && !confirm(fmt.Sprintf("Move %d photos into tag folders under %s?",
		plan.Tagged, dest)) {
		util.InfoLog("Export cancelled")
		return nil
	}

	// The plan above was informational; execution recomputes it against
	// current state so it can never act on a stale snapshot
	result, err := sess.ExportExecute(dest)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if len(result.Errors) > 0 {
		util.WarnLog("Export finished with %d errors:", len(result.Errors))
		for i, err := range result.Errors {
			if i >= 10 {
				util.WarnLog("... and %d more errors", len(result.Errors)-10)
				break
			}
			util.WarnLog("  - %v", err)
		}
	}

	util.InfoLog("To undo: psort revert")
	return nil
}

func printPlan(plan *export.Plan) {
	util.InfoLog("Export plan for %s:", plan.ExportRoot)
	util.InfoLog("  Photos: %d total, %d tagged, %d untagged",
		plan.Total, plan.Tagged, plan.Untagged)
	util.InfoLog("  Operations: %d moves, %d links", len(plan.Moves), len(plan.Links))

	names := make([]string, 0, len(plan.PerTag))
	for tag := range plan.PerTag {
		names = append(names, tag)
	}
	sort.Strings(names)
	for _, tag := range names {
		util.InfoLog("    %s: %d", tag, plan.PerTag[tag])
	}
}

func confirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
