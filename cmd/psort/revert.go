package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/franz/photo-sorter/internal/project"
	"github.com/franz/photo-sorter/internal/util"
)

var revertCmd = &cobra.Command{
	Use:   "revert",
	Short: "Undo a previous export and delete the project",
	Long: `Restore the pre-export layout from the project record.

Revert moves every exported photo back to the root, deletes the
secondary-tag links, removes the tag-named folders that are left empty,
and finally deletes the project file, its backups, and the project
directory. Files already missing from their expected export locations
are skipped silently.`,
	RunE: runRevert,
}

func init() {
	revertCmd.Flags().String("dest", "", "export root the photos were exported to (default: the photo root)")
	revertCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(revertCmd)
}

func runRevert(cmd *cobra.Command, args []string) error {
	assumeYes, _ := cmd.Flags().GetBool("yes")

	root := viper.GetString("root")
	if _, err := os.Stat(project.FilePath(root)); os.IsNotExist(err) {
		return fmt.Errorf("%w: nothing to revert in %s", util.ErrNoProject, root)
	}

	sess, _, logger, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()
	defer logger.Close()

	dest, _ := cmd.Flags().GetString("dest")
	if dest == "" {
		dest = root
	}

	if !assumeYes && !confirm(fmt.Sprintf(
		"Restore photos from tag folders under %s and delete the project?", dest)) {
		util.InfoLog("Revert cancelled")
		return nil
	}

	result, err := sess.Revert(dest)
	if err != nil {
		return fmt.Errorf("revert failed: %w", err)
	}

	if len(result.Errors) > 0 {
		util.WarnLog("Revert finished with %d errors:", len(result.Errors))
		for i, err := range result.Errors {
			if i >= 10 {
				util.WarnLog("... and %d more errors", len(result.Errors)-10)
				break
			}
			util.WarnLog("  - %v", err)
		}
	}

	return nil
}
