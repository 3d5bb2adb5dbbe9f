package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/franz/photo-sorter/internal/util"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the root directory and initialize the project",
	Long: `Scan the root directory for photos and load or create the project.

This command:
1. Discovers image files at the top level of the root
2. Orders them by EXIF capture time (with mtime and name fallbacks)
3. Loads the project file, merging newly discovered photos
4. Fingerprints all photos and reports probable duplicates

The project file is created at <root>/.photo-sorter/project.json if it
does not exist yet. Photos recorded in the project are never removed
automatically, even if they vanish from disk.`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	startTime := time.Now()

	sess, info, logger, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()
	defer logger.Close()

	if logger.Path() != "" {
		util.InfoLog("Event log: %s", logger.Path())
	}

	util.SuccessLog("Scan complete in %v", time.Since(startTime).Round(time.Millisecond))
	util.InfoLog("  Photos: %d", info.TotalPhotos)
	if info.FirstPhoto != "" {
		util.InfoLog("  First photo: %s", info.FirstPhoto)
	}
	util.InfoLog("  Categorized: yes=%d no=%d maybe=%d",
		info.Stats.Categorized.Yes, info.Stats.Categorized.No, info.Stats.Categorized.Maybe)
	if len(info.Stats.Duplicates) > 0 {
		util.WarnLog("  Probable duplicates: %d (run 'psort dupes' for details)",
			len(info.Stats.Duplicates))
	}

	return nil
}
