package main

import (
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/franz/photo-sorter/internal/util"
)

var dupesCmd = &cobra.Command{
	Use:   "dupes",
	Short: "List probable duplicate photos",
	Long: `List probable duplicate photos.

Duplicates are detected by hashing the first 10 MiB of each file. This
is a heuristic: files larger than the prefix that differ only afterwards
are reported as duplicates even though they are not byte-identical.`,
	RunE: runDupes,
}

func init() {
	rootCmd.AddCommand(dupesCmd)
}

func runDupes(cmd *cobra.Command, args []string) error {
	sess, info, logger, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()
	defer logger.Close()

	pairs := info.Stats.Duplicates
	if len(pairs) == 0 {
		util.SuccessLog("No probable duplicates found")
		return nil
	}

	util.WarnLog("%d probable duplicate pairs:", len(pairs))
	for _, pair := range pairs {
		size := ""
		for _, p := range sess.Photos() {
			if p.Name == pair.Duplicate {
				size = humanize.IBytes(uint64(p.Size))
				break
			}
		}
		util.InfoLog("  %s duplicates %s (%s)", pair.Duplicate, pair.Original, size)
	}

	if util.IsTerminal(os.Stdout.Fd()) {
		util.InfoLog("")
		util.InfoLog("Duplicates are reported only; nothing is deleted automatically.")
	}

	return nil
}
