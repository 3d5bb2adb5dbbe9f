package main

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/franz/photo-sorter/internal/util"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show curation progress for the root",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	sess, info, logger, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()
	defer logger.Close()

	var totalBytes uint64
	tagged := 0
	for _, p := range sess.Photos() {
		totalBytes += uint64(p.Size)
		tags, err := sess.Tags(p.Name)
		if err != nil {
			return err
		}
		if len(tags) > 0 {
			tagged++
		}
	}

	s := info.Stats
	util.InfoLog("Photos: %d (%s)", s.Total, humanize.IBytes(totalBytes))
	util.InfoLog("Tagged: %d / %d", tagged, s.Total)
	util.InfoLog("Categorized: yes=%d no=%d maybe=%d",
		s.Categorized.Yes, s.Categorized.No, s.Categorized.Maybe)
	if len(s.Duplicates) > 0 {
		util.WarnLog("Probable duplicates: %d", len(s.Duplicates))
	} else {
		util.InfoLog("Probable duplicates: none")
	}

	if len(sess.AllTags()) > 0 {
		util.InfoLog("Tags used: %v", sess.AllTags())
	}

	return nil
}
