package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/franz/photo-sorter/internal/util"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Add or remove photo tags",
	Long: `Add or remove tags on a photo, identified by its base file name.

Tag order matters: the first tag on a photo is its primary tag and
decides the folder the file moves into on export. Every later tag is a
secondary tag and produces a hardlink (or copy) in that tag's folder.

Tags are unique per photo case-insensitively, with the originally typed
casing preserved.`,
}

var tagAddCmd = &cobra.Command{
	Use:   "add <photo> <tag>...",
	Short: "Add one or more tags to a photo",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runTagAdd,
}

var tagRemoveCmd = &cobra.Command{
	Use:   "remove <photo> <tag>",
	Short: "Remove a tag from a photo",
	Args:  cobra.ExactArgs(2),
	RunE:  runTagRemove,
}

func init() {
	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagRemoveCmd)
	rootCmd.AddCommand(tagCmd)
}

func runTagAdd(cmd *cobra.Command, args []string) error {
	sess, _, logger, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()
	defer logger.Close()

	photo := args[0]
	var updated []string
	for _, tag := range args[1:] {
		updated, err = sess.AddTag(photo, tag)
		if err != nil {
			return fmt.Errorf("failed to tag %s: %w", photo, err)
		}
	}

	util.SuccessLog("%s: [%s]", photo, strings.Join(updated, ", "))
	return nil
}

func runTagRemove(cmd *cobra.Command, args []string) error {
	sess, _, logger, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()
	defer logger.Close()

	photo, tag := args[0], args[1]
	updated, err := sess.RemoveTag(photo, tag)
	if err != nil {
		return fmt.Errorf("failed to untag %s: %w", photo, err)
	}

	util.SuccessLog("%s: [%s]", photo, strings.Join(updated, ", "))
	return nil
}
