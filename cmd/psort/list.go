package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List photos in display order with their tags",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	sess, _, logger, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()
	defer logger.Close()

	photos := sess.Photos()
	for i, p := range photos {
		tags, err := sess.Tags(p.Name)
		if err != nil {
			return err
		}
		line := fmt.Sprintf("%4d  %s", i+1, p.Name)
		if len(tags) > 0 {
			line += "  [" + strings.Join(tags, ", ") + "]"
		}
		fmt.Println(line)
	}

	return nil
}
