package main

import (
	"fmt"

	"github.com/dcgit/gitlet/pkg/repo"
	"github.com/spf13/cobra"
)

func newMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge <branch>",
		Short: "Merge another branch into the current branch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			result, err := r.Merge(args[0])
			if err != nil {
				return err
			}
			switch {
			case result.FastForwarded:
				fmt.Println("Current branch fast-forwarded.")
			case result.HadConflicts:
				fmt.Println("Encountered a merge conflict.")
			}
			return nil
		},
	}
}
