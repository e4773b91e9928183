package main

import (
	"fmt"

	"github.com/dcgit/gitlet/pkg/repo"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print branches and the staged/removed/modified/untracked lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			branches, err := r.ListBranches()
			if err != nil {
				return err
			}
			current, err := r.CurrentBranch()
			if err != nil {
				return err
			}
			st, err := r.Status()
			if err != nil {
				return err
			}
			fmt.Print(repo.FormatStatus(current, branches, st))
			return nil
		},
	}
}
