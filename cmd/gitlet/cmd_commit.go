package main

import (
	"github.com/dcgit/gitlet/pkg/object"
	"github.com/dcgit/gitlet/pkg/repo"
	"github.com/spf13/cobra"
)

func newCommitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commit <message>",
		Short: "Record a new commit from the staging area",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			_, err = r.Commit(args[0], object.Hash(""))
			return err
		},
	}
}
