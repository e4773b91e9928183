package main

import (
	"fmt"

	"github.com/dcgit/gitlet/pkg/repo"
	"github.com/spf13/cobra"
)

// checkoutArgs accepts the three shapes gitlet's checkout supports:
//
//	checkout -- <file>
//	checkout <commit id> -- <file>
//	checkout <branch>
func checkoutArgs(cmd *cobra.Command, args []string) error {
	switch {
	case len(args) == 1:
		return nil
	case len(args) == 2 && args[0] == "--":
		return nil
	case len(args) == 3 && args[1] == "--":
		return nil
	default:
		return fmt.Errorf("checkout: unrecognized argument shape %v", args)
	}
}

func newCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Restore a file from HEAD or a commit, or switch branches",
		Args:  checkoutArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			switch {
			case len(args) == 2:
				return r.CheckoutFile(args[1])
			case len(args) == 3:
				return r.CheckoutCommitFile(args[0], args[2])
			default:
				return r.CheckoutBranch(args[0])
			}
		},
	}
}
