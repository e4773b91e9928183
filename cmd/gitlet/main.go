// Command gitlet is the CLI façade over pkg/repo: one verb per invocation,
// stdout for both success text and user-facing failures, exit 0 for either.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dcgit/gitlet/pkg/repo"
	"github.com/spf13/cobra"
)

func commandTable() map[string]*cobra.Command {
	return map[string]*cobra.Command{
		"init":       newInitCmd(),
		"add":        newAddCmd(),
		"commit":     newCommitCmd(),
		"rm":         newRmCmd(),
		"log":        newLogCmd(),
		"global-log": newGlobalLogCmd(),
		"find":       newFindCmd(),
		"status":     newStatusCmd(),
		"checkout":   newCheckoutCmd(),
		"branch":     newBranchCmd(),
		"rm-branch":  newRmBranchCmd(),
		"reset":      newResetCmd(),
		"merge":      newMergeCmd(),
	}
}

// main implements the exact dispatch contract: empty argv, unknown verbs
// and argument-shape errors are all prescribed stdout lines with exit 0;
// only an unclassified internal error aborts nonzero. Argument-shape
// checking is delegated to each command's cobra.Command.Args validator via
// ValidateArgs, rather than duplicated inside RunE.
func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Println("Please enter a command.")
		return
	}

	table := commandTable()
	cmd, ok := table[args[0]]
	if !ok {
		fmt.Println("No command with that name exists.")
		return
	}

	rest := args[1:]
	if err := cmd.ValidateArgs(rest); err != nil {
		fmt.Println("Incorrect operands.")
		return
	}

	if err := cmd.RunE(cmd, rest); err != nil {
		var ue *repo.UserError
		if errors.As(err, &ue) {
			fmt.Println(ue.Error())
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
