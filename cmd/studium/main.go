// Command studium runs the study-session API and related tooling.
//
// @title       Studium API
// @version     1.0
// @description Study-session API: tutoring conversation, daily plan, flashcard decks and account sign-in.
// @BasePath    /api/v1
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "studium",
		Short:         "Study-session API and tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}
	root.AddCommand(newServeCmd(), newCardsCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "studium:", err)
		os.Exit(1)
	}
}
