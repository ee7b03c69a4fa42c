package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tbourn/go-study-session/internal/notes"
)

func newCardsCmd() *cobra.Command {
	var backs bool
	cmd := &cobra.Command{
		Use:   "cards [file]",
		Short: "Preview the cards a notes file would produce",
		Long: `Reads notes from file (or stdin when file is omitted or "-") and prints
the draft cards that importing them into a deck would append, one per line.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			return printDrafts(cmd.OutOrStdout(), in, backs)
		},
	}
	cmd.Flags().BoolVar(&backs, "backs", false, "also print the back text of every card")
	return cmd
}

func printDrafts(w io.Writer, r io.Reader, backs bool) error {
	drafts, err := notes.SegmentReader(r)
	if err != nil {
		return fmt.Errorf("read notes: %w", err)
	}
	if len(drafts) == 0 {
		_, err := fmt.Fprintln(w, "no cards")
		return err
	}
	for i, d := range drafts {
		if _, err := fmt.Fprintf(w, "%d. %s\n", i+1, d.Front); err != nil {
			return err
		}
		if backs {
			if _, err := fmt.Fprintf(w, "   %s\n", d.Back); err != nil {
				return err
			}
		}
	}
	return nil
}
