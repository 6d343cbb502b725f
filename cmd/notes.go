// Package cmd: read-only note commands.
// blocks prints a note's blocks, search filters notes by a query and
// links prints the graph of notes reachable through internal links.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/LaffeyOvO/notesnook/core/fetch"
	"github.com/LaffeyOvO/notesnook/link"
	"github.com/spf13/cobra"
)

var flagNotesDir string

var blocksCmd = &cobra.Command{
	Use:   "blocks <note>",
	Short: "Print the blocks of a note as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runBlocks,
}

var searchCmd = &cobra.Command{
	Use:   "search <query> <note>...",
	Short: "Print the notes whose text matches any word of the query",
	Long: `Search prints every note whose plain text contains any word of the query,
ignoring case. Words match anywhere, so "foo bar" matches a note mentioning
"foobaz".`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSearch,
}

var linksCmd = &cobra.Command{
	Use:   "links <note-id>",
	Short: "Print the notes reachable from a note through internal links",
	Long: `Links follows nn://note links breadth-first from the given note and prints
the resulting graph as JSON. Note ids are looked up as <id>.html in the notes
directory.`,
	Example: `  notepipe links 6530a1b2c3 --notes_dir ./notes --max_depth 2`,
	Args:    cobra.ExactArgs(1),
	RunE:    runLinks,
}

func init() {
	rootCmd.AddCommand(blocksCmd, searchCmd, linksCmd)

	linksCmd.Flags().StringVar(&flagNotesDir, "notes_dir", ".", "Directory holding <id>.html notes")
	linksCmd.Flags().IntVar(&flagMaxNotes, "max_notes", link.DefaultMaxNotes, "Maximum notes to visit")
	linksCmd.Flags().IntVar(&flagMaxDepth, "max_depth", 0, "Maximum link depth (0 = unlimited)")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func runBlocks(cmd *cobra.Command, args []string) error {
	note, err := loadNote(cmd, args[0])
	if err != nil {
		return err
	}
	blocks, err := note.ExtractBlocks()
	if err != nil {
		return fmt.Errorf("extracting blocks: %w", err)
	}
	return writeJSON(cmd.OutOrStdout(), blocks)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("search query is empty")
	}

	out := cmd.OutOrStdout()
	for _, location := range args[1:] {
		note, err := loadNote(cmd, location)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "✗ %v\n", err)
			continue
		}
		if note.Matches(query) {
			fmt.Fprintln(out, location)
		}
	}
	return nil
}

func runLinks(cmd *cobra.Command, args []string) error {
	id := strings.TrimSuffix(args[0], filepath.Ext(args[0]))
	graph, err := link.Walk(cmd.Context(), id, fetch.New(), link.DirLocator(flagNotesDir), link.WalkOptions{
		MaxNotes: flagMaxNotes,
		MaxDepth: flagMaxDepth,
	})
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), graph)
}
