// Package cmd: convert command.
// This is the main command that orchestrates the pipeline:
// load → transcode → render → write.
//
// It handles flag validation, renderer selection, and the --only / --all modes.
// In --all mode every note reachable through nn://note links is converted
// too, looking linked notes up as <id>.html next to the root note.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/LaffeyOvO/notesnook/core"
	"github.com/LaffeyOvO/notesnook/core/fetch"
	"github.com/LaffeyOvO/notesnook/core/output"
	"github.com/LaffeyOvO/notesnook/core/render"
	"github.com/LaffeyOvO/notesnook/core/transcode"
	"github.com/LaffeyOvO/notesnook/link"
	"github.com/spf13/cobra"
)

// Flag variables.
var (
	flagOnly      bool
	flagAll       bool
	flagText      bool
	flagPDF       bool
	flagMarkdown  bool
	flagJSON      bool
	flagTitle     string
	flagMaxNotes  int
	flagMaxDepth  int
	flagOutputDir string
)

var convertCmd = &cobra.Command{
	Use:   "convert <note>",
	Short: "Convert a note to the specified output format",
	Long: `Convert loads a note's HTML from a file or URL, transcodes it and writes
it in the specified output format (text, Markdown, JSON or PDF).

Examples:
  notepipe convert notes/abc.html --text
  notepipe convert notes/abc.html --json --output_dir ./out
  notepipe convert notes/abc.html --all --markdown --max_depth 2
  notepipe convert https://example.com/notes/abc.html --pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	// Mode flags.
	convertCmd.Flags().BoolVar(&flagOnly, "only", false, "Convert only the given note (default)")
	convertCmd.Flags().BoolVar(&flagAll, "all", false, "Also convert every note reachable through internal links")
	convertCmd.Flags().IntVar(&flagMaxNotes, "max_notes", link.DefaultMaxNotes, "Maximum notes to convert with --all")
	convertCmd.Flags().IntVar(&flagMaxDepth, "max_depth", 0, "Maximum link depth with --all (0 = unlimited)")

	// Output format flags (mutually exclusive).
	convertCmd.Flags().BoolVar(&flagText, "text", false, "Output wrapped plain text")
	convertCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")
	convertCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	convertCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")

	convertCmd.Flags().StringVar(&flagTitle, "title", "", "Title to render (default: the note's first paragraph)")
	convertCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	location := args[0]

	if err := validateFlags(); err != nil {
		return err
	}
	if flagAll && fetch.IsRemote(location) {
		return fmt.Errorf("--all needs a local note, got %s", location)
	}

	renderer, err := selectRenderer()
	if err != nil {
		return err
	}

	fetcher := fetch.New()
	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if flagAll {
		return runAll(ctx, cmd, location, fetcher, renderer, writer)
	}
	return runOnly(ctx, cmd, location, fetcher, renderer, writer)
}

// runOnly processes a single note through the pipeline.
func runOnly(
	ctx context.Context,
	cmd *cobra.Command,
	location string,
	fetcher core.Fetcher,
	renderer core.Renderer,
	writer *output.Writer,
) error {
	data, err := processNote(ctx, location, flagTitle, fetcher, renderer)
	if err != nil {
		return err
	}

	path, err := writer.WriteNote(location, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", path)
	return nil
}

// runAll walks the notes linked from location and processes each.
func runAll(
	ctx context.Context,
	cmd *cobra.Command,
	location string,
	fetcher core.Fetcher,
	renderer core.Renderer,
	writer *output.Writer,
) error {
	out := cmd.OutOrStdout()
	rootID := strings.TrimSuffix(filepath.Base(location), filepath.Ext(location))
	locate := link.DirLocator(filepath.Dir(location))

	fmt.Fprintf(out, "Following links from %s...\n", location)
	graph, err := link.Walk(ctx, rootID, fetcher, locate, link.WalkOptions{
		MaxNotes: flagMaxNotes,
		MaxDepth: flagMaxDepth,
	})
	if err != nil {
		return fmt.Errorf("following links: %w", err)
	}
	for _, id := range graph.Missing {
		slog.Warn("linked note not found", "id", id, "location", locate(id))
	}

	fmt.Fprintf(out, "Found %d notes to process\n", len(graph.Notes))

	var errCount int
	for i, id := range graph.Notes {
		noteLocation := locate(id)
		fmt.Fprintf(out, "[%d/%d] Processing %s\n", i+1, len(graph.Notes), noteLocation)

		title := ""
		if id == rootID {
			title = flagTitle
		}
		data, err := processNote(ctx, noteLocation, title, fetcher, renderer)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "  ✗ Error: %v\n", err)
			errCount++
			continue
		}

		var path string
		if id == rootID {
			path, err = writer.WriteNote(location, data, renderer.Extension())
		} else {
			path, err = writer.WriteLinked(location, id, data, renderer.Extension())
		}
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "  ✗ Write error: %v\n", err)
			errCount++
			continue
		}
		fmt.Fprintf(out, "  ✓ Written: %s\n", path)
	}

	if errCount > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "\n%d/%d notes failed\n", errCount, len(graph.Notes))
	}
	return nil
}

// processNote runs a single note through the full pipeline.
func processNote(
	ctx context.Context,
	location string,
	title string,
	fetcher core.Fetcher,
	renderer core.Renderer,
) ([]byte, error) {
	result, err := fetcher.Fetch(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	note := transcode.New(result.HTML, transcode.WithLogger(slog.Default()))
	meta := core.NoteMetadata{
		Source:   location,
		Title:    title,
		LoadedAt: time.Now().UTC().Format(time.RFC3339),
	}

	data, err := renderer.Render(note, meta)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return data, nil
}

// validateFlags checks that exactly one output format is chosen and
// that --only and --all are not both specified.
func validateFlags() error {
	if flagOnly && flagAll {
		return fmt.Errorf("--only and --all are mutually exclusive")
	}

	formatCount := 0
	for _, set := range []bool{flagText, flagPDF, flagMarkdown, flagJSON} {
		if set {
			formatCount++
		}
	}
	if formatCount == 0 {
		return fmt.Errorf("exactly one output format is required: --text, --markdown, --json, or --pdf")
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}

	if flagAll && flagMaxNotes < 0 {
		return fmt.Errorf("--max_notes must not be negative")
	}
	if flagAll && flagMaxDepth < 0 {
		return fmt.Errorf("--max_depth must not be negative")
	}
	return nil
}

// selectRenderer creates the appropriate Renderer based on flags.
func selectRenderer() (core.Renderer, error) {
	switch {
	case flagText:
		return render.NewTextRenderer(), nil
	case flagMarkdown:
		return render.NewMarkdownRenderer(), nil
	case flagJSON:
		return render.NewJSONRenderer(), nil
	case flagPDF:
		return render.NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("no output format selected")
	}
}
