// Package cmd: attachment commands.
// postprocess moves inline images into the attachment store, resolve puts
// them back as data URIs, strip removes attachments by hash and
// attachments lists what the store holds.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/LaffeyOvO/notesnook/core/attachment"
	"github.com/LaffeyOvO/notesnook/core/fetch"
	"github.com/LaffeyOvO/notesnook/core/output"
	"github.com/LaffeyOvO/notesnook/core/transcode"
	"github.com/spf13/cobra"
)

// envStore names the environment variable holding the default store directory.
const envStore = "NOTEPIPE_STORE"

var (
	flagStore  string
	flagOut    string
	flagHashes []string
)

var postprocessCmd = &cobra.Command{
	Use:   "postprocess <note>",
	Short: "Move inline images into the attachment store",
	Long: `Postprocess saves every inline data: image of a note into the attachment
store, replaces its src with a data-hash reference and prints the rewritten
markup. The attachment hashes and internal links found are logged.

Examples:
  notepipe postprocess notes/abc.html --store ./attachments --out notes/abc.html`,
	Args: cobra.ExactArgs(1),
	RunE: runPostprocess,
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <note>",
	Short: "Inline stored images back into a note as data URIs",
	Args:  cobra.ExactArgs(1),
	RunE:  runResolve,
}

var stripCmd = &cobra.Command{
	Use:   "strip <note>",
	Short: "Remove attachments from a note by hash",
	Example: `  notepipe strip notes/abc.html --hash 1f2e3d4c5b6a7988
  notepipe strip notes/abc.html --hash a,b --out clean.html`,
	Args: cobra.ExactArgs(1),
	RunE: runStrip,
}

var attachmentsCmd = &cobra.Command{
	Use:   "attachments",
	Short: "List the attachments held by the store",
	Args:  cobra.NoArgs,
	RunE:  runAttachments,
}

func init() {
	rootCmd.AddCommand(postprocessCmd, resolveCmd, stripCmd, attachmentsCmd)

	for _, c := range []*cobra.Command{postprocessCmd, resolveCmd, attachmentsCmd} {
		c.Flags().StringVar(&flagStore, "store", os.Getenv(envStore), "Attachment store directory (env "+envStore+")")
	}
	for _, c := range []*cobra.Command{postprocessCmd, resolveCmd, stripCmd} {
		c.Flags().StringVarP(&flagOut, "out", "o", "", "Write the rewritten markup to this file instead of stdout")
	}
	stripCmd.Flags().StringSliceVar(&flagHashes, "hash", nil, "Attachment hash to remove (repeatable)")
	stripCmd.MarkFlagRequired("hash")
}

func openStore() (*attachment.Store, error) {
	if flagStore == "" {
		return nil, fmt.Errorf("an attachment store is required: pass --store or set %s", envStore)
	}
	store, err := attachment.Open(flagStore, slog.Default())
	if err != nil {
		return nil, fmt.Errorf("opening attachment store: %w", err)
	}
	return store, nil
}

func loadNote(cmd *cobra.Command, location string) (*transcode.Content, error) {
	result, err := fetch.New().Fetch(cmd.Context(), location)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return transcode.New(result.HTML, transcode.WithLogger(slog.Default())), nil
}

// emit writes rewritten markup to --out, or stdout when --out is unset.
func emit(cmd *cobra.Command, markup string) error {
	if flagOut == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), markup)
		return err
	}
	w, err := output.New(filepath.Dir(flagOut))
	if err != nil {
		return err
	}
	path, err := w.WriteRaw(filepath.Base(flagOut), []byte(markup))
	if err != nil {
		return err
	}
	slog.Info("wrote note", "path", path)
	return nil
}

func runPostprocess(cmd *cobra.Command, args []string) error {
	note, err := loadNote(cmd, args[0])
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := note.PostProcess(cmd.Context(), store)
	if err != nil {
		return fmt.Errorf("post-processing: %w", err)
	}
	slog.Info("post-processed note",
		"note", args[0],
		"hashes", result.Hashes,
		"internal_links", len(result.InternalLinks))
	for _, l := range result.InternalLinks {
		slog.Debug("internal link", "link", l.String())
	}
	return emit(cmd, result.Data)
}

func runResolve(cmd *cobra.Command, args []string) error {
	note, err := loadNote(cmd, args[0])
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	data, err := note.ResolveMedia(cmd.Context(), store)
	if err != nil {
		return err
	}
	return emit(cmd, data)
}

func runStrip(cmd *cobra.Command, args []string) error {
	note, err := loadNote(cmd, args[0])
	if err != nil {
		return err
	}
	return emit(cmd, note.StripAttachments(flagHashes))
}

func runAttachments(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	list, err := store.List(cmd.Context())
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), list)
}
