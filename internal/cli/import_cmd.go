package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/alexanderramin/prodtime/internal/cli/formatter"
	"github.com/alexanderramin/prodtime/internal/importer"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var watchDir string

	cmd := &cobra.Command{
		Use:   "import [FILE]",
		Short: "Import production sessions from a JSON file",
		Long: `Import production sessions from a JSON file of the form
{"sessions": [{"task_id": "...", "start": ..., "end": ..., "quantity": 3}]}.

Timestamps may be RFC3339 strings, "YYYY-MM-DD HH:MM[:SS]" strings or unix
epoch numbers in seconds or milliseconds. Rows with missing or inverted
timestamps are skipped and reported.

With --watch DIR, every JSON file dropped into DIR is imported as it
arrives until the command is interrupted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if watchDir == "" {
				if len(args) == 0 {
					return errors.New("a FILE argument or --watch DIR is required")
				}
				res, err := app.Import.ImportSessions(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprint(out, formatter.FormatImportResult(res.Imported, res.Skipped))
				return nil
			}

			fmt.Fprintf(out, "Watching %s for session files (Ctrl+C to stop)\n", watchDir)
			return importer.WatchDropFolder(cmd.Context(), watchDir, importer.DefaultSettleDelay, func(path string) {
				fmt.Fprintln(out, formatter.Bold(filepath.Base(path)))
				res, err := app.Import.ImportSessions(cmd.Context(), path)
				if err != nil {
					fmt.Fprintln(out, formatter.StyleRed.Render("✘ "+err.Error()))
					return
				}
				fmt.Fprint(out, formatter.FormatImportResult(res.Imported, res.Skipped))
			})
		},
	}

	cmd.Flags().StringVar(&watchDir, "watch", "", "Import every JSON file written to this directory")

	return cmd
}
