package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/strata/internal/snapshot"
)

// ExportResult is the JSON payload of a successful export.
type ExportResult struct {
	Output string `json:"output"`
	Layers int    `json:"layers"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <document> <output.db>",
		Short: "Export resolved layer views into a SQLite snapshot",
		Long: `Build the document's delegation chains and write every layer's fully
resolved view into a SQLite snapshot file. The snapshot is a one-way
dump for external consumers; strata never reads it back.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, args[0], args[1], cmd)
		},
	}
	return cmd
}

func runExport(opts *RootOptions, path, out string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	doc, _, err := loadAndBuild(formatter, path)
	if err != nil {
		return err
	}

	if err := snapshot.Write(cmd.Context(), out, doc); err != nil {
		formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("writing snapshot: %v", err), nil)
		return &ExitError{Code: ExitCommandError, Message: "writing snapshot", Err: err}
	}
	formatter.VerboseLog("wrote %d layer(s) to %s", len(doc.Layers), out)

	if opts.Format == "json" {
		return formatter.Success(ExportResult{Output: out, Layers: len(doc.Layers)})
	}
	fmt.Fprintf(formatter.Writer, "✓ exported %d layer(s) to %s\n", len(doc.Layers), out)
	return nil
}
