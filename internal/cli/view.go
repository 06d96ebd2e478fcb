package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/strata/internal/layerdoc"
	"github.com/roach88/strata/internal/props"
)

// LayerView is the resolved view of one layer, as emitted by view/export.
type LayerView struct {
	Layer  string         `json:"layer"`
	Parent string         `json:"parent,omitempty"`
	Frozen bool           `json:"frozen"`
	View   map[string]any `json:"view"`
}

// NewViewCommand creates the view command.
func NewViewCommand(rootOpts *RootOptions) *cobra.Command {
	var layerName string

	cmd := &cobra.Command{
		Use:   "view <document>",
		Short: "Render resolved layer views",
		Long: `Build the document's delegation chains and render each layer's fully
resolved view: inherited values included, tombstoned names excluded.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(rootOpts, args[0], layerName, cmd)
		},
	}
	cmd.Flags().StringVar(&layerName, "layer", "", "render only the named layer")
	return cmd
}

func runView(opts *RootOptions, path, layerName string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	doc, stores, err := loadAndBuild(formatter, path)
	if err != nil {
		return err
	}

	var views []LayerView
	for _, l := range doc.Layers {
		if layerName != "" && l.Name != layerName {
			continue
		}
		views = append(views, LayerView{
			Layer:  l.Name,
			Parent: l.Parent,
			Frozen: stores[l.Name].Frozen(),
			View:   stores[l.Name].All(true),
		})
	}
	if layerName != "" && len(views) == 0 {
		formatter.Error(ErrCodeUnknownLayer, fmt.Sprintf("layer %q not declared in %s", layerName, path), nil)
		return NewExitError(ExitFailure, fmt.Sprintf("%s: unknown layer %q", ErrCodeUnknownLayer, layerName))
	}

	if opts.Format == "json" {
		return formatter.Success(views)
	}
	for i, v := range views {
		if i > 0 {
			fmt.Fprintln(formatter.Writer)
		}
		renderLayerText(formatter.Writer, v)
	}
	return nil
}

func renderLayerText(w io.Writer, v LayerView) {
	if v.Frozen {
		fmt.Fprintf(w, "layer %s (frozen)\n", v.Layer)
	} else {
		fmt.Fprintf(w, "layer %s\n", v.Layer)
	}
	for _, k := range sortedKeys(v.View) {
		fmt.Fprintf(w, "  %s = %s\n", k, renderValue(v.View[k]))
	}
}

// loadAndBuild loads a document and builds its chains, emitting the
// error through the formatter and mapping it to an exit code.
func loadAndBuild(formatter *OutputFormatter, path string) (*layerdoc.Document, map[string]*props.Store, error) {
	doc, err := layerdoc.Load(path)
	if err != nil {
		return nil, nil, reportDocError(formatter, err)
	}
	formatter.VerboseLog("loaded %d layer(s) from %s", len(doc.Layers), path)

	stores, err := doc.Build()
	if err != nil {
		return nil, nil, reportDocError(formatter, err)
	}
	return doc, stores, nil
}

// reportDocError maps a document error onto CLI output and exit codes:
// unreadable paths are command errors, everything else is a domain
// failure.
func reportDocError(formatter *OutputFormatter, err error) error {
	var de *layerdoc.DocError
	if errors.As(err, &de) {
		exit := ExitFailure
		code := ErrCodeInvalidDoc
		if de.Code == layerdoc.CodeNotFound {
			exit = ExitCommandError
			code = ErrCodeNotFound
		}
		formatter.Error(code, de.Message, de.Code)
		return &ExitError{Code: exit, Message: fmt.Sprintf("%s: %s", code, de.Message), Err: err}
	}
	formatter.Error(ErrCodeGeneric, err.Error(), nil)
	return &ExitError{Code: ExitFailure, Message: err.Error(), Err: err}
}
