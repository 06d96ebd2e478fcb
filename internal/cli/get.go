package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// GetResult is the JSON payload of a successful get.
type GetResult struct {
	Layer string `json:"layer"`
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "get <document> <layer> <name>",
		Short:         "Resolve one name through a layer's delegation chain",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(rootOpts, args[0], args[1], args[2], cmd)
		},
	}
	return cmd
}

func runGet(opts *RootOptions, path, layerName, name string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	_, stores, err := loadAndBuild(formatter, path)
	if err != nil {
		return err
	}

	store, ok := stores[layerName]
	if !ok {
		formatter.Error(ErrCodeUnknownLayer, fmt.Sprintf("layer %q not declared in %s", layerName, path), nil)
		return NewExitError(ExitFailure, fmt.Sprintf("%s: unknown layer %q", ErrCodeUnknownLayer, layerName))
	}

	value, found := store.Get(name)
	if !found {
		formatter.Error(ErrCodeNoValue, fmt.Sprintf("no value for %q in layer %q", name, layerName), nil)
		return NewExitError(ExitFailure, fmt.Sprintf("%s: no value for %q", ErrCodeNoValue, name))
	}

	if opts.Format == "json" {
		return formatter.Success(GetResult{Layer: layerName, Name: name, Value: value})
	}
	fmt.Fprintln(formatter.Writer, renderValue(value))
	return nil
}
