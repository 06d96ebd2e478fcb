package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/strata/internal/layerdoc"
)

// CheckResult holds document validation results.
type CheckResult struct {
	Valid  bool         `json:"valid"`
	Layers int          `json:"layers"`
	Errors []CheckError `json:"errors,omitempty"`
}

// CheckError is one structural violation found by check.
type CheckError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <document>",
		Short: "Validate a layer document without rendering it",
		Long: `Validate a layer document: parse, check layer names and parent
references, and build the chains to surface delegation cycles. Collects
every violation instead of stopping at the first.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runCheck(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	doc, err := layerdoc.ParseFile(path)
	if err != nil {
		return reportDocError(formatter, err)
	}
	formatter.VerboseLog("parsed %d layer(s) from %s", len(doc.Layers), path)

	var checkErrs []CheckError
	valErrs := doc.Validate()
	for _, ve := range valErrs {
		checkErrs = append(checkErrs, CheckError{Code: ve.Code, Message: ve.Message})
	}

	// Cycles only surface when the chains are actually wired; skip the
	// build when the references are already broken.
	if len(valErrs) == 0 {
		if _, err := doc.Build(); err != nil {
			var de *layerdoc.DocError
			if errors.As(err, &de) {
				checkErrs = append(checkErrs, CheckError{Code: de.Code, Message: de.Message})
			} else {
				checkErrs = append(checkErrs, CheckError{Code: ErrCodeGeneric, Message: err.Error()})
			}
		}
	}

	result := CheckResult{
		Valid:  len(checkErrs) == 0,
		Layers: len(doc.Layers),
		Errors: checkErrs,
	}

	if result.Valid {
		if opts.Format == "json" {
			return formatter.Success(result)
		}
		fmt.Fprintf(formatter.Writer, "✓ document valid (%d layers)\n", result.Layers)
		return nil
	}

	if opts.Format == "json" {
		formatter.Error(ErrCodeInvalidDoc, fmt.Sprintf("document invalid (%d error(s))", len(checkErrs)), result)
	} else {
		fmt.Fprintf(formatter.Writer, "✗ document invalid (%d error(s))\n", len(checkErrs))
		for _, ce := range checkErrs {
			fmt.Fprintf(formatter.Writer, "  [%s] %s\n", ce.Code, ce.Message)
		}
	}
	return NewExitError(ExitFailure, fmt.Sprintf("document invalid: %d error(s)", len(checkErrs)))
}
