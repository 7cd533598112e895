package cli

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"

	"modulemd/internal/app"
)

type validateOptions struct {
	Strict bool
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Parse and validate YAML subdocuments",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, opts, args)
		},
	}
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Fail on unrecognized YAML attributes")
	return cmd
}

func runValidate(cmd *cobra.Command, opts validateOptions, paths []string) error {
	strict := resolveBool(cmd, opts.Strict, "strict", "strict")

	total, failed := 0, 0
	for _, path := range paths {
		data, err := loadYAML(path)
		if err != nil {
			return err
		}
		idx := app.NewModuleIndex()
		results := idx.UpdateFromYAML(cmd.Context(), data, strict)
		for i, r := range results {
			total++
			if r.Err != nil {
				failed++
				fmt.Printf("%s: subdocument %d: FAIL: %s\n", path, i, errorMessage(r.Err))
				continue
			}
			if err := r.Document.Validate(); err != nil {
				failed++
				fmt.Printf("%s: subdocument %d: FAIL: %s\n", path, i, errorMessage(err))
				continue
			}
			fmt.Printf("%s: subdocument %d: OK (%s)\n", path, i, r.Document.Kind())
		}
	}
	fmt.Printf("%d/%d subdocuments valid\n", total-failed, total)
	if failed > 0 {
		return errbuilder.New().WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%d of %d subdocuments failed validation", failed, total))
	}
	return nil
}
