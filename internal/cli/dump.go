package cli

import (
	"fmt"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"

	"modulemd/internal/app"
)

type dumpOptions struct {
	Output string
	Strict bool
}

func newDumpCommand() *cobra.Command {
	opts := dumpOptions{}
	cmd := &cobra.Command{
		Use:   "dump <file>...",
		Short: "Parse one or more YAML streams into an index and re-emit it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.Output, "output", "", "Output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Fail on unrecognized YAML attributes")
	return cmd
}

func runDump(cmd *cobra.Command, opts dumpOptions, paths []string) error {
	strict := resolveBool(cmd, opts.Strict, "strict", "strict")
	idx := app.NewModuleIndex()

	for _, path := range paths {
		data, err := loadYAML(path)
		if err != nil {
			return err
		}
		for i, r := range idx.UpdateFromYAML(cmd.Context(), data, strict) {
			if r.Err != nil {
				return errbuilder.New().WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("%s: subdocument %d: %s", path, i, errorMessage(r.Err)))
			}
		}
	}

	data, err := idx.DumpToYAML(strict)
	if err != nil {
		return err
	}
	if opts.Output == "" {
		fmt.Print(string(data))
		return nil
	}
	if err := os.WriteFile(opts.Output, data, 0o644); err != nil {
		return errbuilder.New().WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("failed to write output file").WithCause(err)
	}
	return nil
}
