package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"

	"modulemd/internal/app"
)

type mergeOptions struct {
	Inputs               []string
	Output               string
	Strict               bool
	StrictDefaultStreams bool
}

// parseMergeInput splits a "path[:priority]" argument; priority
// defaults to 0 when omitted.
func parseMergeInput(arg string) (string, int32, error) {
	path, rest, hasPriority := strings.Cut(arg, ":")
	if !hasPriority {
		return arg, 0, nil
	}
	priority, err := strconv.Atoi(rest)
	if err != nil {
		return "", 0, errbuilder.New().WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid priority in " + arg)
	}
	return path, int32(priority), nil
}

func newMergeCommand() *cobra.Command {
	opts := mergeOptions{}
	cmd := &cobra.Command{
		Use:   "merge <file[:priority]>...",
		Short: "Merge module indexes, higher priority overriding lower",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Inputs = args
			return runMerge(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Output, "output", "", "Output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Fail on unrecognized YAML attributes")
	cmd.Flags().BoolVar(&opts.StrictDefaultStreams, "strict-default-streams", false, "Fail instead of poisoning on an equal-priority default-stream collision")
	return cmd
}

func runMerge(cmd *cobra.Command, opts mergeOptions) error {
	strict := resolveBool(cmd, opts.Strict, "strict", "strict")
	merger := app.NewIndexMerger(opts.StrictDefaultStreams)

	for _, arg := range opts.Inputs {
		path, priority, err := parseMergeInput(arg)
		if err != nil {
			return err
		}
		data, err := loadYAML(path)
		if err != nil {
			return err
		}
		idx := app.NewModuleIndex()
		for _, r := range idx.UpdateFromYAML(cmd.Context(), data, strict) {
			if r.Err != nil {
				return errbuilder.New().WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(path + ": " + errorMessage(r.Err))
			}
		}
		if err := merger.Associate(idx, priority); err != nil {
			return err
		}
	}

	resolved, err := merger.Resolve()
	if err != nil {
		return err
	}
	data, err := resolved.DumpToYAML(strict)
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
