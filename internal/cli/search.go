package cli

import (
	"fmt"
	"strconv"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"

	"modulemd/internal/app"
)

type searchOptions struct {
	Inputs  []string
	Strict  bool
	Module  string
	Stream  string
	Version string
	Context string
	Arch    string
	NSVCA   string
	RpmGlob string
}

func newSearchCommand() *cobra.Command {
	opts := searchOptions{}
	cmd := &cobra.Command{
		Use:   "search <file>...",
		Short: "Search an index's streams or RPM artifacts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Inputs = args
			return runSearch(cmd, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Fail on unrecognized YAML attributes")
	cmd.Flags().StringVar(&opts.Module, "module", "", "Filter by module name")
	cmd.Flags().StringVar(&opts.Stream, "stream", "", "Filter by stream name")
	cmd.Flags().StringVar(&opts.Version, "version", "", "Filter by build version")
	cmd.Flags().StringVar(&opts.Context, "context", "", "Filter by context")
	cmd.Flags().StringVar(&opts.Arch, "arch", "", "Filter by architecture")
	cmd.Flags().StringVar(&opts.NSVCA, "nsvca", "", "Match streams by an NSVCA glob instead of the discrete filters above")
	cmd.Flags().StringVar(&opts.RpmGlob, "rpm", "", "Match RPM artifact NEVRAs by glob instead of searching streams")
	return cmd
}

func runSearch(cmd *cobra.Command, opts searchOptions) error {
	strict := resolveBool(cmd, opts.Strict, "strict", "strict")
	idx := app.NewModuleIndex()

	for _, path := range opts.Inputs {
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

	if opts.RpmGlob != "" {
		matches, err := idx.SearchRpms(opts.RpmGlob)
		if err != nil {
			return err
		}
		for _, m := range matches {
			fmt.Println(m)
		}
		return nil
	}

	if opts.NSVCA != "" {
		streams, err := idx.SearchStreamsByNSVCAGlob(opts.NSVCA)
		if err != nil {
			return err
		}
		for _, s := range streams {
			nsvca, _ := s.StreamIdentity().NSVCA()
			fmt.Println(nsvca)
		}
		return nil
	}

	var version uint64
	if opts.Version != "" {
		v, err := strconv.ParseUint(opts.Version, 10, 64)
		if err != nil {
			return errbuilder.New().WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("--version must be a non-negative integer")
		}
		version = v
	}

	for _, s := range idx.SearchStreams(opts.Module, opts.Stream, version, opts.Context, opts.Arch) {
		nsvca, _ := s.StreamIdentity().NSVCA()
		fmt.Println(nsvca)
	}
	return nil
}
