package cli

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"modulemd/internal/adapters"
)

// loadYAML reads one input file, rejecting it up front if it looks
// compressed: this module detects compression schemes but never
// decompresses.
func loadYAML(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errbuilder.New().WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("failed to open input file").WithCause(err)
	}
	defer f.Close()

	data, ok := adapters.ReadAll(adapters.NewReaderSource(f))
	if !ok {
		return nil, errbuilder.New().WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("failed to read input file: " + path)
	}

	head := data
	if len(head) > 16 {
		head = head[:16]
	}
	scheme, err := adapters.NewCompressionAdapter(path).Detect(head)
	if err != nil {
		return nil, err
	}
	if scheme != "" {
		return nil, errbuilder.New().WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(path + " looks " + scheme + "-compressed; decompress it before passing it to modulemd")
	}
	return data, nil
}
