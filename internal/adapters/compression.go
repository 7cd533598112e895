package adapters

import (
	"bytes"
	"path/filepath"
	"strings"

	"modulemd/internal/ports"
)

// magicSniffer implements ports.CompressionAdapter by inspecting a
// filename's extension first and falling back to a magic-number sniff
// of the stream's first bytes. It only reports which scheme a stream
// is compressed with; it never decompresses.
type magicSniffer struct {
	name string
}

// NewCompressionAdapter returns the module's only CompressionAdapter.
// name is an optional filename or URL used for the extension-based
// fast path; pass "" to rely on magic-number sniffing alone.
func NewCompressionAdapter(name string) ports.CompressionAdapter {
	return magicSniffer{name: name}
}

var extensionSchemes = map[string]string{
	".gz":       "gzip",
	".gzip":     "gzip",
	".bz2":      "bzip2",
	".bzip2":    "bzip2",
	".xz":       "xz",
	".zst":      "zstd",
	".zstd":     "zstd",
	".yaml":     "",
	".yml":      "",
	".txt":      "",
	".modulemd": "",
}

var magicNumbers = []struct {
	scheme string
	magic  []byte
}{
	{"gzip", []byte{0x1f, 0x8b}},
	{"bzip2", []byte("BZh")},
	{"xz", []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}},
	{"zstd", []byte{0x28, 0xb5, 0x2f, 0xfd}},
}

// Detect reports the compression scheme of a stream, or "" if it looks
// like plain text (including plain YAML). The filename extension wins
// when it names a recognized scheme; otherwise the first bytes of head
// are sniffed against known magic numbers.
func (m magicSniffer) Detect(head []byte) (string, error) {
	if m.name != "" {
		ext := strings.ToLower(filepath.Ext(m.name))
		if scheme, ok := extensionSchemes[ext]; ok {
			return scheme, nil
		}
	}
	for _, entry := range magicNumbers {
		if bytes.HasPrefix(head, entry.magic) {
			return entry.scheme, nil
		}
	}
	return "", nil
}
