package ports

// ReaderCallback mirrors libyaml's yaml_read_handler_t: it fills buffer
// up to len(buffer) bytes, returns the number of bytes actually read
// and whether the read succeeded. A callback that returns ok=true with
// n=0 signals clean EOF; ok=false signals a read error.
type ReaderCallback func(buffer []byte) (n int, ok bool)

// WriterCallback mirrors libyaml's yaml_write_handler_t: it accepts a
// chunk of emitted bytes and reports whether the write succeeded.
type WriterCallback func(chunk []byte) (ok bool)

// InputSource is the boundary between the YAML codec and whatever
// supplies it raw, already-decompressed bytes. This module implements
// sources backed by an in-memory byte slice and by an io.Reader; a
// compressed source is expected to sit in front of an InputSource as a
// CompressionAdapter and is out of scope here.
type InputSource interface {
	// Read pulls the next chunk of raw bytes, in the same shape as
	// ReaderCallback, so adapters can bridge directly to libyaml-style
	// consumers.
	Read(buffer []byte) (n int, ok bool)
}

// CompressionAdapter detects whether a byte stream is compressed and,
// if so, which scheme, without performing the decompression itself.
// Callers that need the payload decompressed are expected to plug in
// their own gzip/xz/zstd reader in front of the InputSource this
// module consumes: this module does not implement
// compression/decompression itself.
type CompressionAdapter interface {
	// Detect inspects up to the first few bytes of a stream (a magic
	// number sniff) and reports the compression scheme, or "" if the
	// stream looks uncompressed.
	Detect(head []byte) (scheme string, err error)
}
