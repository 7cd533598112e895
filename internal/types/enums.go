package types

// DocumentKind identifies which subdocument schema a YAML "document:"
// header dispatches to.
type DocumentKind string

const (
	DocumentKindModulemd       DocumentKind = "modulemd"
	DocumentKindModulemdStream DocumentKind = "modulemd-stream"
	DocumentKindDefaults       DocumentKind = "modulemd-defaults"
	DocumentKindTranslations   DocumentKind = "modulemd-translations"
	DocumentKindPackager       DocumentKind = "modulemd-packager"
	DocumentKindObsoletes      DocumentKind = "modulemd-obsoletes"
)

// StreamVersion is the mdversion of a ModuleStream document.
type StreamVersion uint64

const (
	StreamVersionUnset StreamVersion = 0
	StreamVersionV1    StreamVersion = 1
	StreamVersionV2    StreamVersion = 2
	StreamVersionV3    StreamVersion = 3
)

// DefaultsVersion is the mdversion of a Defaults document. Only one
// version is defined; it exists as an enum so the codec and index can
// treat it uniformly alongside stream/packager versions.
type DefaultsVersion uint64

const (
	DefaultsVersionUnset DefaultsVersion = 0
	DefaultsVersionV1    DefaultsVersion = 1
)

// PackagerVersion is the mdversion of a PackagerV3 document.
type PackagerVersion uint64

const (
	PackagerVersionUnset PackagerVersion = 0
	PackagerVersionV3    PackagerVersion = 3
)

// CompressionType is the result of filename-extension/MIME sniffing.
// The core never links a decompression library; it only classifies.
// Decompression itself is an external input-source adapter.
type CompressionType string

const (
	CompressionUnknown CompressionType = ""
	CompressionNone    CompressionType = "none"
	CompressionGzip    CompressionType = "gzip"
	CompressionBzip2   CompressionType = "bzip2"
	CompressionXz      CompressionType = "xz"
	CompressionZstd    CompressionType = "zstd"
)

// ErrorKind enumerates the two error-domain taxonomies: general
// document errors and YAML-specific parse/emit errors. core.Error
// carries one of these as its Kind and wraps an errbuilder error whose
// errbuilder.Code is mapped from it; see internal/core/errors.go.
type ErrorKind string

const (
	// General domain.
	ErrorUpgrade         ErrorKind = "UPGRADE_ERROR"
	ErrorValidate        ErrorKind = "VALIDATE_ERROR"
	ErrorFileAccess      ErrorKind = "FILE_ACCESS_ERROR"
	ErrorNoMatches       ErrorKind = "NO_MATCHES"
	ErrorTooManyMatches  ErrorKind = "TOO_MANY_MATCHES"
	ErrorMagic           ErrorKind = "MAGIC_ERROR"
	ErrorNotImplemented  ErrorKind = "NOT_IMPLEMENTED"
	ErrorMissingRequired ErrorKind = "MISSING_REQUIRED"

	// YAML domain.
	ErrorYAMLOpen             ErrorKind = "OPEN"
	ErrorYAMLProgramming      ErrorKind = "PROGRAMMING"
	ErrorYAMLUnparseable      ErrorKind = "UNPARSEABLE"
	ErrorYAMLParse            ErrorKind = "PARSE"
	ErrorYAMLEmit             ErrorKind = "EMIT"
	ErrorYAMLMissingRequired  ErrorKind = "MISSING_REQUIRED"
	ErrorYAMLEventInit        ErrorKind = "EVENT_INIT"
	ErrorYAMLInconsistent     ErrorKind = "INCONSISTENT"
	ErrorYAMLUnknownAttribute ErrorKind = "UNKNOWN_ATTR"
)

// DependencyKind distinguishes build-time from run-time dependency
// mappings within a Dependencies block.
type DependencyKind string

const (
	DependencyKindBuildtime DependencyKind = "buildtime"
	DependencyKindRuntime   DependencyKind = "runtime"
)
