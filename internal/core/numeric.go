package core

import (
	"modulemd/internal/types"
)

// maxUint64Legacy is the value a specific distro's published metadata
// used to encode "unset" (the coercion to -1 the original C
// implementation quietly performed). Rejected by default; the
// historical workaround is guarded behind an explicit opt-in so
// callers must choose it deliberately.
const maxUint64Legacy = "18446744073709551615"

// ParseUint64Strict parses an unsigned 64-bit scalar in base 10 only.
// allowLegacyMax, when true, accepts the one specific literal
// "18446744073709551615" a legacy distro's metadata used and returns
// it as value 0 with legacySentinel=true and a nil error, so the
// caller can decide how to surface it, rather than silently coercing
// to an arbitrary number.
func ParseUint64Strict(raw string, allowLegacyMax bool) (value uint64, legacySentinel bool, err error) {
	if raw == "" {
		return 0, false, NewError(types.ErrorYAMLParse, "integer scalar must not be empty")
	}
	if allowLegacyMax && raw == maxUint64Legacy {
		return 0, true, nil
	}
	if raw[0] == '-' {
		return 0, false, NewError(types.ErrorYAMLParse, "unsigned integer scalar must not be negative: "+raw)
	}
	if raw[0] == '+' {
		return 0, false, NewError(types.ErrorYAMLParse, "unsigned integer scalar must not carry an explicit sign: "+raw)
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, false, NewError(types.ErrorYAMLParse, "unsigned integer scalar contains non-digit characters: "+raw)
		}
	}
	// Reject leading zeros beyond a single "0", matching base-10-only,
	// no-trailing-garbage semantics: "007" is garbage-adjacent, not a
	// legitimate alternate representation of 7.
	if len(raw) > 1 && raw[0] == '0' {
		return 0, false, NewError(types.ErrorYAMLParse, "unsigned integer scalar has a leading zero: "+raw)
	}

	const maxUint64 = "18446744073709551615"
	if len(raw) > len(maxUint64) || (len(raw) == len(maxUint64) && raw > maxUint64) {
		return 0, false, NewError(types.ErrorYAMLParse, "unsigned integer scalar overflows 64 bits: "+raw)
	}

	var result uint64
	for _, r := range raw {
		digit := uint64(r - '0')
		result = result*10 + digit
	}
	return result, false, nil
}
