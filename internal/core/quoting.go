package core

// NeedsQuoting reports whether a scalar string must be emitted
// double-quoted so a YAML reader doesn't mistake it for a number: any
// scalar whose first character is a digit, '+', '-', or a '.' followed
// by a digit needs quoting. This catches the classic
// "stream name 5.30" case: without quoting, a YAML 1.1 reader emits it
// back as a float and module metadata silently corrupts.
func NeedsQuoting(scalar string) bool {
	if scalar == "" {
		return false
	}
	first := scalar[0]
	switch {
	case first >= '0' && first <= '9':
		return true
	case first == '+' || first == '-':
		return true
	case first == '.':
		return len(scalar) > 1 && scalar[1] >= '0' && scalar[1] <= '9'
	default:
		return false
	}
}

// IsHeuristicBool reports whether a YAML scalar is one of the two
// literals the XMD parser coerces to a boolean: "TRUE" or "FALSE",
// case-sensitive — no other coercions happen.
func IsHeuristicBool(scalar string) (value bool, ok bool) {
	switch scalar {
	case "TRUE":
		return true, true
	case "FALSE":
		return false, true
	default:
		return false, false
	}
}
