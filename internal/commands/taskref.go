package commands

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a 1-based task number from args.
// Exactly one all-digit argument is accepted.
func ParseTaskRef(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("too many arguments")
	}

	ref := args[0]
	if !isAllDigits(ref) {
		return 0, fmt.Errorf("invalid task reference: %s", ref)
	}
	num, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("invalid task reference: %s", ref)
	}
	return num, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
