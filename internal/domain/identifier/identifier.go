// Package identifier produces the sequential display ids (AUTH001, PAT001, NPI001, INS001)
// assigned to authorizations and reference records.
package identifier

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Display id prefixes
const (
	PrefixAuthorization = "AUTH"
	PrefixPatient       = "PAT"
	PrefixProvider      = "NPI"
	PrefixInsurance     = "INS"
)

// ErrMalformedID is returned alongside the fallback id when the last known id has an unparsable suffix
var ErrMalformedID = errors.New("malformed display id")

// First returns the id assigned when no previous id exists
func First(prefix string) string {
	return prefix + "001"
}

// Next returns the id following last.
//
// An empty last, or one that does not carry prefix, starts the sequence at <prefix>001.
// A suffix that does not parse also yields <prefix>001, together with an error wrapping
// ErrMalformedID so the caller can log it. The returned id is always usable.
func Next(prefix, last string) (string, error) {
	if last == "" || !strings.HasPrefix(last, prefix) {
		return First(prefix), nil
	}

	suffix := last[len(prefix):]
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 0 {
		return First(prefix), fmt.Errorf("%w: %q", ErrMalformedID, last)
	}

	return fmt.Sprintf("%s%03d", prefix, n+1), nil
}
