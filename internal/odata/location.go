package odata

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedLocation is returned when Location header is not in ...({id}) shape
var ErrMalformedLocation = errors.New("location is not in the ...({id}) shape")

// ParseLocation extracts entity id from Location header value like
// https://host/api/data/v9.2/accounts(3fa8...-b8e8)
func ParseLocation(location string) (string, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return "", fmt.Errorf("empty location - %w", ErrMalformedLocation)
	}

	if !strings.HasSuffix(location, ")") {
		return "", fmt.Errorf("location %q has no closing parenthesis - %w", location, ErrMalformedLocation)
	}

	open := strings.LastIndex(location, "(")
	if open <= 0 {
		return "", fmt.Errorf("location %q has no opening parenthesis - %w", location, ErrMalformedLocation)
	}

	id := location[open+1 : len(location)-1]
	if id == "" || strings.ContainsAny(id, "()") {
		return "", fmt.Errorf("location %q holds invalid id segment - %w", location, ErrMalformedLocation)
	}
	return id, nil
}
