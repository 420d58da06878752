package session

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/arthur-debert/dotlink/pkg/errors"
)

// SelectionKind says what a selection token asked for
type SelectionKind int

const (
	SelectEmpty SelectionKind = iota
	SelectQuit
	SelectAll
	SelectIndices
)

// Selection is a parsed selection token
type Selection struct {
	Kind SelectionKind
	// Indices are 1-based, in input order, duplicates kept
	Indices []int
	// Invalid lists out-of-range numbers, deduplicated, in input order
	Invalid []int
}

var quitWords = map[string]bool{"q": true, "quit": true, "exit": true}

// ParseSelection interprets the answer to the selection prompt for a
// manifest of count entries. Unparsable input returns an ErrInvalidInput
// error; numbers outside [1, count] return ErrOutOfRange with Invalid set.
func ParseSelection(token string, count int) (Selection, error) {
	trimmed := strings.TrimSpace(token)
	lower := strings.ToLower(trimmed)

	switch {
	case trimmed == "":
		return Selection{Kind: SelectEmpty}, nil
	case quitWords[lower]:
		return Selection{Kind: SelectQuit}, nil
	case lower == "all":
		indices := make([]int, count)
		for i := range indices {
			indices[i] = i + 1
		}
		return Selection{Kind: SelectAll, Indices: indices}, nil
	}

	fields := strings.FieldsFunc(trimmed, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
	if len(fields) == 0 {
		return Selection{}, errors.Newf(errors.ErrInvalidInput, "invalid selection %q", token).
			WithDetail("input", token)
	}

	sel := Selection{Kind: SelectIndices}
	seenInvalid := make(map[int]bool)
	for _, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return Selection{}, errors.Newf(errors.ErrInvalidInput,
				"invalid selection %q: enter numbers, 'all' or 'q'", token).
				WithDetail("input", token)
		}
		if n < 1 || n > count {
			if !seenInvalid[n] {
				seenInvalid[n] = true
				sel.Invalid = append(sel.Invalid, n)
			}
			continue
		}
		sel.Indices = append(sel.Indices, n)
	}

	if len(sel.Invalid) > 0 {
		return sel, errors.Newf(errors.ErrOutOfRange, "invalid selection: %s (valid range is 1-%d)",
			joinInts(sel.Invalid), count).
			WithDetail("invalid", sel.Invalid)
	}
	return sel, nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
