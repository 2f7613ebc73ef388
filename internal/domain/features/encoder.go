package features

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// UnknownCode is assigned to categories the encoder never saw while fitting.
const UnknownCode = -1

// unknownClass stands in for an empty categorical value.
const unknownClass = "Unknown"

// UnknownPolicy decides what happens to unseen categories.
type UnknownPolicy int

const (
	// ReserveUnknown encodes unseen categories as UnknownCode.
	ReserveUnknown UnknownPolicy = iota
	// FailOnUnknown rejects unseen categories with ErrUnknownCategory.
	FailOnUnknown
)

// ParseUnknownPolicy maps "reserve" and "fail" to a policy.
func ParseUnknownPolicy(s string) (UnknownPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reserve":
		return ReserveUnknown, nil
	case "fail":
		return FailOnUnknown, nil
	default:
		return ReserveUnknown, fmt.Errorf("unknown category policy %q", s)
	}
}

// Encoder maps the values of one categorical column to stable integer codes.
// Codes are the index in the sorted class list, so fitting the same values
// always yields the same mapping.
type Encoder struct {
	column  string
	classes []string
	index   map[string]int
	version string
}

// NewEncoder returns an unfitted encoder for column.
func NewEncoder(column string) *Encoder {
	return &Encoder{column: column}
}

// Column returns the column this encoder serves.
func (e *Encoder) Column() string { return e.column }

// Fitted reports whether Fit has been called.
func (e *Encoder) Fitted() bool { return e.index != nil }

// Version identifies the mapping produced by the last Fit.
func (e *Encoder) Version() string { return e.version }

// Classes returns a copy of the fitted classes in code order.
func (e *Encoder) Classes() []string {
	return append([]string(nil), e.classes...)
}

// Fit builds the mapping from values. Empty values become "Unknown".
func (e *Encoder) Fit(values []string) {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[normalizeClass(v)] = struct{}{}
	}
	classes := make([]string, 0, len(seen))
	for c := range seen {
		classes = append(classes, c)
	}
	sort.Strings(classes)

	e.classes = classes
	e.index = make(map[string]int, len(classes))
	for i, c := range classes {
		e.index[c] = i
	}
	e.version = uuid.NewString()
}

// Encode returns the code for v. Unseen values return UnknownCode or, under
// FailOnUnknown, an error wrapping ErrUnknownCategory.
func (e *Encoder) Encode(v string, policy UnknownPolicy) (int, error) {
	code, ok := e.index[normalizeClass(v)]
	if ok {
		return code, nil
	}
	if policy == FailOnUnknown {
		return UnknownCode, fmt.Errorf("%s=%q: %w", e.column, v, ErrUnknownCategory)
	}
	return UnknownCode, nil
}

func normalizeClass(v string) string {
	if strings.TrimSpace(v) == "" {
		return unknownClass
	}
	return v
}
