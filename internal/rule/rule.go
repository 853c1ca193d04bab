package rule

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidRule reports a rule string that does not match the
// B<digits>/S<digits> grammar.
var ErrInvalidRule = errors.New("invalid rule")

// Rule holds the birth and survival predicates of a Life-like rule, indexed
// by neighbor count 0..8.
type Rule struct {
	Birth    [9]bool
	Survival [9]bool

	name string
}

// Default returns canonical Life, B3/S23.
func Default() Rule {
	r, err := Parse("B3/S23")
	if err != nil {
		panic(err)
	}
	return r
}

// Parse builds a Rule from a B/S rule string. The grammar is
// B<digits>/S<digits>, case-insensitive, digits drawn from 0..8; either
// digit list may be empty. The returned rule carries its normalized name
// (digits sorted ascending, letters uppercased).
func Parse(s string) (Rule, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 {
		return Rule{}, errors.Wrapf(ErrInvalidRule, "%q: want exactly one '/'", s)
	}
	var r Rule
	if err := parseDigits(parts[0], 'B', 'b', &r.Birth); err != nil {
		return Rule{}, errors.Wrapf(err, "%q", s)
	}
	if err := parseDigits(parts[1], 'S', 's', &r.Survival); err != nil {
		return Rule{}, errors.Wrapf(err, "%q", s)
	}
	r.name = buildName(r.Birth, r.Survival)
	return r, nil
}

// Normalize parses s and returns its canonical form, e.g. "b63/s32" →
// "B36/S23".
func Normalize(s string) (string, error) {
	r, err := Parse(s)
	if err != nil {
		return "", err
	}
	return r.name, nil
}

// String returns the normalized rule string.
func (r Rule) String() string {
	if r.name == "" {
		return buildName(r.Birth, r.Survival)
	}
	return r.name
}

func parseDigits(part string, upper, lower byte, dst *[9]bool) error {
	if len(part) == 0 || (part[0] != upper && part[0] != lower) {
		return errors.Wrapf(ErrInvalidRule, "expected %c prefix", upper)
	}
	for i := 1; i < len(part); i++ {
		ch := part[i]
		if ch < '0' || ch > '8' {
			return errors.Wrapf(ErrInvalidRule, "bad digit %q at pos %d", ch, i)
		}
		dst[ch-'0'] = true
	}
	return nil
}

func buildName(birth, survival [9]bool) string {
	var sb strings.Builder
	sb.WriteByte('B')
	for k := 0; k <= 8; k++ {
		if birth[k] {
			sb.WriteByte(byte('0' + k))
		}
	}
	sb.WriteString("/S")
	for k := 0; k <= 8; k++ {
		if survival[k] {
			sb.WriteByte(byte('0' + k))
		}
	}
	return sb.String()
}
