// Package ordering defines how lines are keyed and compared during a sort.
//
// A Policy turns a line into a Key and compares two valid keys. A Comparator
// pairs a Policy with a Direction and owns the sentinel rule: keys the policy
// marked Invalid always order after every valid key, whatever the direction.
// The producer and the merger must share one Comparator value.
package ordering

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUnknownPolicy is returned by PolicyByName for names it does not know.
var ErrUnknownPolicy = errors.New("unknown ordering policy")

type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Key is the sortable projection of a line.
type Key struct {
	Text    string
	Num     float64
	Invalid bool
}

// Policy extracts keys from lines and orders valid keys ascending.
type Policy interface {
	Name() string
	Key(line string) Key
	Compare(a, b Key) int
}

// Lexicographic orders lines by their bytes.
type Lexicographic struct{}

func (Lexicographic) Name() string { return "lexicographic" }

func (Lexicographic) Key(line string) Key { return Key{Text: line} }

func (Lexicographic) Compare(a, b Key) int { return strings.Compare(a.Text, b.Text) }

// Numeric parses each trimmed line as a float64 using Go float syntax, so hex
// floats parse and underscore digit separators do not. Lines that do not
// parse, and NaN, become invalid keys.
type Numeric struct{}

func (Numeric) Name() string { return "numeric" }

func (Numeric) Key(line string) Key {
	v, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
	// out-of-range literals still carry ±Inf
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Key{Invalid: true}
	}
	if math.IsNaN(v) {
		return Key{Invalid: true}
	}
	return Key{Num: v}
}

func (Numeric) Compare(a, b Key) int { return cmp.Compare(a.Num, b.Num) }

// PolicyByName resolves a policy from its Name.
func PolicyByName(name string) (Policy, error) {
	switch strings.ToLower(name) {
	case "", "lexicographic", "lex":
		return Lexicographic{}, nil
	case "numeric", "num":
		return Numeric{}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownPolicy, name)
	}
}

// Comparator orders keys for one job.
type Comparator struct {
	policy    Policy
	direction Direction
}

// NewComparator falls back to Lexicographic when p is nil.
func NewComparator(p Policy, d Direction) Comparator {
	if p == nil {
		p = Lexicographic{}
	}
	return Comparator{policy: p, direction: d}
}

func (c Comparator) Policy() Policy { return c.policy }

func (c Comparator) Direction() Direction { return c.direction }

// Key extracts the key of line.
func (c Comparator) Key(line string) Key {
	return c.policy.Key(line)
}

// Compare returns a negative number when a sorts before b.
func (c Comparator) Compare(a, b Key) int {
	switch {
	case a.Invalid && b.Invalid:
		return 0
	case a.Invalid:
		return 1
	case b.Invalid:
		return -1
	}

	r := c.policy.Compare(a, b)
	if c.direction == Descending {
		return -r
	}
	return r
}
