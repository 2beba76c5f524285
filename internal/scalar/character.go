package scalar

import (
	"strconv"

	"github.com/funvibe/logifold/internal/typesystem"
)

// Character is a character string of a given kind, stored as code points.
type Character struct {
	kind  int
	chars []rune
}

func NewCharacter(kind int, s string) Character {
	return Character{kind: kind, chars: []rune(s)}
}

func (c Character) Type() typesystem.Type { return typesystem.Of(typesystem.Character, c.kind) }
func (c Character) String() string        { return strconv.Quote(string(c.chars)) }
func (c Character) Kind() int             { return c.kind }
func (c Character) Len() int              { return len(c.chars) }

// Value returns the contents as a Go string.
func (c Character) Value() string { return string(c.chars) }

// Convert changes the character kind; code points are kept as they are.
func (c Character) Convert(kind int) Character {
	return Character{kind: kind, chars: c.chars}
}

// Compare orders two strings by code point in the collating sequence. The
// shorter operand is treated as if padded on the right with blanks.
func (c Character) Compare(o Character) Ordering {
	n := len(c.chars)
	if len(o.chars) > n {
		n = len(o.chars)
	}
	for i := 0; i < n; i++ {
		x, y := rune(' '), rune(' ')
		if i < len(c.chars) {
			x = c.chars[i]
		}
		if i < len(o.chars) {
			y = o.chars[i]
		}
		if x != y {
			return compareInts(int(x), int(y))
		}
	}
	return Equal
}
