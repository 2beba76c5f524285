package typesystem

var validKinds = map[Category][]int{
	Integer:   {1, 2, 4, 8, 16},
	Real:      {2, 4, 8},
	Complex:   {2, 4, 8},
	Character: {1, 2, 4},
	Logical:   {1, 2, 4, 8},
}

// IsValidKind reports whether kind selects a supported representation of c.
func IsValidKind(c Category, kind int) bool {
	for _, k := range validKinds[c] {
		if k == kind {
			return true
		}
	}
	return false
}

// Kinds lists the supported kinds of a category in increasing order.
func Kinds(c Category) []int {
	return append([]int(nil), validKinds[c]...)
}

// Bits is the storage width of one value of an intrinsic type.
// Complex counts both parts.
func (t Type) Bits() int {
	switch t.Category {
	case Integer, Logical, Character:
		return t.Kind * 8
	case Real:
		return t.Kind * 8
	case Complex:
		return t.Kind * 16
	default:
		return 0
	}
}

// LargestIntegerKind is the widest integer kind; unsigned bit-pattern
// comparisons are carried out at this width.
const LargestIntegerKind = 16
