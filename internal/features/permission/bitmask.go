package permission

// Capability bits. A permission value is the OR of the CRUD bits, or one of
// the two out-of-band markers Deny and Inherit.
const (
	BitRead   = 1
	BitCreate = 2
	BitUpdate = 4
	BitDelete = 8
	BitAll    = BitRead | BitCreate | BitUpdate | BitDelete // 15
	Deny      = 0
	Inherit   = -1
)

// HasCapability reports whether value carries the given bit.
func HasCapability(value, bit int) bool {
	return value&bit == bit
}

// ValidValue reports whether v is a representable permission value: Inherit,
// Deny, or any OR-combination of the CRUD bits.
func ValidValue(v int) bool {
	return v == Inherit || (v >= 0 && v <= BitAll)
}

// ToggleCapability flips a capability bit on the current value.
//
//   - BitAll toggles between full access and deny: 15 when anything is
//     missing, 0 when already 15.
//   - Deny always wins: the result is 0 regardless of the current value.
//   - Inherit defers to the parent/default: the result is -1.
//   - A single CRUD bit is cleared if set and set if clear. A current value
//     of Inherit holds no bits of its own, so it resolves to Deny before the
//     flip; the result stays inside the value domain.
func ToggleCapability(current, bit int) int {
	switch bit {
	case BitAll:
		if current == BitAll {
			return Deny
		}
		return BitAll
	case Deny:
		return Deny
	case Inherit:
		return Inherit
	}
	if current == Inherit {
		current = Deny
	}
	if current&bit == bit {
		return current &^ bit
	}
	return current | bit
}

// CascadeToChildren propagates a parent toggle to its sub-permisos. The
// toggled bit on every child is forced to match the parent's new state; a
// BitAll toggle forces every child to the parent's exact new value. values
// holds the children's current values keyed by permission id; ids absent from
// the catalog slice are untouched, ids absent from values and children
// holding Inherit start at Deny.
//
// This is a one-shot propagation at toggle time. It does not lock children:
// a later per-child toggle may override what the cascade set. Navigation
// gating (parent value AND-gates children) is a separate read-time rule, see
// the session package.
func CascadeToChildren(parentValue, bit int, children []Permission, values map[int]int) map[int]int {
	out := make(map[int]int, len(children))
	for _, child := range children {
		current := values[child.ID]
		if current == Inherit {
			current = Deny
		}
		if bit == BitAll {
			out[child.ID] = parentValue
			continue
		}
		if HasCapability(parentValue, bit) {
			out[child.ID] = current | bit
		} else {
			out[child.ID] = current &^ bit
		}
	}
	return out
}
