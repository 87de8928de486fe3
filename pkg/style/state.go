package style

import "math/bits"

// StateMask is a bitset over widget interaction states. Rules carry a mask
// naming the states required for the rule to apply.
type StateMask uint8

const (
	StateHover StateMask = 1 << iota
	StatePressed
	StateFocused
	StateSelected
	StateDisabled
	StateKeyFocused
	StateIsRoot
)

// Contains reports whether every bit of other is set in m.
func (m StateMask) Contains(other StateMask) bool {
	return m&other == other
}

// Count returns the number of set bits. Rules with fewer required states
// sort before more specific ones.
func (m StateMask) Count() int {
	return bits.OnesCount8(uint8(m))
}
