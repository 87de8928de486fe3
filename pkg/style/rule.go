package style

import "sort"

// Rule assigns a value to one property, guarded by a state mask: the rule
// applies only when every state in the mask is set on the widget.
type Rule struct {
	Property PropertyIndex
	States   StateMask
	Value    any
}

// Rules is a sorted, deduplicated bag of Rule. Ordering is by
// (property ascending, state-bit count ascending, mask); for a duplicate
// (property, mask) key the last-inserted rule wins.
type Rules struct {
	rules []Rule
}

// NewRules builds a Rules bag from the given rules, sorting and deduping.
func NewRules(rules ...Rule) Rules {
	var rs Rules
	for _, r := range rules {
		rs.Add(r)
	}
	return rs
}

// Len returns the number of rules.
func (rs Rules) Len() int {
	return len(rs.rules)
}

// At returns the i-th rule in sorted order.
func (rs Rules) At(i int) Rule {
	return rs.rules[i]
}

// All returns the rules in sorted order. The slice is shared; do not
// mutate.
func (rs Rules) All() []Rule {
	return rs.rules
}

// ruleLess orders rules by (property, state count, mask).
func ruleLess(a, b Rule) bool {
	if a.Property != b.Property {
		return a.Property < b.Property
	}
	if ca, cb := a.States.Count(), b.States.Count(); ca != cb {
		return ca < cb
	}
	return a.States < b.States
}

// Add inserts a rule in sorted position. A rule with the same
// (property, mask) key replaces the existing one.
func (rs *Rules) Add(r Rule) {
	i := sort.Search(len(rs.rules), func(i int) bool {
		return !ruleLess(rs.rules[i], r)
	})
	if i < len(rs.rules) && rs.rules[i].Property == r.Property && rs.rules[i].States == r.States {
		rs.rules[i] = r
		return
	}
	rs.rules = append(rs.rules, Rule{})
	copy(rs.rules[i+1:], rs.rules[i:])
	rs.rules[i] = r
}

// Merge returns a new bag with other merged into rs: entries sharing a
// (property, mask) key are replaced by other's, new keys insert in sorted
// position. Merge is associative: applying a prefix then the remainder
// yields the same final values.
func (rs Rules) Merge(other Rules) Rules {
	merged := Rules{rules: make([]Rule, len(rs.rules))}
	copy(merged.rules, rs.rules)
	for _, r := range other.rules {
		merged.Add(r)
	}
	return merged
}

// Select picks, for each property present, the last rule in sorted order
// whose state mask is a subset of states, and calls apply with it.
// Compound properties expand into their sub-properties.
func (rs Rules) Select(states StateMask, apply func(index PropertyIndex, value any)) {
	chosen := make(map[PropertyIndex]any, len(rs.rules))
	var order []PropertyIndex
	for _, r := range rs.rules {
		if !states.Contains(r.States) {
			continue
		}
		if _, seen := chosen[r.Property]; !seen {
			order = append(order, r.Property)
		}
		// Later rules are more specific (sorted by state count); last wins.
		chosen[r.Property] = r.Value
	}
	for _, index := range order {
		value := chosen[index]
		meta := Meta(index)
		if meta.Flags&Compound != 0 {
			for _, sub := range meta.Expands {
				apply(sub, value)
			}
			continue
		}
		apply(index, value)
	}
}
