package style

import "testing"

func TestRulesDedupeKeepsLast(t *testing.T) {
	rs := NewRules(
		Rule{Property: PropShadowSize, Value: 2.0},
		Rule{Property: PropShadowSize, Value: 1.0},
	)
	if rs.Len() != 1 {
		t.Fatalf("Len = %d, want 1", rs.Len())
	}
	if got := rs.At(0).Value; got != 1.0 {
		t.Errorf("value = %v, want 1 (last insert wins)", got)
	}
}

func TestRulesMerge(t *testing.T) {
	a := NewRules(Rule{Property: PropShadowSize, Value: 2.0})
	b := NewRules(Rule{Property: PropTabSize, Value: 1.0})

	merged := a.Merge(b)

	if merged.Len() != 2 {
		t.Fatalf("Len = %d, want 2", merged.Len())
	}
	if got := merged.At(0).Property; got != PropShadowSize {
		t.Errorf("first property = %v, want shadow-size (sorted by index)", got)
	}
	if got := merged.At(1).Property; got != PropTabSize {
		t.Errorf("second property = %v, want tab-size", got)
	}
	// Merge must not mutate the receivers.
	if a.Len() != 1 || b.Len() != 1 {
		t.Error("merge mutated its inputs")
	}
}

func TestRulesMergeAssociative(t *testing.T) {
	a := NewRules(
		Rule{Property: PropShadowSize, Value: 2.0},
		Rule{Property: PropOpacity, Value: 0.5},
	)
	b := NewRules(Rule{Property: PropShadowSize, Value: 3.0})
	c := NewRules(
		Rule{Property: PropOpacity, Value: 0.9},
		Rule{Property: PropTabSize, Value: 8.0},
	)

	left := a.Merge(b).Merge(c)
	right := a.Merge(b.Merge(c))

	if left.Len() != right.Len() {
		t.Fatalf("lengths differ: %d vs %d", left.Len(), right.Len())
	}
	for i := 0; i < left.Len(); i++ {
		if left.At(i) != right.At(i) {
			t.Errorf("rule %d differs: %+v vs %+v", i, left.At(i), right.At(i))
		}
	}
}

func TestRulesSelectPicksMostSpecificSubset(t *testing.T) {
	rs := NewRules(
		Rule{Property: PropShadowSize, Value: 1.0},
		Rule{Property: PropShadowSize, States: StateHover, Value: 2.0},
		Rule{Property: PropShadowSize, States: StateHover | StatePressed, Value: 3.0},
	)

	pick := func(states StateMask) any {
		var got any
		rs.Select(states, func(index PropertyIndex, value any) {
			if index == PropShadowSize {
				got = value
			}
		})
		return got
	}

	if got := pick(0); got != 1.0 {
		t.Errorf("base pick = %v, want 1", got)
	}
	if got := pick(StateHover); got != 2.0 {
		t.Errorf("hover pick = %v, want 2", got)
	}
	if got := pick(StateHover | StatePressed); got != 3.0 {
		t.Errorf("hover+pressed pick = %v, want 3", got)
	}
	if got := pick(StatePressed); got != 1.0 {
		t.Errorf("pressed-only pick = %v, want 1 (hover rule must not apply)", got)
	}
}

func TestRulesSelectExpandsCompound(t *testing.T) {
	rs := NewRules(Rule{Property: PropPadding, Value: Px(6)})

	got := map[PropertyIndex]any{}
	rs.Select(0, func(index PropertyIndex, value any) {
		got[index] = value
	})

	for _, sub := range []PropertyIndex{PropPaddingLeft, PropPaddingTop, PropPaddingRight, PropPaddingBottom} {
		if got[sub] != Px(6) {
			t.Errorf("expanded %v = %v, want 6px", Meta(sub).Name, got[sub])
		}
	}
	if _, present := got[PropPadding]; present {
		t.Error("compound index itself must not be applied")
	}
}
