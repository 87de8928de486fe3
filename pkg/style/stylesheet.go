package style

// A Style pairs a selector with the rules it assigns.
type Style struct {
	Selector Selector
	Rules    Rules
}

// Stylesheet is an ordered list of styles plus inherited parent sheets.
// Matching walks inherited sheets first, then own styles, merging matched
// rule bags left to right; later sheets therefore override earlier ones.
type Stylesheet struct {
	Styles    []Style
	Inherited []*Stylesheet
}

// NewStylesheet builds a sheet from styles.
func NewStylesheet(styles ...Style) *Stylesheet {
	return &Stylesheet{Styles: styles}
}

// Inherit appends a parent sheet. Inherited sheets match before own styles.
func (s *Stylesheet) Inherit(parent *Stylesheet) *Stylesheet {
	s.Inherited = append(s.Inherited, parent)
	return s
}

// Match collects the merged rules of every style whose selector matches the
// node, inherited sheets first.
func (s *Stylesheet) Match(n Node, flags MatchFlags) Rules {
	var merged Rules
	for _, parent := range s.Inherited {
		merged = merged.Merge(parent.Match(n, flags))
	}
	for _, st := range s.Styles {
		if st.Selector != nil && st.Selector.Matches(n, flags) {
			merged = merged.Merge(st.Rules)
		}
	}
	return merged
}
