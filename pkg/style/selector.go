package style

// Node is the widget surface selectors evaluate against. The widget package
// implements it; keeping it an interface here avoids a dependency cycle.
type Node interface {
	TypeName() string
	ID() string
	Role() string
	HasClass(name string) bool
	States() StateMask
	ParentNode() Node
	// ChildIndex returns the node's position under its parent and the
	// sibling count. ok is false at the root.
	ChildIndex() (index, count int, ok bool)
}

// MatchFlags carries per-evaluation context for selector matching.
type MatchFlags uint8

const (
	// MatchIsRoot marks the evaluated node as the tree root.
	MatchIsRoot MatchFlags = 1 << iota
)

// Selector is a predicate over a widget.
type Selector interface {
	Matches(n Node, flags MatchFlags) bool
}

// Universal matches every widget.
type Universal struct{}

func (Universal) Matches(Node, MatchFlags) bool { return true }

// Type matches widgets by type name.
type Type string

func (t Type) Matches(n Node, _ MatchFlags) bool { return n.TypeName() == string(t) }

// ID matches widgets by id.
type ID string

func (id ID) Matches(n Node, _ MatchFlags) bool { return n.ID() == string(id) }

// Class matches widgets carrying the class.
type Class string

func (c Class) Matches(n Node, _ MatchFlags) bool { return n.HasClass(string(c)) }

// Role matches widgets by role.
type Role string

func (r Role) Matches(n Node, _ MatchFlags) bool { return n.Role() == string(r) }

// Nth matches the widget at the given position under its parent.
type Nth int

func (k Nth) Matches(n Node, _ MatchFlags) bool {
	index, _, ok := n.ChildIndex()
	return ok && index == int(k)
}

// NthLast matches the widget at the given position from the end.
type NthLast int

func (k NthLast) Matches(n Node, _ MatchFlags) bool {
	index, count, ok := n.ChildIndex()
	return ok && count-1-index == int(k)
}

// State matches widgets whose state contains every bit of the mask.
type State StateMask

func (s State) Matches(n Node, flags MatchFlags) bool {
	states := n.States()
	if flags&MatchIsRoot != 0 {
		states |= StateIsRoot
	}
	return states.Contains(StateMask(s))
}

// Parent matches widgets whose parent matches the inner selector.
type Parent struct {
	Inner Selector
}

func (p Parent) Matches(n Node, _ MatchFlags) bool {
	parent := n.ParentNode()
	// The parent is never the evaluation root; its own flags are empty.
	return parent != nil && p.Inner.Matches(parent, 0)
}

// Root matches only the tree root.
type Root struct{}

func (Root) Matches(_ Node, flags MatchFlags) bool { return flags&MatchIsRoot != 0 }

// And matches when every inner selector matches. Short-circuits.
type And []Selector

func (a And) Matches(n Node, flags MatchFlags) bool {
	for _, s := range a {
		if !s.Matches(n, flags) {
			return false
		}
	}
	return true
}

// Or matches when any inner selector matches. Short-circuits.
type Or []Selector

func (o Or) Matches(n Node, flags MatchFlags) bool {
	for _, s := range o {
		if s.Matches(n, flags) {
			return true
		}
	}
	return false
}

// Not inverts the inner selector.
type Not struct {
	Inner Selector
}

func (nt Not) Matches(n Node, flags MatchFlags) bool {
	return !nt.Inner.Matches(n, flags)
}
