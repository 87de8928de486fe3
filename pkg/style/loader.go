package style

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/brisk-gui/brisk/pkg/graphics"
)

// Stylesheet documents are YAML:
//
//	styles:
//	  - selector: "button.primary:hover"
//	    rules:
//	      background-color: "#336699"
//	      shadow-size: 4
//
// Pseudo-states on the subject compound become the state mask of every rule
// in the style, so the widget's re-apply closure picks them up on state
// changes without re-matching. Pseudo-states on ancestor compounds stay
// selector predicates.

type sheetDoc struct {
	Styles []styleDoc `yaml:"styles"`
}

type styleDoc struct {
	Selector string         `yaml:"selector"`
	Rules    map[string]any `yaml:"rules"`
}

// LoadStylesheet parses a YAML stylesheet document.
func LoadStylesheet(data []byte) (*Stylesheet, error) {
	var doc sheetDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("stylesheet: %w", err)
	}
	sheet := &Stylesheet{}
	for i, sd := range doc.Styles {
		selector, states, err := parseSelectorWithStates(sd.Selector)
		if err != nil {
			return nil, fmt.Errorf("stylesheet: style %d: %w", i, err)
		}
		var rules Rules
		for name, raw := range sd.Rules {
			index, ok := LookupProperty(name)
			if !ok {
				return nil, fmt.Errorf("stylesheet: style %d: unknown property %q", i, name)
			}
			value, err := parseRuleValue(raw)
			if err != nil {
				return nil, fmt.Errorf("stylesheet: style %d: property %q: %w", i, name, err)
			}
			rules.Add(Rule{Property: index, States: states, Value: value})
		}
		sheet.Styles = append(sheet.Styles, Style{Selector: selector, Rules: rules})
	}
	return sheet, nil
}

// ParseSelector parses a selector expression. Pseudo-states become State
// selector predicates.
func ParseSelector(expr string) (Selector, error) {
	selector, states, err := parseSelectorWithStates(expr)
	if err != nil {
		return nil, err
	}
	if states != 0 {
		if selector == nil {
			return State(states), nil
		}
		return And{selector, State(states)}, nil
	}
	if selector == nil {
		return Universal{}, nil
	}
	return selector, nil
}

// parseSelectorWithStates parses an expression, extracting the subject
// compound's pseudo-states into a mask. Comma alternatives combine with Or;
// a `>` chain nests Parent selectors. With alternatives, states fold back
// into the alternatives themselves and the returned mask is zero.
func parseSelectorWithStates(expr string) (Selector, StateMask, error) {
	alternatives := strings.Split(expr, ",")
	if len(alternatives) > 1 {
		var or Or
		for _, alt := range alternatives {
			sel, err := ParseSelector(strings.TrimSpace(alt))
			if err != nil {
				return nil, 0, err
			}
			or = append(or, sel)
		}
		return or, 0, nil
	}

	chain := strings.Split(expr, ">")
	var parent Selector
	for i, part := range chain {
		part = strings.TrimSpace(part)
		last := i == len(chain)-1
		sel, states, err := parseCompound(part)
		if err != nil {
			return nil, 0, err
		}
		if !last && states != 0 {
			sel = combine(sel, State(states))
			states = 0
		}
		if parent != nil {
			sel = combine(sel, Parent{Inner: parent})
		}
		if last {
			if sel == nil {
				sel = Universal{}
			}
			return sel, states, nil
		}
		if sel == nil {
			sel = Universal{}
		}
		parent = sel
	}
	return Universal{}, 0, nil
}

// combine folds selectors into an And, flattening as it goes.
func combine(base Selector, extra Selector) Selector {
	if base == nil {
		return extra
	}
	if and, ok := base.(And); ok {
		return append(and, extra)
	}
	return And{base, extra}
}

var stateNames = map[string]StateMask{
	"hover":       StateHover,
	"pressed":     StatePressed,
	"focused":     StateFocused,
	"selected":    StateSelected,
	"disabled":    StateDisabled,
	"key-focused": StateKeyFocused,
}

// parseCompound parses one compound selector like "button.primary#ok:hover"
// returning its structural predicate and its pseudo-state mask.
func parseCompound(expr string) (Selector, StateMask, error) {
	if expr == "" {
		return nil, 0, fmt.Errorf("empty selector")
	}
	var sel Selector
	var states StateMask
	rest := expr
	negate := false
	if strings.HasPrefix(rest, "!") {
		negate = true
		rest = rest[1:]
	}
	for rest != "" {
		var token string
		kind := rest[0]
		switch kind {
		case '#', '.', ':', '@':
			rest = rest[1:]
			token, rest = nextToken(rest)
			if token == "" {
				return nil, 0, fmt.Errorf("dangling %q in selector %q", string(kind), expr)
			}
		default:
			token, rest = nextToken(rest)
			if token == "*" || token == "" {
				if token == "" {
					return nil, 0, fmt.Errorf("unparsable selector %q", expr)
				}
				sel = combine(sel, Universal{})
				continue
			}
			sel = combine(sel, Type(token))
			continue
		}
		switch kind {
		case '#':
			sel = combine(sel, ID(token))
		case '.':
			sel = combine(sel, Class(token))
		case '@':
			sel = combine(sel, Role(token))
		case ':':
			switch {
			case token == "root":
				sel = combine(sel, Root{})
			case strings.HasPrefix(token, "nth-last(") && strings.HasSuffix(token, ")"):
				n, err := strconv.Atoi(token[len("nth-last(") : len(token)-1])
				if err != nil {
					return nil, 0, fmt.Errorf("bad nth-last in %q: %w", expr, err)
				}
				sel = combine(sel, NthLast(n))
			case strings.HasPrefix(token, "nth(") && strings.HasSuffix(token, ")"):
				n, err := strconv.Atoi(token[len("nth(") : len(token)-1])
				if err != nil {
					return nil, 0, fmt.Errorf("bad nth in %q: %w", expr, err)
				}
				sel = combine(sel, Nth(n))
			default:
				mask, ok := stateNames[token]
				if !ok {
					return nil, 0, fmt.Errorf("unknown pseudo-state %q in selector %q", token, expr)
				}
				states |= mask
			}
		}
	}
	if negate {
		inner := sel
		if inner == nil {
			inner = State(states)
			states = 0
		}
		sel = Not{Inner: inner}
	}
	return sel, states, nil
}

// nextToken consumes characters up to the next selector delimiter. A '('
// opens an argument that runs to the matching ')'.
func nextToken(s string) (token, rest string) {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case '#', '.', ':', '@':
			if depth == 0 {
				return s[:i], s[i:]
			}
		}
	}
	return s, ""
}

// parseRuleValue converts a YAML scalar into a property value: colors from
// "#rrggbb"/"#aarrggbb", dimensions from px/em/%/dp suffixes, the literal
// "inherit", plain numbers and booleans, anything else as a string.
func parseRuleValue(raw any) (any, error) {
	switch v := raw.(type) {
	case int:
		return float64(v), nil
	case float64:
		return v, nil
	case bool:
		return v, nil
	case string:
		return parseStringValue(v)
	default:
		return nil, fmt.Errorf("unsupported value %v (%T)", raw, raw)
	}
}

func parseStringValue(s string) (any, error) {
	if s == "inherit" {
		return Inherit, nil
	}
	if strings.HasPrefix(s, "#") {
		return parseColor(s)
	}
	for suffix, unit := range map[string]Unit{"px": UnitPixels, "em": UnitEm, "%": UnitPercent, "dp": UnitDevice} {
		if strings.HasSuffix(s, suffix) {
			num := strings.TrimSuffix(s, suffix)
			value, err := strconv.ParseFloat(num, 64)
			if err != nil {
				return nil, fmt.Errorf("bad dimension %q: %w", s, err)
			}
			return Dimension{Value: value, Unit: unit}, nil
		}
	}
	if s == "auto" {
		return Auto, nil
	}
	return s, nil
}

func parseColor(s string) (graphics.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	var value uint64
	var err error
	switch len(hex) {
	case 6:
		value, err = strconv.ParseUint(hex, 16, 32)
		value |= 0xFF000000
	case 8:
		value, err = strconv.ParseUint(hex, 16, 32)
	default:
		return 0, fmt.Errorf("bad color %q", s)
	}
	if err != nil {
		return 0, fmt.Errorf("bad color %q: %w", s, err)
	}
	return graphics.Color(value), nil
}
