// Package element models the opaque UI references a binding may receive and
// resolves them to a focusable element. The engine itself only ever calls
// Focus; ownership of the underlying widget stays with the UI adapter.
package element

import "sync"

// Focusable is the minimal contract the engine needs from an interactive
// element.
type Focusable interface {
	Focus()
}

// Node is the closed set of reference shapes a UI adapter can attach: a raw
// element, a component wrapper around child nodes, or a ref indirection.
type Node interface {
	isNode()
}

// Raw wraps an interactive element directly.
type Raw struct {
	Element Focusable
}

// Component wraps a composite widget. Resolution falls back to the first
// resolvable descendant in declaration order.
type Component struct {
	Name     string
	Children []Node
}

// Ref is a mutable indirection to another node.
type Ref struct {
	Target Node
}

func (Raw) isNode()       {}
func (Component) isNode() {}
func (Ref) isNode()       {}

// Resolve extracts the focusable element from a node. Raw yields its element,
// Ref follows its target, and Component returns the first descendant that
// resolves. The boolean reports whether anything focusable was found.
func Resolve(node Node) (Focusable, bool) {
	switch n := node.(type) {
	case Raw:
		if n.Element == nil {
			return nil, false
		}
		return n.Element, true
	case Ref:
		if n.Target == nil {
			return nil, false
		}
		return Resolve(n.Target)
	case Component:
		for _, child := range n.Children {
			if child == nil {
				continue
			}
			if el, ok := Resolve(child); ok {
				return el, true
			}
		}
		return nil, false
	default:
		return nil, false
	}
}

// Slot holds the element reference for one registered field. The UI adapter
// attaches nodes; the engine reads them only to focus on error.
type Slot struct {
	mu   sync.RWMutex
	node Node
}

// Attach replaces the stored node. Attaching nil detaches the slot.
func (s *Slot) Attach(node Node) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.node = node
	s.mu.Unlock()
}

// Node returns the currently attached node, which may be nil.
func (s *Slot) Node() Node {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.node
}

// Focus resolves the attached node and focuses it. It reports whether a
// focusable element was found; a detached slot is a silent no-op.
func (s *Slot) Focus() bool {
	node := s.Node()
	if node == nil {
		return false
	}
	el, ok := Resolve(node)
	if !ok {
		return false
	}
	el.Focus()
	return true
}
