// Package node defines the host-facing contract every pipeline node
// implements: a typed input/output schema declared to the node-editor
// runtime, and a single Execute entry point the host invokes with resolved
// inputs. Nodes never run standalone; the host graph executor drives them.
package node

import (
	"context"
	"fmt"
)

// Kind is the socket/widget type a node declares to the host.
type Kind string

const (
	KindFloat  Kind = "FLOAT"
	KindInt    Kind = "INT"
	KindString Kind = "STRING"
	KindCombo  Kind = "COMBO"
	KindDict   Kind = "DICT"
)

// Input declares one input socket. Min/Max/Step apply to numeric kinds,
// Options to combo kinds, Default to anything with a widget.
type Input struct {
	Name     string
	Kind     Kind
	Required bool
	Default  any
	Min      float64
	Max      float64
	Step     float64
	Options  []string
}

// Output declares one output socket.
type Output struct {
	Name string
	Kind Kind
}

// Schema is the full socket declaration the host queries before any data
// flows. Output order is contractual: the host wires downstream edges by
// position.
type Schema struct {
	Inputs  []Input
	Outputs []Output
}

// Values carries resolved socket values by name, both into and out of
// Execute.
type Values map[string]any

// String reads a string-valued input, with a default for absent values.
func (v Values) String(name, fallback string) string {
	if s, ok := v[name].(string); ok {
		return s
	}
	return fallback
}

// Node is one pluggable graph node. Describe is called at schema-query
// time; Execute once per host-triggered execution step. Execute runs to
// completion or returns an error to the host - there is no cancellation
// beyond the context.
type Node interface {
	Describe() Schema
	Execute(ctx context.Context, in Values) (Values, error)
}

// Registry maps node names to instances, with display names for the host
// UI. Registration order is preserved so the host lists nodes stably.
type Registry struct {
	nodes   map[string]Node
	display map[string]string
	order   []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		nodes:   make(map[string]Node),
		display: make(map[string]string),
	}
}

// Register adds a node under a unique name.
func (r *Registry) Register(name, displayName string, n Node) error {
	if name == "" {
		return fmt.Errorf("node name cannot be empty")
	}
	if n == nil {
		return fmt.Errorf("node %q is nil", name)
	}
	if _, exists := r.nodes[name]; exists {
		return fmt.Errorf("node %q already registered", name)
	}
	r.nodes[name] = n
	r.display[name] = displayName
	r.order = append(r.order, name)
	return nil
}

// Get returns the node registered under name.
func (r *Registry) Get(name string) (Node, bool) {
	n, ok := r.nodes[name]
	return n, ok
}

// DisplayName returns the UI label for a registered node, or the name
// itself if no label was given.
func (r *Registry) DisplayName(name string) string {
	if d := r.display[name]; d != "" {
		return d
	}
	return name
}

// Names returns all registered node names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
