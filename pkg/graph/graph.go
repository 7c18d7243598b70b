// Package graph provides a minimal state-graph execution engine. A graph is
// a set of named nodes connected by optionally conditional edges; execution
// threads a state value through nodes starting at the entry point and stops
// when the exit point is reached or no edge matches.
package graph

import (
	"context"
	"fmt"
)

// DefaultMaxSteps bounds execution so a misconfigured cycle cannot spin forever.
const DefaultMaxSteps = 50

// Node transforms the workflow state. Nodes receive the current state and
// return the next state; errors halt execution.
type Node[S any] func(ctx context.Context, state S) (S, error)

// Predicate evaluates state to decide whether an edge should be traversed.
// Predicates must be pure: deterministic, total, and free of side effects.
type Predicate[S any] func(state S) bool

// Not inverts a predicate.
func Not[S any](p Predicate[S]) Predicate[S] {
	return func(state S) bool {
		return !p(state)
	}
}

type edge[S any] struct {
	to   string
	when Predicate[S]
}

// Graph is a directed graph of named nodes. Configure it with AddNode,
// AddEdge, SetEntryPoint, and SetExitPoint, then run it with Execute.
// A Graph is not safe for concurrent configuration, but a configured Graph
// may execute concurrently: each Execute call threads its own state.
type Graph[S any] struct {
	name     string
	nodes    map[string]Node[S]
	edges    map[string][]edge[S]
	entry    string
	exit     string
	maxSteps int
}

// New creates an empty graph with the given name and DefaultMaxSteps.
func New[S any](name string) *Graph[S] {
	return &Graph[S]{
		name:     name,
		nodes:    make(map[string]Node[S]),
		edges:    make(map[string][]edge[S]),
		maxSteps: DefaultMaxSteps,
	}
}

// SetMaxSteps overrides the execution step bound. Values below 1 are ignored.
func (g *Graph[S]) SetMaxSteps(n int) {
	if n >= 1 {
		g.maxSteps = n
	}
}

// AddNode registers a node under the given name.
func (g *Graph[S]) AddNode(name string, node Node[S]) error {
	if name == "" {
		return fmt.Errorf("graph %s: node name cannot be empty", g.name)
	}
	if node == nil {
		return fmt.Errorf("graph %s: node %s cannot be nil", g.name, name)
	}
	if _, exists := g.nodes[name]; exists {
		return fmt.Errorf("graph %s: node %s already registered", g.name, name)
	}
	g.nodes[name] = node
	return nil
}

// AddEdge connects from → to. A nil predicate makes the edge unconditional.
// Edges are evaluated in registration order; the first match wins.
func (g *Graph[S]) AddEdge(from, to string, when Predicate[S]) error {
	if _, ok := g.nodes[from]; !ok {
		return fmt.Errorf("graph %s: edge source %s not registered", g.name, from)
	}
	if _, ok := g.nodes[to]; !ok {
		return fmt.Errorf("graph %s: edge target %s not registered", g.name, to)
	}
	g.edges[from] = append(g.edges[from], edge[S]{to: to, when: when})
	return nil
}

// SetEntryPoint designates the node where execution begins.
func (g *Graph[S]) SetEntryPoint(name string) error {
	if _, ok := g.nodes[name]; !ok {
		return fmt.Errorf("graph %s: entry point %s not registered", g.name, name)
	}
	g.entry = name
	return nil
}

// SetExitPoint designates the terminal node. Execution stops after the exit
// node runs, unless one of its conditional edges matches (enabling loops out
// of the exit node).
func (g *Graph[S]) SetExitPoint(name string) error {
	if _, ok := g.nodes[name]; !ok {
		return fmt.Errorf("graph %s: exit point %s not registered", g.name, name)
	}
	g.exit = name
	return nil
}

// Execute runs the graph from the entry point, threading state through each
// node. It returns the final state, or an error if a node fails, the context
// is cancelled, routing dead-ends before the exit point, or the step bound
// is exceeded.
func (g *Graph[S]) Execute(ctx context.Context, state S) (S, error) {
	if g.entry == "" {
		return state, fmt.Errorf("graph %s: no entry point set", g.name)
	}

	current := g.entry
	for step := 0; step < g.maxSteps; step++ {
		if err := ctx.Err(); err != nil {
			return state, err
		}

		node := g.nodes[current]
		next, err := node(ctx, state)
		if err != nil {
			return state, fmt.Errorf("graph %s: node %s: %w", g.name, current, err)
		}
		state = next

		target, ok := g.route(current, state)
		if !ok {
			if current == g.exit {
				return state, nil
			}
			return state, fmt.Errorf("graph %s: no matching edge from %s", g.name, current)
		}
		current = target
	}

	return state, fmt.Errorf("graph %s: exceeded %d steps", g.name, g.maxSteps)
}

// route picks the first edge from the given node whose predicate matches.
func (g *Graph[S]) route(from string, state S) (string, bool) {
	for _, e := range g.edges[from] {
		if e.when == nil || e.when(state) {
			return e.to, true
		}
	}
	return "", false
}
