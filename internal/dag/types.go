package dag

import "sync"

// Graph is a thread-safe directed graph keyed by document name.
type Graph struct {
	mutex sync.RWMutex
	nodes map[string]*node
}

// node is a single document in the inheritance graph.
type node struct {
	id string
	// deps are the nodes this node inherits from.
	deps map[string]*node
	// dependents are the nodes that inherit from this node.
	dependents map[string]*node
}
