package membership

import (
	"fmt"
	"strings"
)

// NodeType is the role of a cluster member.
type NodeType uint8

const (
	// NodeTypeCoordinator schedules jobs and must see the whole cluster.
	NodeTypeCoordinator NodeType = iota + 1

	// NodeTypeWorker executes jobs for its group.
	NodeTypeWorker

	// NodeTypeClient submits jobs for its group.
	NodeTypeClient
)

// NodeTypes returns all known node types in declaration order.
func NodeTypes() []NodeType {
	return []NodeType{NodeTypeCoordinator, NodeTypeWorker, NodeTypeClient}
}

// String returns the string representation of the node type.
func (t NodeType) String() string {
	switch t {
	case NodeTypeCoordinator:
		return "coordinator"
	case NodeTypeWorker:
		return "worker"
	case NodeTypeClient:
		return "client"
	default:
		return ""
	}
}

// ParseNodeType converts a string produced by NodeType.String back to a NodeType.
func ParseNodeType(s string) (NodeType, error) {
	for _, t := range NodeTypes() {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}

	return 0, fmt.Errorf("unknown node type: %q", s)
}

// Node represents a single cluster member as observed by the membership transport.
// Nodes are compared by value, but removal matches by ID only.
type Node struct {
	// ID uniquely names one running instance of a cluster member.
	ID string
	// Type is the role of the node.
	Type NodeType
	// Group is the partition the node belongs to. Coordinators ignore it.
	Group string
	// Addr is the address other nodes use to reach the node.
	Addr string
	// Created is the unix time in milliseconds when the node has started.
	Created int64
}

func (n Node) String() string {
	return fmt.Sprintf("%s/%s/%s", n.Type, n.Group, n.ID)
}
