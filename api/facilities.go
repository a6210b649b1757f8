package api

//go:generate mockgen -source=facilities.go -destination=facilities_mock_test.go -package=api

import (
	"github.com/maxpoletaev/jobmesh/membership"
)

type Cluster interface {
	Nodes(t membership.NodeType) []membership.Node
	GroupNodes(t membership.NodeType, group string) []membership.Node
}
