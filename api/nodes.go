package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/exp/slices"

	"github.com/maxpoletaev/jobmesh/membership"
)

type nodeInfo struct {
	ID      string
	Type    string
	Group   string `json:",omitempty"`
	Addr    string `json:",omitempty"`
	Created int64
}

type nodesAPI struct {
	cluster Cluster
}

func newNodesAPI(cluster Cluster) *nodesAPI {
	return &nodesAPI{
		cluster: cluster,
	}
}

func (api *nodesAPI) Bind(r chi.Router) {
	r.Get("/cluster/nodes/{type}", api.handleGet)
	r.Get("/cluster/nodes/{type}/{group}", api.handleGetGroup)
}

func (api *nodesAPI) nodeType(w http.ResponseWriter, r *http.Request) (membership.NodeType, bool) {
	t, err := membership.ParseNodeType(chi.URLParam(r, "type"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, false
	}

	return t, true
}

func (api *nodesAPI) handleGet(w http.ResponseWriter, r *http.Request) {
	t, ok := api.nodeType(w, r)
	if !ok {
		return
	}

	render.JSON(w, r, toNodeInfos(api.cluster.Nodes(t)))
}

func (api *nodesAPI) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	t, ok := api.nodeType(w, r)
	if !ok {
		return
	}

	group := chi.URLParam(r, "group")

	render.JSON(w, r, toNodeInfos(api.cluster.GroupNodes(t, group)))
}

func toNodeInfos(nodes []membership.Node) []nodeInfo {
	resp := make([]nodeInfo, len(nodes))

	for i, node := range nodes {
		resp[i] = nodeInfo{
			ID:      node.ID,
			Type:    node.Type.String(),
			Group:   node.Group,
			Addr:    node.Addr,
			Created: node.Created,
		}
	}

	slices.SortFunc(resp, func(a, b nodeInfo) bool {
		return a.ID < b.ID
	})

	return resp
}
