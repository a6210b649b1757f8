package membership

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeType_String(t *testing.T) {
	assert.Equal(t, "", NodeType(0).String())
	assert.Equal(t, "coordinator", NodeTypeCoordinator.String())
	assert.Equal(t, "worker", NodeTypeWorker.String())
	assert.Equal(t, "client", NodeTypeClient.String())
}

func TestParseNodeType(t *testing.T) {
	for _, nt := range NodeTypes() {
		parsed, err := ParseNodeType(nt.String())
		require.NoError(t, err)
		require.Equal(t, nt, parsed)
	}

	parsed, err := ParseNodeType("Worker")
	require.NoError(t, err)
	require.Equal(t, NodeTypeWorker, parsed)

	_, err = ParseNodeType("tracker")
	require.Error(t, err)

	_, err = ParseNodeType("")
	require.Error(t, err)
}

func TestNode_String(t *testing.T) {
	n := Node{ID: "w1", Type: NodeTypeWorker, Group: "g1"}
	assert.Equal(t, "worker/g1/w1", n.String())
}
