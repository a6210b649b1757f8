// Package discovery contains the pieces shared by the membership transports.
package discovery

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/maxpoletaev/jobmesh/internal/binario"
	"github.com/maxpoletaev/jobmesh/membership"
)

const codecVersion = 1

// EncodeNode serializes the node into the compact binary form carried by the
// transports, such as memberlist node metadata or etcd values.
func EncodeNode(node membership.Node) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := binario.NewWriter(buf, binary.BigEndian)

	if err := w.WriteUint8(codecVersion); err != nil {
		return nil, err
	}

	if err := w.WriteUint8(uint8(node.Type)); err != nil {
		return nil, err
	}

	for _, s := range []string{node.ID, node.Group, node.Addr} {
		if err := w.WriteString(s); err != nil {
			return nil, err
		}
	}

	if node.Created < 0 {
		return nil, fmt.Errorf("negative creation time: %d", node.Created)
	}

	if err := w.WriteVarUint(uint64(node.Created)); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// DecodeNode is the reverse of EncodeNode.
func DecodeNode(data []byte) (membership.Node, error) {
	var node membership.Node

	r := binario.NewReader(bytes.NewReader(data), binary.BigEndian)

	version, err := r.ReadUint8()
	if err != nil {
		return node, fmt.Errorf("read version: %w", err)
	}

	if version != codecVersion {
		return node, fmt.Errorf("unsupported node encoding version: %d", version)
	}

	nodeType, err := r.ReadUint8()
	if err != nil {
		return node, fmt.Errorf("read type: %w", err)
	}

	node.Type = membership.NodeType(nodeType)
	if node.Type.String() == "" {
		return node, fmt.Errorf("unknown node type: %d", nodeType)
	}

	for _, s := range []*string{&node.ID, &node.Group, &node.Addr} {
		if *s, err = r.ReadString(); err != nil {
			return node, fmt.Errorf("read string: %w", err)
		}
	}

	created, err := r.ReadVarUint()
	if err != nil {
		return node, fmt.Errorf("read created: %w", err)
	}

	node.Created = int64(created)

	return node, nil
}
