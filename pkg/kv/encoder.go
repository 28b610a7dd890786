package kv

import (
	"github.com/DataDog/zstd"
	"github.com/kelindar/binary"

	"github.com/pathpilot/pathpilot/pkg/datastructure"
)

func encodeEdges(edges []datastructure.KVEdge) ([]byte, error) {
	buf, err := binary.Marshal(edges)
	if err != nil {
		return nil, err
	}
	return zstd.Compress(nil, buf)
}

func loadEdges(val []byte) ([]datastructure.KVEdge, error) {
	buf, err := zstd.Decompress(nil, val)
	if err != nil {
		return nil, err
	}
	var edges []datastructure.KVEdge
	if err := binary.Unmarshal(buf, &edges); err != nil {
		return nil, err
	}
	return edges, nil
}
