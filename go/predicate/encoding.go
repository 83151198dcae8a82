package predicate

import (
	"encoding/binary"

	"github.com/essential-contributions/essential-base-sub001/go/types"
)

// Encode produces the on-wire CSR encoding of p: u16 num_nodes, then
// num_nodes x (u16 edge_start, 32-byte program_address, u8
// reads_flag), then u16 num_edges, then num_edges x u16 edge, all
// big-endian (spec §6, "Predicate encoding (on-wire)").
func Encode(p *Predicate) []byte {
	size := 2 + len(p.Nodes)*(2+32+1) + 2 + len(p.Edges)*2
	out := make([]byte, 0, size)

	var u16buf [2]byte
	binary.BigEndian.PutUint16(u16buf[:], uint16(len(p.Nodes)))
	out = append(out, u16buf[:]...)

	for _, n := range p.Nodes {
		binary.BigEndian.PutUint16(u16buf[:], n.EdgeStart)
		out = append(out, u16buf[:]...)
		out = append(out, n.ProgramAddress[:]...)
		out = append(out, byte(n.Reads))
	}

	binary.BigEndian.PutUint16(u16buf[:], uint16(len(p.Edges)))
	out = append(out, u16buf[:]...)
	for _, e := range p.Edges {
		binary.BigEndian.PutUint16(u16buf[:], e)
		out = append(out, u16buf[:]...)
	}
	return out
}

// Decode parses the on-wire CSR encoding back into a Predicate. It
// performs only framing checks (enough bytes present, reads_flag in
// {0,1}); structural validity (acyclic, in-range edges, single root)
// is Validate's job, run separately once the predicate is decoded
// (spec §4.12 step 1, §9 "Graph cycles").
func Decode(data []byte) (*Predicate, error) {
	if len(data) < 2 {
		return nil, ErrTruncated
	}
	numNodes := int(binary.BigEndian.Uint16(data))
	offset := 2

	nodes := make([]Node, numNodes)
	for i := 0; i < numNodes; i++ {
		if offset+35 > len(data) {
			return nil, ErrTruncated
		}
		edgeStart := binary.BigEndian.Uint16(data[offset:])
		offset += 2
		var addr types.ContentAddress
		copy(addr[:], data[offset:offset+32])
		offset += 32
		readsByte := data[offset]
		offset++
		if readsByte != byte(ReadsPre) && readsByte != byte(ReadsPost) {
			return nil, ErrInvalidReadsFlag
		}
		nodes[i] = Node{ProgramAddress: addr, EdgeStart: edgeStart, Reads: ReadsFlag(readsByte)}
	}

	if offset+2 > len(data) {
		return nil, ErrTruncated
	}
	numEdges := int(binary.BigEndian.Uint16(data[offset:]))
	offset += 2

	edges := make([]uint16, numEdges)
	for i := 0; i < numEdges; i++ {
		if offset+2 > len(data) {
			return nil, ErrTruncated
		}
		edges[i] = binary.BigEndian.Uint16(data[offset:])
		offset += 2
	}
	if offset != len(data) {
		return nil, ErrTrailingBytes
	}

	return &Predicate{Nodes: nodes, Edges: edges}, nil
}
