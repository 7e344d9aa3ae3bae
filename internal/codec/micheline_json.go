package codec

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"

	"blockwatch.cc/tzgo/micheline"
)

// jsonNode is a Micheline JSON node decoded without the lenient literal
// handling of micheline.Prim, so malformed literals are reported.
type jsonNode struct {
	Prim   *string    `json:"prim"`
	Args   []jsonNode `json:"args"`
	Annots []string   `json:"annots"`
	Int    *string    `json:"int"`
	String *string    `json:"string"`
	Bytes  *string    `json:"bytes"`

	isSeq bool
	seq   []jsonNode
}

func (n *jsonNode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		n.isSeq = true
		return json.Unmarshal(data, &n.seq)
	}

	type object jsonNode
	var obj object
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&obj); err != nil {
		return err
	}
	*n = jsonNode(obj)
	return nil
}

// parseMichelineJSON decodes Micheline JSON strictly: every node holds
// exactly one of prim, int, string or bytes, and literals must be well formed.
func parseMichelineJSON(src string) (micheline.Prim, error) {
	var node jsonNode
	if err := json.Unmarshal([]byte(src), &node); err != nil {
		return micheline.Prim{}, err
	}
	return node.toPrim()
}

func (n *jsonNode) toPrim() (micheline.Prim, error) {
	if n.isSeq {
		args := make([]micheline.Prim, 0, len(n.seq))
		for i := range n.seq {
			elem, err := n.seq[i].toPrim()
			if err != nil {
				return micheline.Prim{}, err
			}
			args = append(args, elem)
		}
		return micheline.Prim{Type: micheline.PrimSequence, Args: args}, nil
	}

	set := 0
	for _, field := range []*string{n.Prim, n.Int, n.String, n.Bytes} {
		if field != nil {
			set++
		}
	}
	if set != 1 {
		return micheline.Prim{}, fmt.Errorf("node must have exactly one of prim, int, string or bytes")
	}
	if n.Prim == nil && (len(n.Args) > 0 || len(n.Annots) > 0) {
		return micheline.Prim{}, fmt.Errorf("literal nodes cannot have args or annots")
	}

	switch {
	case n.Int != nil:
		v, ok := new(big.Int).SetString(*n.Int, 10)
		if !ok {
			return micheline.Prim{}, fmt.Errorf("invalid int literal %q", *n.Int)
		}
		return micheline.Prim{Type: micheline.PrimInt, Int: v}, nil
	case n.String != nil:
		return micheline.Prim{Type: micheline.PrimString, String: *n.String}, nil
	case n.Bytes != nil:
		b, err := hex.DecodeString(*n.Bytes)
		if err != nil {
			return micheline.Prim{}, fmt.Errorf("invalid bytes literal %q", *n.Bytes)
		}
		return micheline.Prim{Type: micheline.PrimBytes, Bytes: b}, nil
	}

	op, err := micheline.ParseOpCode(*n.Prim)
	if err != nil {
		return micheline.Prim{}, fmt.Errorf("unknown primitive %q", *n.Prim)
	}
	args := make([]micheline.Prim, 0, len(n.Args))
	for i := range n.Args {
		arg, err := n.Args[i].toPrim()
		if err != nil {
			return micheline.Prim{}, err
		}
		args = append(args, arg)
	}
	return newPrim(op, n.Annots, args...), nil
}
