package codec

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"blockwatch.cc/tzgo/micheline"

	"github.com/representatives-dao/repms/internal/domain/models"
)

// BuildParameter encodes a Go value as Micheline data of type typ.
//
// or types take a map with one key naming the annotated branch, pair types take
// a map keyed by field annotation or a positional slice, lists take []any,
// numbers take *big.Int, int, int64 or decimal strings, bytes take []byte or
// hex strings and lambdas take a micheline.Prim. Everything below the selected
// or branch is encoded by the micheline typed marshaller.
func BuildParameter(typ micheline.Prim, value any) (micheline.Prim, error) {
	if typ.OpCode == micheline.T_OR {
		return buildOr(typ, value)
	}

	td := micheline.NewType(typ).Typedef("")
	normalized, err := normalizeValue(td, value)
	if err != nil {
		return micheline.Prim{}, err
	}
	return td.Marshal(normalized, false)
}

// fieldName returns the field annotation of a type without its % prefix
func fieldName(typ micheline.Prim) string {
	for _, anno := range typ.Anno {
		if strings.HasPrefix(anno, "%") {
			return anno[1:]
		}
	}
	return ""
}

// buildOr selects the annotated branch and wraps its value in Left and Right.
// The branch is marshalled on its own so record fields are placed relative to
// the branch type rather than the whole or tree.
func buildOr(typ micheline.Prim, value any) (micheline.Prim, error) {
	tagged, ok := value.(map[string]any)
	if !ok || len(tagged) != 1 {
		return micheline.Prim{}, fmt.Errorf("or type expects a single entry map, got %T", value)
	}

	var name string
	var inner any
	for k, v := range tagged {
		name, inner = k, v
	}

	path, leaf, found := findBranch(typ, name)
	if !found {
		return micheline.Prim{}, fmt.Errorf("no branch %%%s in parameter type", name)
	}
	encoded, err := BuildParameter(leaf, inner)
	if err != nil {
		return micheline.Prim{}, fmt.Errorf("%s: %w", name, err)
	}
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] {
			encoded = newPrim(micheline.D_LEFT, nil, encoded)
		} else {
			encoded = newPrim(micheline.D_RIGHT, nil, encoded)
		}
	}
	return encoded, nil
}

// findBranch walks nested or types to the branch annotated with name.
// path holds true for every Left step.
func findBranch(typ micheline.Prim, name string) ([]bool, micheline.Prim, bool) {
	if typ.OpCode != micheline.T_OR || len(typ.Args) != 2 {
		return nil, micheline.Prim{}, false
	}
	for i, arg := range typ.Args {
		left := i == 0
		if fieldName(arg) == name {
			return []bool{left}, arg, true
		}
		if arg.OpCode == micheline.T_OR {
			if path, leaf, ok := findBranch(arg, name); ok {
				return append([]bool{left}, path...), leaf, true
			}
		}
	}
	return nil, micheline.Prim{}, false
}

// normalizeValue rewrites a value into the shapes Typedef.Marshal accepts:
// records become maps keyed by field name, numbers become decimal strings
// and hex strings become bytes. It also reports missing record fields and
// negative naturals, which the marshaller lets through.
func normalizeValue(td micheline.Typedef, value any) (any, error) {
	if td.Optional && value == nil {
		return nil, nil
	}

	switch td.Type {
	case micheline.TypeStruct:
		return normalizeRecord(td, value)

	case "list", "set":
		items, ok := value.([]any)
		if !ok {
			return nil, typeMismatch(td, value)
		}
		out := make([]any, len(items))
		for i, item := range items {
			v, err := normalizeValue(td.Args[0], item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = v
		}
		return out, nil

	case "nat", "int", "mutez":
		n, err := toBigInt(value)
		if err != nil {
			return nil, err
		}
		if td.Type != "int" && n.Sign() < 0 {
			return nil, fmt.Errorf("negative value %s for %s", n, td.Type)
		}
		return n.String(), nil

	case "bytes":
		if s, ok := value.(string); ok {
			b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
			if err != nil {
				return nil, fmt.Errorf("invalid hex bytes %q: %w", s, err)
			}
			return b, nil
		}

	case "lambda":
		if _, ok := value.(micheline.Prim); !ok {
			return nil, typeMismatch(td, value)
		}
	}
	return value, nil
}

func normalizeRecord(td micheline.Typedef, value any) (map[string]any, error) {
	out := make(map[string]any, len(td.Args))
	switch v := value.(type) {
	case []any:
		if len(v) != len(td.Args) {
			return nil, fmt.Errorf("pair expects %d values, got %d", len(td.Args), len(v))
		}
		for i, field := range td.Args {
			fv, err := normalizeValue(field, v[i])
			if err != nil {
				return nil, err
			}
			out[field.Name] = fv
		}
	case map[string]any:
		for _, field := range td.Args {
			raw, ok := v[field.Name]
			if !ok && !field.Optional {
				return nil, fmt.Errorf("missing field %q", field.Name)
			}
			fv, err := normalizeValue(field, raw)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", field.Name, err)
			}
			out[field.Name] = fv
		}
	default:
		return nil, typeMismatch(td, value)
	}
	return out, nil
}

func typeMismatch(td micheline.Typedef, value any) error {
	return fmt.Errorf("cannot encode %T as %s", value, td.Type)
}

func toBigInt(value any) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		if v == nil {
			return nil, fmt.Errorf("nil number")
		}
		return v, nil
	case int:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case string:
		n, ok := new(big.Int).SetString(v, 10)
		if !ok {
			return nil, fmt.Errorf("invalid number %q", v)
		}
		return n, nil
	}
	return nil, fmt.Errorf("cannot encode %T as a number", value)
}

// KindValue maps a proposal kind to the value taken by the add_proposal entrypoint
func KindValue(kind models.ProposalKind) (map[string]any, error) {
	if kind == nil {
		return nil, fmt.Errorf("no proposal kind")
	}
	v := &kindValuer{}
	if err := kind.Accept(v); err != nil {
		return nil, err
	}
	return map[string]any{string(kind.Name()): v.value}, nil
}

type kindValuer struct {
	value any
}

var _ models.KindVisitor = (*kindValuer)(nil)

func transfersValue(transfers []models.Transfer) []any {
	items := make([]any, len(transfers))
	for i, t := range transfers {
		items[i] = map[string]any{"amount": t.Amount, "destination": t.Destination}
	}
	return items
}

func representativeValue(r models.Representative) map[string]any {
	return map[string]any{"address": r.Address, "community": r.Community}
}

func (v *kindValuer) VisitText(k *models.TextKind) error {
	b, err := hex.DecodeString(k.Text)
	if err != nil {
		return fmt.Errorf("text payload is not hex: %w", err)
	}
	v.value = b
	return nil
}

func (v *kindValuer) VisitTransferMutez(k *models.TransferMutezKind) error {
	v.value = transfersValue(k.Transfers)
	return nil
}

func (v *kindValuer) VisitTransferToken(k *models.TransferTokenKind) error {
	v.value = map[string]any{
		"fa2":          k.FA2,
		"token_id":     k.TokenID,
		"distribution": transfersValue(k.Distribution),
	}
	return nil
}

func (v *kindValuer) VisitLambdaFunction(k *models.LambdaFunctionKind) error {
	v.value = k.Code
	return nil
}

func (v *kindValuer) VisitAddRepresentative(k *models.AddRepresentativeKind) error {
	v.value = representativeValue(k.Representative)
	return nil
}

func (v *kindValuer) VisitRemoveRepresentative(k *models.RemoveRepresentativeKind) error {
	v.value = representativeValue(k.Representative)
	return nil
}

func (v *kindValuer) VisitMinimumVotes(k *models.MinimumVotesKind) error {
	v.value = big.NewInt(k.Votes)
	return nil
}

func (v *kindValuer) VisitExpirationTime(k *models.ExpirationTimeKind) error {
	v.value = big.NewInt(k.Days)
	return nil
}

func (v *kindValuer) VisitUnknown(k *models.UnknownKind) error {
	return fmt.Errorf("cannot submit unrecognized proposal kind %q", k.Tag)
}
