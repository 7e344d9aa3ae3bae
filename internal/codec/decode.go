package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"

	"blockwatch.cc/tzgo/micheline"

	"github.com/representatives-dao/repms/internal/domain/models"
)

// DecodeKind converts the indexer JSON of a stored proposal kind, an object with
// a single tag key, into a ProposalKind. Anything it cannot interpret becomes an
// UnknownKind carrying the raw JSON.
func DecodeKind(raw json.RawMessage) models.ProposalKind {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(raw, &tagged); err != nil || len(tagged) != 1 {
		return &models.UnknownKind{Raw: raw}
	}

	var tag string
	var payload json.RawMessage
	for k, v := range tagged {
		tag, payload = k, v
	}

	kind, err := decodePayload(models.KindName(tag), payload)
	if err != nil {
		return &models.UnknownKind{Tag: tag, Raw: raw}
	}
	return kind
}

type transferJSON struct {
	Amount      json.RawMessage `json:"amount"`
	Destination string          `json:"destination"`
}

type tokenTransferJSON struct {
	FA2          string          `json:"fa2"`
	TokenID      json.RawMessage `json:"token_id"`
	Distribution []transferJSON  `json:"distribution"`
}

type representativeJSON struct {
	Address   string `json:"address"`
	Community string `json:"community"`
}

func decodePayload(tag models.KindName, payload json.RawMessage) (models.ProposalKind, error) {
	switch tag {
	case models.KindText:
		var text string
		if err := json.Unmarshal(payload, &text); err != nil {
			return nil, err
		}
		return &models.TextKind{Text: text}, nil

	case models.KindTransferMutez:
		var items []transferJSON
		if err := json.Unmarshal(payload, &items); err != nil {
			return nil, err
		}
		transfers, err := decodeTransfers(items)
		if err != nil {
			return nil, err
		}
		return &models.TransferMutezKind{Transfers: transfers}, nil

	case models.KindTransferToken:
		var item tokenTransferJSON
		if err := json.Unmarshal(payload, &item); err != nil {
			return nil, err
		}
		tokenID, err := ParseNat(item.TokenID)
		if err != nil {
			return nil, err
		}
		distribution, err := decodeTransfers(item.Distribution)
		if err != nil {
			return nil, err
		}
		return &models.TransferTokenKind{FA2: item.FA2, TokenID: tokenID, Distribution: distribution}, nil

	case models.KindLambdaFunction:
		code, err := decodeLambda(payload)
		if err != nil {
			return nil, err
		}
		return &models.LambdaFunctionKind{Code: code}, nil

	case models.KindAddRepresentative, models.KindRemoveRepresentative:
		var rep representativeJSON
		if err := json.Unmarshal(payload, &rep); err != nil {
			return nil, err
		}
		representative := models.Representative{Address: rep.Address, Community: rep.Community}
		if tag == models.KindAddRepresentative {
			return &models.AddRepresentativeKind{Representative: representative}, nil
		}
		return &models.RemoveRepresentativeKind{Representative: representative}, nil

	case models.KindMinimumVotes, models.KindExpirationTime:
		n, err := ParseNat(payload)
		if err != nil {
			return nil, err
		}
		if !n.IsInt64() {
			return nil, fmt.Errorf("value %s out of range", n)
		}
		if tag == models.KindMinimumVotes {
			return &models.MinimumVotesKind{Votes: n.Int64()}, nil
		}
		return &models.ExpirationTimeKind{Days: n.Int64()}, nil
	}
	return nil, fmt.Errorf("unknown proposal kind %q", tag)
}

func decodeTransfers(items []transferJSON) ([]models.Transfer, error) {
	transfers := make([]models.Transfer, 0, len(items))
	for _, item := range items {
		amount, err := ParseNat(item.Amount)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, models.Transfer{Amount: amount, Destination: item.Destination})
	}
	return transfers, nil
}

// decodeLambda accepts Micheline JSON, or a JSON string holding Micheline JSON
func decodeLambda(payload json.RawMessage) (micheline.Prim, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return micheline.Prim{}, err
		}
		trimmed = []byte(inner)
	}

	var code micheline.Prim
	if err := json.Unmarshal(trimmed, &code); err != nil {
		return micheline.Prim{}, err
	}
	return code, nil
}

// ParseNat reads a natural number the indexer rendered as a JSON string or number
func ParseNat(raw json.RawMessage) (*big.Int, error) {
	s := string(bytes.TrimSpace(raw))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 {
		return nil, fmt.Errorf("invalid natural number %s", string(raw))
	}
	return n, nil
}
