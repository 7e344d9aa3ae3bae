package tzkt

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/url"
	"strconv"
	"strings"
	"time"

	"blockwatch.cc/tzgo/micheline"
)

// Operation statuses reported by TzKT
const (
	StatusApplied     = "applied"
	StatusFailed      = "failed"
	StatusBacktracked = "backtracked"
	StatusSkipped     = "skipped"
)

// BigmapKey is an active bigmap entry, as returned with select=key,value
type BigmapKey struct {
	Key   json.RawMessage `json:"key"`
	Value json.RawMessage `json:"value"`
}

// Entrypoint describes a contract entrypoint parameter type
type Entrypoint struct {
	Name                string          `json:"name"`
	MichelineParameters *micheline.Prim `json:"michelineParameters"`
	MichelsonParameters string          `json:"michelsonParameters,omitempty"`
}

// Operation is the subset of an indexed operation needed to follow its outcome
type Operation struct {
	Type      string          `json:"type"`
	ID        int64           `json:"id"`
	Level     int64           `json:"level"`
	Timestamp time.Time       `json:"timestamp"`
	Hash      string          `json:"hash"`
	Status    string          `json:"status"`
	Errors    json.RawMessage `json:"errors,omitempty"`
}

// BigmapQuery narrows a bigmap keys request
type BigmapQuery struct {
	// KeyString matches string keys, or the string field of pair keys
	KeyString string
	// KeyIn matches any of the given keys
	KeyIn []string
}

// GetContractStorage decodes the current storage of a contract into out
func (c *Client) GetContractStorage(ctx context.Context, address string, out any) error {
	return c.get(ctx, "/v1/contracts/"+url.PathEscape(address)+"/storage", nil, out)
}

// GetBalance returns the balance of an account in mutez
func (c *Client) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	var raw json.Number
	if err := c.get(ctx, "/v1/accounts/"+url.PathEscape(address)+"/balance", nil, &raw); err != nil {
		return nil, err
	}
	balance, ok := new(big.Int).SetString(raw.String(), 10)
	if !ok {
		return nil, fmt.Errorf("invalid balance %q", raw.String())
	}
	return balance, nil
}

// GetBigmapKeys returns the active keys of a bigmap, most recently updated first
func (c *Client) GetBigmapKeys(ctx context.Context, bigmap int64, query BigmapQuery) ([]BigmapKey, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(MaxBigmapKeys))
	params.Set("active", "true")
	params.Set("select", "key,value")
	if query.KeyString != "" {
		params.Set("key.string", query.KeyString)
	}
	if len(query.KeyIn) > 0 {
		keys := query.KeyIn
		// key.in needs at least two values
		if len(keys) == 1 {
			keys = []string{keys[0], keys[0]}
		}
		params.Set("key.in", strings.Join(keys, ","))
	}

	var keys []BigmapKey
	if err := c.get(ctx, fmt.Sprintf("/v1/bigmaps/%d/keys", bigmap), params, &keys); err != nil {
		return nil, err
	}
	for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
		keys[i], keys[j] = keys[j], keys[i]
	}
	return keys, nil
}

// GetEntrypoint returns an entrypoint with its Micheline parameter type
func (c *Client) GetEntrypoint(ctx context.Context, contract, name string) (*Entrypoint, error) {
	params := url.Values{}
	params.Set("micheline", "true")
	params.Set("michelson", "true")

	var ep Entrypoint
	path := fmt.Sprintf("/v1/contracts/%s/entrypoints/%s", url.PathEscape(contract), url.PathEscape(name))
	if err := c.get(ctx, path, params, &ep); err != nil {
		return nil, fmt.Errorf("entrypoint %s: %w", name, err)
	}
	return &ep, nil
}

// GetOperations returns the operations of a group by hash. The result is
// empty until the group is included in a block.
func (c *Client) GetOperations(ctx context.Context, hash string) ([]Operation, error) {
	var ops []Operation
	if err := c.get(ctx, "/v1/operations/"+url.PathEscape(hash), nil, &ops); err != nil {
		return nil, err
	}
	return ops, nil
}
