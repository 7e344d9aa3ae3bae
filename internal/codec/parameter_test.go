package codec

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/representatives-dao/repms/internal/domain/models"
)

const addProposalType = `or
	(or
		(or (pair %add_representative (address %address) (string %community)) (nat %expiration_time))
		(or (lambda %lambda_function unit (list operation)) (nat %minimum_votes)))
	(or
		(or (pair %remove_representative (address %address) (string %community)) (bytes %text))
		(or
			(list %transfer_mutez (pair (mutez %amount) (address %destination)))
			(pair %transfer_token
				(address %fa2)
				(pair (nat %token_id) (list %distribution (pair (nat %amount) (address %destination)))))))`

const (
	testAlice = "tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb"
	testObjkt = "KT1RJ6PbjHpwc3M5rw5s2Nbmefwbuwbdxton"
)

func buildAddProposal(t *testing.T, kind models.ProposalKind) string {
	t.Helper()
	typ, err := ParseMicheline(addProposalType)
	require.NoError(t, err)

	value, err := KindValue(kind)
	require.NoError(t, err)

	param, err := BuildParameter(typ, value)
	require.NoError(t, err)
	return EmitMicheline(param, EmitOptions{})
}

func TestBuildParameter_AddProposal(t *testing.T) {
	lambda, err := ParseMicheline("{ DROP ; NIL operation }")
	require.NoError(t, err)

	tests := []struct {
		name     string
		kind     models.ProposalKind
		expected string
	}{
		{
			name:     "text",
			kind:     &models.TextKind{Text: StringToHex("ipfs://Qm")},
			expected: "Right (Left (Right 0x697066733a2f2f516d))",
		},
		{
			name: "transfer mutez",
			kind: &models.TransferMutezKind{Transfers: []models.Transfer{
				{Amount: big.NewInt(1_000_000), Destination: testAlice},
			}},
			expected: `Right (Right (Left { Pair 1000000 "` + testAlice + `" }))`,
		},
		{
			name: "transfer token",
			kind: &models.TransferTokenKind{
				FA2:          testObjkt,
				TokenID:      big.NewInt(152),
				Distribution: []models.Transfer{{Amount: big.NewInt(3), Destination: testAlice}},
			},
			expected: `Right (Right (Right (Pair "` + testObjkt + `" (Pair 152 { Pair 3 "` + testAlice + `" }))))`,
		},
		{
			name:     "lambda",
			kind:     &models.LambdaFunctionKind{Code: lambda},
			expected: "Left (Right (Left { DROP ; NIL operation }))",
		},
		{
			name:     "add representative",
			kind:     &models.AddRepresentativeKind{Representative: models.Representative{Address: testAlice, Community: "objkt"}},
			expected: `Left (Left (Left (Pair "` + testAlice + `" "objkt")))`,
		},
		{
			name:     "remove representative",
			kind:     &models.RemoveRepresentativeKind{Representative: models.Representative{Address: testAlice, Community: "hen"}},
			expected: `Right (Left (Left (Pair "` + testAlice + `" "hen")))`,
		},
		{
			name:     "minimum votes",
			kind:     &models.MinimumVotesKind{Votes: 3},
			expected: "Left (Right (Right 3))",
		},
		{
			name:     "expiration time",
			kind:     &models.ExpirationTimeKind{Days: 7},
			expected: "Left (Left (Right 7))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, buildAddProposal(t, tt.kind))
		})
	}
}

func TestBuildParameter_Positional(t *testing.T) {
	typ, err := ParseMicheline("pair (nat %proposal_id) (bool %approval)")
	require.NoError(t, err)

	param, err := BuildParameter(typ, []any{int64(4), true})
	require.NoError(t, err)
	assert.Equal(t, "Pair 4 True", EmitMicheline(param, EmitOptions{}))

	_, err = BuildParameter(typ, []any{int64(4)})
	assert.Error(t, err)

	_, err = BuildParameter(typ, []any{int64(4), true, false})
	assert.Error(t, err)

	named, err := BuildParameter(typ, map[string]any{"proposal_id": "5", "approval": false})
	require.NoError(t, err)
	assert.Equal(t, "Pair 5 False", EmitMicheline(named, EmitOptions{}))
}

func TestBuildParameter_Errors(t *testing.T) {
	typ, err := ParseMicheline(addProposalType)
	require.NoError(t, err)

	_, err = BuildParameter(typ, map[string]any{"set_fee": big.NewInt(1)})
	assert.ErrorContains(t, err, "no branch %set_fee")

	_, err = BuildParameter(typ, map[string]any{"minimum_votes": "three"})
	assert.Error(t, err)

	_, err = BuildParameter(typ, map[string]any{"add_representative": map[string]any{"address": testAlice}})
	assert.ErrorContains(t, err, `missing field "community"`)

	_, err = BuildParameter(typ, map[string]any{"add_representative": map[string]any{"address": "tz1nope", "community": "hen"}})
	assert.Error(t, err)

	nat, err := ParseMicheline("nat")
	require.NoError(t, err)
	_, err = BuildParameter(nat, big.NewInt(-1))
	assert.Error(t, err)

	_, err = KindValue(&models.UnknownKind{Tag: "set_fee"})
	assert.Error(t, err)
}

func TestBuildParameter_Option(t *testing.T) {
	typ, err := ParseMicheline("option nat")
	require.NoError(t, err)

	none, err := BuildParameter(typ, nil)
	require.NoError(t, err)
	assert.Equal(t, "None", EmitMicheline(none, EmitOptions{}))

	some, err := BuildParameter(typ, 3)
	require.NoError(t, err)
	assert.Equal(t, "Some 3", EmitMicheline(some, EmitOptions{}))
}
