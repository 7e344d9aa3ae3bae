package tzkt

import (
	"context"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"blockwatch.cc/tzgo/micheline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contract = "KT1RJ6PbjHpwc3M5rw5s2Nbmefwbuwbdxton"

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL + "/")
}

func TestGetContractStorage(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/contracts/"+contract+"/storage", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"minimum_votes":"2","proposals":100}`))
	})

	var storage struct {
		MinimumVotes string `json:"minimum_votes"`
		Proposals    int64  `json:"proposals"`
	}
	require.NoError(t, client.GetContractStorage(context.Background(), contract, &storage))
	assert.Equal(t, "2", storage.MinimumVotes)
	assert.Equal(t, int64(100), storage.Proposals)
}

func TestGetBalance(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/accounts/"+contract+"/balance", r.URL.Path)
		_, _ = w.Write([]byte("123456789012"))
	})

	balance, err := client.GetBalance(context.Background(), contract)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(123456789012), balance)
}

func TestGetBigmapKeys(t *testing.T) {
	t.Run("reverses the result", func(t *testing.T) {
		client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/bigmaps/101/keys", r.URL.Path)
			q := r.URL.Query()
			assert.Equal(t, "10000", q.Get("limit"))
			assert.Equal(t, "true", q.Get("active"))
			assert.Equal(t, "key,value", q.Get("select"))
			assert.Equal(t, "hen", q.Get("key.string"))
			_, _ = w.Write([]byte(`[{"key":{"nat":"1","string":"hen"},"value":true},{"key":{"nat":"2","string":"hen"},"value":false}]`))
		})

		keys, err := client.GetBigmapKeys(context.Background(), 101, BigmapQuery{KeyString: "hen"})
		require.NoError(t, err)
		require.Len(t, keys, 2)
		assert.JSONEq(t, `{"nat":"2","string":"hen"}`, string(keys[0].Key))
		assert.Equal(t, "false", string(keys[0].Value))
	})

	t.Run("single key.in value is doubled", func(t *testing.T) {
		client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "tz1a,tz1a", r.URL.Query().Get("key.in"))
			_, _ = w.Write([]byte(`[]`))
		})

		keys, err := client.GetBigmapKeys(context.Background(), 3919, BigmapQuery{KeyIn: []string{"tz1a"}})
		require.NoError(t, err)
		assert.Empty(t, keys)
	})
}

func TestGetEntrypoint(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/contracts/"+contract+"/entrypoints/vote_proposal", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("micheline"))
		_, _ = w.Write([]byte(`{
			"name": "vote_proposal",
			"michelineParameters": {"prim":"pair","args":[{"prim":"nat","annots":["%proposal_id"]},{"prim":"bool","annots":["%approval"]}]},
			"michelsonParameters": "pair (nat %proposal_id) (bool %approval)"
		}`))
	})

	ep, err := client.GetEntrypoint(context.Background(), contract, "vote_proposal")
	require.NoError(t, err)
	require.NotNil(t, ep.MichelineParameters)
	assert.Equal(t, micheline.T_PAIR, ep.MichelineParameters.OpCode)
	require.Len(t, ep.MichelineParameters.Args, 2)
	assert.Equal(t, micheline.T_NAT, ep.MichelineParameters.Args[0].OpCode)
}

func TestErrors(t *testing.T) {
	t.Run("no content is not found", func(t *testing.T) {
		client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
		_, err := client.GetEntrypoint(context.Background(), contract, "nope")
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("status errors carry the body", func(t *testing.T) {
		client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		})
		_, err := client.GetOperations(context.Background(), "ooHash")

		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
		assert.Equal(t, "rate limited", statusErr.Body)
	})

	t.Run("context is honoured", func(t *testing.T) {
		client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := client.GetOperations(ctx, "ooHash")
		assert.ErrorIs(t, err, context.Canceled)
	})
}
