package usecase_test

import (
	"context"
	"math/big"
	"testing"
	"time"

	"blockwatch.cc/tzgo/micheline"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/representatives-dao/repms/internal/codec"
	"github.com/representatives-dao/repms/internal/domain/config"
	"github.com/representatives-dao/repms/internal/domain/models"
	"github.com/representatives-dao/repms/internal/usecase"
)

const (
	contract = "KT1RJ6PbjHpwc3M5rw5s2Nbmefwbuwbdxton"
	alice    = "tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb"
	bob      = "tz1aSkwEot3L2kmUvcoxzjMomb9mvBNuzFK6"
	carol    = "tz1KqTpEZ7Yob7QbPE4Hy4Wo8fHG8LhKxZSx"
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

// MockIndexer is a mock implementation of Indexer
type MockIndexer struct {
	mock.Mock
}

func (m *MockIndexer) GetStorage(ctx context.Context, contract string) (*models.ContractStorage, error) {
	args := m.Called(ctx, contract)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContractStorage), args.Error(1)
}

func (m *MockIndexer) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockIndexer) GetProposals(ctx context.Context, bigmap int64) ([]*models.Proposal, error) {
	args := m.Called(ctx, bigmap)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Proposal), args.Error(1)
}

func (m *MockIndexer) GetCommunityVotes(ctx context.Context, bigmap int64, community string) (map[int64]bool, error) {
	args := m.Called(ctx, bigmap, community)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]bool), args.Error(1)
}

func (m *MockIndexer) GetEntrypointType(ctx context.Context, contract, entrypoint string) (micheline.Prim, error) {
	args := m.Called(ctx, contract, entrypoint)
	return args.Get(0).(micheline.Prim), args.Error(1)
}

func (m *MockIndexer) WaitForOperation(ctx context.Context, hash string) error {
	args := m.Called(ctx, hash)
	return args.Error(0)
}

// MockAliasResolver is a mock implementation of AliasResolver
type MockAliasResolver struct {
	mock.Mock
}

func (m *MockAliasResolver) GetAliases(ctx context.Context, addresses []string) (map[string]string, error) {
	args := m.Called(ctx, addresses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

// MockSubmitter is a mock implementation of OperationSubmitter
type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) Submit(ctx context.Context, call usecase.ContractCall) (*usecase.OperationResult, error) {
	args := m.Called(ctx, call)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.OperationResult), args.Error(1)
}

// MockUploader is a mock implementation of FileUploader
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

// MockLocalConfigStore keeps the local config in memory
type MockLocalConfigStore struct {
	config *config.LocalConfig
	saved  int
}

func (m *MockLocalConfigStore) Exists() bool { return m.config != nil }

func (m *MockLocalConfigStore) Load(context.Context) (*config.LocalConfig, error) {
	if m.config == nil {
		return config.DefaultLocalConfig(), nil
	}
	copied := *m.config
	return &copied, nil
}

func (m *MockLocalConfigStore) Save(_ context.Context, cfg *config.LocalConfig) error {
	m.config = cfg
	m.saved++
	return nil
}

func (m *MockLocalConfigStore) GetPath() string { return "/project/.repms/config.local.json" }

// MockProgressSink records progress events and notices
type MockProgressSink struct {
	events []usecase.ProgressEvent
	errors []string
}

func (m *MockProgressSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(string) {}

func (m *MockProgressSink) Error(message string) {
	m.errors = append(m.errors, message)
}

func (m *MockProgressSink) stages() []string {
	stages := make([]string, 0, len(m.events))
	for _, e := range m.events {
		stages = append(stages, e.Stage)
	}
	return stages
}

func (m *MockProgressSink) event(stage string) usecase.ProgressEvent {
	for _, e := range m.events {
		if e.Stage == stage {
			return e
		}
	}
	return usecase.ProgressEvent{}
}

func testConfig(account string) *config.RuntimeConfig {
	return &config.RuntimeConfig{
		Network:  &config.Network{Name: "mainnet", IndexerURL: "https://api.tzkt.io"},
		Contract: contract,
		Account:  account,
		Tokens:   models.NewTokenRegistry(models.DefaultTokens()...),
	}
}

func testStorage() *models.ContractStorage {
	return &models.ContractStorage{
		Representatives: map[string]string{alice: "hen", bob: "teia"},
		Communities:     []string{"hen", "teia"},
		MinimumVotes:    2,
		ExpirationTime:  7,
		ProposalsBigmap: 100,
		VotesBigmap:     101,
	}
}

func proposal(id int64, age time.Duration, votes int64, executed bool) *models.Proposal {
	return &models.Proposal{
		ID:            id,
		Issuer:        models.Representative{Address: alice, Community: "hen"},
		Timestamp:     time.Now().Add(-age),
		Kind:          &models.MinimumVotesKind{Votes: 3},
		PositiveVotes: votes,
		Executed:      executed,
	}
}

func mustParse(t *testing.T, src string) micheline.Prim {
	t.Helper()
	prim, err := codec.ParseMicheline(src)
	require.NoError(t, err)
	return prim
}

// fixture wires the mocks around a LoadState the way the app does
type fixture struct {
	cfg       *config.RuntimeConfig
	indexer   *MockIndexer
	aliases   *MockAliasResolver
	submitter *MockSubmitter
	sink      *MockProgressSink
	session   *usecase.Session
	state     *usecase.LoadState
}

func newFixture(account string) *fixture {
	f := &fixture{
		cfg:       testConfig(account),
		indexer:   new(MockIndexer),
		aliases:   new(MockAliasResolver),
		submitter: new(MockSubmitter),
		sink:      &MockProgressSink{},
		session:   usecase.NewSession(),
	}
	f.state = usecase.NewLoadState(f.cfg, f.indexer, f.aliases, f.session, f.sink)
	return f
}

// expectLoad sets up a successful state load
func (f *fixture) expectLoad(proposals []*models.Proposal, votes map[int64]bool) {
	f.indexer.On("GetStorage", mock.Anything, contract).Return(testStorage(), nil)
	f.indexer.On("GetBalance", mock.Anything, contract).Return(big.NewInt(10_000_000), nil)
	f.indexer.On("GetProposals", mock.Anything, int64(100)).Return(proposals, nil)
	f.indexer.On("GetCommunityVotes", mock.Anything, int64(101), mock.Anything).Return(votes, nil).Maybe()
	f.aliases.On("GetAliases", mock.Anything, mock.Anything).Return(map[string]string{alice: "Alice"}, nil).Maybe()
}
