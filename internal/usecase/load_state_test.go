package usecase_test

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/representatives-dao/repms/internal/domain/models"
	"github.com/representatives-dao/repms/internal/usecase"
)

func TestLoadState(t *testing.T) {
	ctx := context.Background()

	t.Run("loads the state of a representative", func(t *testing.T) {
		f := newFixture(alice)
		proposals := []*models.Proposal{proposal(1, time.Hour, 1, false)}
		f.expectLoad(proposals, map[int64]bool{1: true})

		snapshot, err := f.state.Run(ctx)
		require.NoError(t, err)

		assert.Equal(t, "hen", snapshot.Community)
		assert.True(t, snapshot.IsRepresentative())
		assert.Equal(t, big.NewInt(10_000_000), snapshot.Balance)
		assert.Len(t, snapshot.Proposals, 1)
		assert.Equal(t, "Alice", snapshot.Aliases[alice])

		approval, voted := snapshot.Vote(1)
		assert.True(t, voted)
		assert.True(t, approval)

		assert.Same(t, snapshot, f.session.Snapshot())
		assert.Equal(t, []string{"storage", "balance", "proposals", "complete"}, f.sink.stages())
		f.indexer.AssertCalled(t, "GetCommunityVotes", mock.Anything, int64(101), "hen")
	})

	t.Run("community votes are not loaded for other users", func(t *testing.T) {
		f := newFixture(carol)
		f.expectLoad(nil, nil)

		snapshot, err := f.state.Run(ctx)
		require.NoError(t, err)

		assert.False(t, snapshot.IsRepresentative())
		assert.Empty(t, snapshot.CommunityVotes)
		f.indexer.AssertNotCalled(t, "GetCommunityVotes", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("storage failure leaves the session untouched", func(t *testing.T) {
		f := newFixture(alice)
		previous := &usecase.Snapshot{UserAddress: alice, Storage: testStorage()}
		f.session.Replace(previous)

		f.indexer.On("GetStorage", mock.Anything, contract).Return(nil, errors.New("tzkt is down"))

		_, err := f.state.Run(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "tzkt is down")
		assert.Same(t, previous, f.session.Snapshot())
	})

	t.Run("proposals failure leaves the session untouched", func(t *testing.T) {
		f := newFixture(alice)
		f.indexer.On("GetStorage", mock.Anything, contract).Return(testStorage(), nil)
		f.indexer.On("GetBalance", mock.Anything, contract).Return(big.NewInt(1), nil)
		f.indexer.On("GetProposals", mock.Anything, int64(100)).Return(nil, errors.New("timeout"))

		_, err := f.state.Run(ctx)
		require.Error(t, err)
		assert.Nil(t, f.session.Snapshot())
	})

	t.Run("alias failure is reported and not fatal", func(t *testing.T) {
		f := newFixture(alice)
		f.indexer.On("GetStorage", mock.Anything, contract).Return(testStorage(), nil)
		f.indexer.On("GetBalance", mock.Anything, contract).Return(big.NewInt(1), nil)
		f.indexer.On("GetProposals", mock.Anything, int64(100)).Return([]*models.Proposal{}, nil)
		f.indexer.On("GetCommunityVotes", mock.Anything, int64(101), "hen").Return(map[int64]bool{}, nil)
		f.aliases.On("GetAliases", mock.Anything, mock.Anything).Return(nil, errors.New("no aliases"))

		snapshot, err := f.state.Run(ctx)
		require.NoError(t, err)
		assert.Empty(t, snapshot.Aliases)
		require.Len(t, f.sink.errors, 1)
		assert.Contains(t, f.sink.errors[0], "no aliases")
	})

	t.Run("missing contract", func(t *testing.T) {
		f := newFixture(alice)
		f.cfg.Contract = ""

		_, err := f.state.Run(ctx)
		assert.ErrorIs(t, err, usecase.ErrContractNotConfigured)
	})

	t.Run("ensure loads once", func(t *testing.T) {
		f := newFixture(alice)
		f.expectLoad(nil, map[int64]bool{})

		first, err := f.state.Ensure(ctx)
		require.NoError(t, err)
		second, err := f.state.Ensure(ctx)
		require.NoError(t, err)

		assert.Same(t, first, second)
		f.indexer.AssertNumberOfCalls(t, "GetStorage", 1)
	})
}

func TestLoadState_RefreshProposals(t *testing.T) {
	ctx := context.Background()
	f := newFixture(alice)
	f.indexer.On("GetStorage", mock.Anything, contract).Return(testStorage(), nil)
	f.indexer.On("GetBalance", mock.Anything, contract).Return(big.NewInt(1), nil)
	f.indexer.On("GetProposals", mock.Anything, int64(100)).
		Return([]*models.Proposal{proposal(1, time.Hour, 0, false)}, nil).Once()
	f.indexer.On("GetProposals", mock.Anything, int64(100)).
		Return([]*models.Proposal{proposal(2, 0, 0, false), proposal(1, time.Hour, 1, false)}, nil).Once()
	f.indexer.On("GetCommunityVotes", mock.Anything, int64(101), "hen").Return(map[int64]bool{}, nil).Once()
	f.indexer.On("GetCommunityVotes", mock.Anything, int64(101), "hen").Return(map[int64]bool{1: false}, nil).Once()
	f.aliases.On("GetAliases", mock.Anything, mock.Anything).Return(map[string]string{}, nil)

	first, err := f.state.Run(ctx)
	require.NoError(t, err)

	next, err := f.state.RefreshProposals(ctx)
	require.NoError(t, err)

	assert.NotSame(t, first, next)
	assert.Len(t, first.Proposals, 1)
	assert.Len(t, next.Proposals, 2)
	assert.Same(t, first.Storage, next.Storage)
	_, voted := next.Vote(1)
	assert.True(t, voted)
	assert.Same(t, next, f.session.Snapshot())
	f.indexer.AssertNumberOfCalls(t, "GetStorage", 1)
}
