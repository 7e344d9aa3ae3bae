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

	"github.com/representatives-dao/repms/internal/codec"
	"github.com/representatives-dao/repms/internal/domain/models"
	"github.com/representatives-dao/repms/internal/usecase"
)

// callWith matches a contract call by entrypoint and rendered parameter
func callWith(entrypoint, parameter string) interface{} {
	return mock.MatchedBy(func(call usecase.ContractCall) bool {
		return call.Contract == contract &&
			call.Entrypoint == entrypoint &&
			codec.EmitMicheline(call.Parameter, codec.EmitOptions{}) == parameter
	})
}

func TestCreateProposal(t *testing.T) {
	ctx := context.Background()

	t.Run("submits a text proposal and refreshes", func(t *testing.T) {
		f := newFixture(alice)
		f.expectLoad(nil, map[int64]bool{})
		f.indexer.On("GetEntrypointType", mock.Anything, contract, usecase.EntrypointAddProposal).
			Return(mustParse(t, addProposalType), nil)
		f.submitter.On("Submit", mock.Anything, callWith(usecase.EntrypointAddProposal, "Right (Left (Right 0x697066733a2f2f516d))")).
			Return(&usecase.OperationResult{Hash: "ooTestHash", Entrypoint: usecase.EntrypointAddProposal}, nil)
		f.indexer.On("WaitForOperation", mock.Anything, "ooTestHash").Return(nil)

		uc := usecase.NewCreateProposal(f.cfg, f.state, f.indexer, f.submitter, f.sink)
		result, err := uc.Run(ctx, usecase.CreateProposalParams{Input: codec.TextInput{IPFSPath: "Qm"}})
		require.NoError(t, err)

		assert.Equal(t, "ooTestHash", result.Operation.Hash)
		assert.Equal(t, models.KindText, result.Kind.Name())
		assert.Equal(t, "approve a text proposal.", result.Description.Summary)
		assert.Contains(t, f.sink.stages(), "submitting")
		assert.Contains(t, f.sink.stages(), "confirming")
		assert.False(t, f.sink.event("submitting").Spinner, "password prompts must stay visible")

		f.submitter.AssertExpectations(t)
		// initial load plus the refresh
		f.indexer.AssertNumberOfCalls(t, "GetProposals", 2)
	})

	t.Run("only representatives can create proposals", func(t *testing.T) {
		f := newFixture(carol)
		f.expectLoad(nil, nil)

		uc := usecase.NewCreateProposal(f.cfg, f.state, f.indexer, f.submitter, f.sink)
		_, err := uc.Run(ctx, usecase.CreateProposalParams{Input: codec.MinimumVotesInput{Value: "3"}})
		assert.ErrorIs(t, err, usecase.ErrNotRepresentative)
		f.submitter.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})

	t.Run("issuer check runs before any upload", func(t *testing.T) {
		f := newFixture(carol)
		f.expectLoad(nil, nil)

		uc := usecase.NewCreateProposal(f.cfg, f.state, f.indexer, f.submitter, f.sink)
		assert.ErrorIs(t, uc.CheckIssuer(ctx), usecase.ErrNotRepresentative)

		f = newFixture(alice)
		f.expectLoad(nil, map[int64]bool{})
		uc = usecase.NewCreateProposal(f.cfg, f.state, f.indexer, f.submitter, f.sink)
		require.NoError(t, uc.CheckIssuer(ctx))
		f.submitter.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})

	t.Run("missing account", func(t *testing.T) {
		f := newFixture("")
		f.expectLoad(nil, nil)

		uc := usecase.NewCreateProposal(f.cfg, f.state, f.indexer, f.submitter, f.sink)
		_, err := uc.Run(ctx, usecase.CreateProposalParams{Input: codec.MinimumVotesInput{Value: "3"}})
		assert.ErrorIs(t, err, usecase.ErrAccountNotConfigured)
	})

	t.Run("validation errors stop the submission", func(t *testing.T) {
		f := newFixture(alice)
		f.expectLoad(nil, map[int64]bool{})

		uc := usecase.NewCreateProposal(f.cfg, f.state, f.indexer, f.submitter, f.sink)
		_, err := uc.Run(ctx, usecase.CreateProposalParams{Input: codec.TransferMutezInput{
			Transfers: []codec.TransferInput{{Amount: "11", Destination: bob}},
		}})
		assert.ErrorIs(t, err, models.ErrInsufficientBalance)
		f.indexer.AssertNotCalled(t, "GetEntrypointType", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("dry run skips the confirmation", func(t *testing.T) {
		f := newFixture(alice)
		f.cfg.DryRun = true
		f.expectLoad(nil, map[int64]bool{})
		f.indexer.On("GetEntrypointType", mock.Anything, contract, usecase.EntrypointAddProposal).
			Return(mustParse(t, addProposalType), nil)
		f.submitter.On("Submit", mock.Anything, mock.Anything).
			Return(&usecase.OperationResult{Entrypoint: usecase.EntrypointAddProposal, DryRun: true}, nil)

		uc := usecase.NewCreateProposal(f.cfg, f.state, f.indexer, f.submitter, f.sink)
		result, err := uc.Run(ctx, usecase.CreateProposalParams{Input: codec.ExpirationTimeInput{Value: "14"}})
		require.NoError(t, err)

		assert.True(t, result.Operation.DryRun)
		f.indexer.AssertNotCalled(t, "WaitForOperation", mock.Anything, mock.Anything)
		f.indexer.AssertNumberOfCalls(t, "GetProposals", 1)
	})
}

func TestVoteProposal(t *testing.T) {
	ctx := context.Background()
	voteType := "pair (nat %proposal_id) (bool %approval)"

	t.Run("votes on an active proposal", func(t *testing.T) {
		f := newFixture(bob)
		f.cfg.NonInteractive = true
		f.expectLoad(governanceProposals(), map[int64]bool{})
		f.indexer.On("GetEntrypointType", mock.Anything, contract, usecase.EntrypointVoteProposal).
			Return(mustParse(t, voteType), nil)
		f.submitter.On("Submit", mock.Anything, callWith(usecase.EntrypointVoteProposal, "Pair 4 False")).
			Return(&usecase.OperationResult{Hash: "ooVote"}, nil)
		f.indexer.On("WaitForOperation", mock.Anything, "ooVote").Return(nil)

		uc := usecase.NewVoteProposal(f.cfg, f.state, f.indexer, f.submitter, f.sink)
		result, err := uc.Run(ctx, usecase.VoteProposalParams{ProposalID: 4, Approval: false})
		require.NoError(t, err)

		assert.Equal(t, "teia", result.Community)
		assert.False(t, result.Approval)
		assert.True(t, f.sink.event("submitting").Spinner)
		f.submitter.AssertExpectations(t)
	})

	t.Run("expired proposals cannot be voted", func(t *testing.T) {
		f := newFixture(bob)
		f.expectLoad(governanceProposals(), map[int64]bool{})

		uc := usecase.NewVoteProposal(f.cfg, f.state, f.indexer, f.submitter, f.sink)
		_, err := uc.Run(ctx, usecase.VoteProposalParams{ProposalID: 2, Approval: true})
		assert.ErrorIs(t, err, usecase.ErrProposalNotActive)

		_, err = uc.Run(ctx, usecase.VoteProposalParams{ProposalID: 1, Approval: true})
		assert.ErrorIs(t, err, usecase.ErrProposalNotActive)

		_, err = uc.Run(ctx, usecase.VoteProposalParams{ProposalID: 9, Approval: true})
		assert.ErrorIs(t, err, usecase.ErrProposalNotFound)
		f.submitter.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})

	t.Run("refresh failure is a notice", func(t *testing.T) {
		f := newFixture(bob)
		f.indexer.On("GetStorage", mock.Anything, contract).Return(testStorage(), nil)
		f.indexer.On("GetBalance", mock.Anything, contract).Return(big.NewInt(1), nil)
		f.indexer.On("GetProposals", mock.Anything, int64(100)).
			Return([]*models.Proposal{proposal(5, time.Hour, 0, false)}, nil).Once()
		f.indexer.On("GetProposals", mock.Anything, int64(100)).Return(nil, errors.New("boom")).Once()
		f.indexer.On("GetCommunityVotes", mock.Anything, int64(101), "teia").Return(map[int64]bool{}, nil)
		f.aliases.On("GetAliases", mock.Anything, mock.Anything).Return(map[string]string{}, nil)
		f.indexer.On("GetEntrypointType", mock.Anything, contract, usecase.EntrypointVoteProposal).
			Return(mustParse(t, voteType), nil)
		f.submitter.On("Submit", mock.Anything, mock.Anything).Return(&usecase.OperationResult{Hash: "ooVote"}, nil)
		f.indexer.On("WaitForOperation", mock.Anything, "ooVote").Return(nil)

		uc := usecase.NewVoteProposal(f.cfg, f.state, f.indexer, f.submitter, f.sink)
		_, err := uc.Run(ctx, usecase.VoteProposalParams{ProposalID: 5, Approval: true})
		require.NoError(t, err)
		require.Len(t, f.sink.errors, 1)
		assert.Contains(t, f.sink.errors[0], "boom")
	})

	t.Run("unconfirmed operation is an error", func(t *testing.T) {
		f := newFixture(bob)
		f.expectLoad(governanceProposals(), map[int64]bool{})
		f.indexer.On("GetEntrypointType", mock.Anything, contract, usecase.EntrypointVoteProposal).
			Return(mustParse(t, voteType), nil)
		f.submitter.On("Submit", mock.Anything, mock.Anything).Return(&usecase.OperationResult{Hash: "ooFailed"}, nil)
		f.indexer.On("WaitForOperation", mock.Anything, "ooFailed").Return(errors.New("backtracked"))

		uc := usecase.NewVoteProposal(f.cfg, f.state, f.indexer, f.submitter, f.sink)
		_, err := uc.Run(ctx, usecase.VoteProposalParams{ProposalID: 3, Approval: true})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ooFailed")
	})
}

func TestExecuteProposal(t *testing.T) {
	ctx := context.Background()

	t.Run("executes an approved proposal and reloads the state", func(t *testing.T) {
		f := newFixture(alice)
		f.expectLoad(governanceProposals(), map[int64]bool{3: true})
		f.indexer.On("GetEntrypointType", mock.Anything, contract, usecase.EntrypointExecuteProposal).
			Return(mustParse(t, "nat"), nil)
		f.submitter.On("Submit", mock.Anything, callWith(usecase.EntrypointExecuteProposal, "3")).
			Return(&usecase.OperationResult{Hash: "ooExec"}, nil)
		f.indexer.On("WaitForOperation", mock.Anything, "ooExec").Return(nil)

		uc := usecase.NewExecuteProposal(f.cfg, f.state, f.indexer, f.submitter, f.sink)
		result, err := uc.Run(ctx, usecase.ExecuteProposalParams{ProposalID: 3})
		require.NoError(t, err)

		assert.Equal(t, int64(3), result.ProposalID)
		assert.Equal(t, "ooExec", result.Operation.Hash)
		f.indexer.AssertNumberOfCalls(t, "GetStorage", 2)
	})

	t.Run("not enough votes", func(t *testing.T) {
		f := newFixture(alice)
		f.expectLoad(governanceProposals(), map[int64]bool{})

		uc := usecase.NewExecuteProposal(f.cfg, f.state, f.indexer, f.submitter, f.sink)
		_, err := uc.Run(ctx, usecase.ExecuteProposalParams{ProposalID: 4})
		assert.ErrorIs(t, err, usecase.ErrNotEnoughVotes)
		f.submitter.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})

	t.Run("executed proposals cannot be executed again", func(t *testing.T) {
		f := newFixture(alice)
		f.expectLoad(governanceProposals(), map[int64]bool{})

		uc := usecase.NewExecuteProposal(f.cfg, f.state, f.indexer, f.submitter, f.sink)
		_, err := uc.Run(ctx, usecase.ExecuteProposalParams{ProposalID: 1})
		assert.ErrorIs(t, err, usecase.ErrProposalNotActive)
	})
}
