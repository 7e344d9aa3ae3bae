package usecase

import (
	"context"
	"fmt"

	"github.com/representatives-dao/repms/internal/codec"
	"github.com/representatives-dao/repms/internal/domain/config"
)

// Entrypoints of the representatives contract
const (
	EntrypointAddProposal     = "add_proposal"
	EntrypointVoteProposal    = "vote_proposal"
	EntrypointExecuteProposal = "execute_proposal"
)

// contractCaller encodes a value against an entrypoint type, submits the call
// and waits until the indexer sees it applied.
type contractCaller struct {
	config    *config.RuntimeConfig
	indexer   Indexer
	submitter OperationSubmitter
	sink      ProgressSink
}

func (c *contractCaller) call(ctx context.Context, entrypoint string, value any) (*OperationResult, error) {
	typ, err := c.indexer.GetEntrypointType(ctx, c.config.Contract, entrypoint)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s parameter type: %w", entrypoint, err)
	}
	param, err := codec.BuildParameter(typ, value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s parameter: %w", entrypoint, err)
	}

	// octez-client may ask for a key password, which a spinner would hide
	c.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "submitting",
		Message: fmt.Sprintf("Sending the %s operation", entrypoint),
		Spinner: c.config.NonInteractive || c.config.DryRun,
	})
	op, err := c.submitter.Submit(ctx, ContractCall{
		Contract:   c.config.Contract,
		Entrypoint: entrypoint,
		Parameter:  param,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to submit %s: %w", entrypoint, err)
	}
	if op.DryRun {
		return op, nil
	}

	c.sink.OnProgress(ctx, ProgressEvent{
		Stage:    "confirming",
		Message:  "Waiting for the operation to be confirmed",
		Spinner:  true,
		Metadata: op.Hash,
	})
	if err := c.indexer.WaitForOperation(ctx, op.Hash); err != nil {
		return op, fmt.Errorf("operation %s was not confirmed: %w", op.Hash, err)
	}
	return op, nil
}

// requireRepresentative checks the user can act on proposals
func requireRepresentative(cfg *config.RuntimeConfig, snapshot *Snapshot) error {
	if cfg.Account == "" {
		return ErrAccountNotConfigured
	}
	if !snapshot.IsRepresentative() {
		return fmt.Errorf("%w: %s is not a representative", ErrNotRepresentative, cfg.Account)
	}
	return nil
}
