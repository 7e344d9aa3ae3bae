package usecase

import "errors"

var (
	// ErrContractNotConfigured is returned when no representatives contract address is known
	ErrContractNotConfigured = errors.New("representatives contract address is not configured (set it with `repms config set contract <address>`)")

	// ErrAccountNotConfigured is returned when an operation needs the user address
	ErrAccountNotConfigured = errors.New("account is not configured (set it with `repms config set account <address>` or --account)")

	// ErrNotRepresentative is returned when a non representative tries to act on proposals
	ErrNotRepresentative = errors.New("only community representatives can create, vote or execute proposals")

	// ErrProposalNotFound is returned when a proposal id is not in the contract
	ErrProposalNotFound = errors.New("proposal not found")

	// ErrProposalNotActive is returned when voting on or executing an expired or executed proposal
	ErrProposalNotActive = errors.New("proposal is not active")

	// ErrNotEnoughVotes is returned when executing a proposal below the minimum positive votes
	ErrNotEnoughVotes = errors.New("proposal does not have enough positive votes")
)
