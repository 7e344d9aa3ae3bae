package models

import (
	"encoding/json"
	"math/big"

	"blockwatch.cc/tzgo/micheline"
)

// KindName is the on-chain tag of a proposal kind
type KindName string

const (
	KindText                 KindName = "text"
	KindTransferMutez        KindName = "transfer_mutez"
	KindTransferToken        KindName = "transfer_token"
	KindLambdaFunction       KindName = "lambda_function"
	KindAddRepresentative    KindName = "add_representative"
	KindRemoveRepresentative KindName = "remove_representative"
	KindMinimumVotes         KindName = "minimum_votes"
	KindExpirationTime       KindName = "expiration_time"
)

// KnownKinds returns the proposal kinds accepted by the contract, in display order
func KnownKinds() []KindName {
	return []KindName{
		KindText,
		KindTransferMutez,
		KindTransferToken,
		KindLambdaFunction,
		KindAddRepresentative,
		KindRemoveRepresentative,
		KindMinimumVotes,
		KindExpirationTime,
	}
}

// ProposalKind is the payload of a proposal. The set of implementations is closed:
// TextKind, TransferMutezKind, TransferTokenKind, LambdaFunctionKind,
// AddRepresentativeKind, RemoveRepresentativeKind, MinimumVotesKind,
// ExpirationTimeKind and UnknownKind for undecodable on-chain data.
type ProposalKind interface {
	Name() KindName
	Accept(v KindVisitor) error
	isProposalKind()
}

// KindVisitor handles every proposal kind. Adding a kind adds a method here,
// so every visitor fails to compile until it handles the new kind.
type KindVisitor interface {
	VisitText(k *TextKind) error
	VisitTransferMutez(k *TransferMutezKind) error
	VisitTransferToken(k *TransferTokenKind) error
	VisitLambdaFunction(k *LambdaFunctionKind) error
	VisitAddRepresentative(k *AddRepresentativeKind) error
	VisitRemoveRepresentative(k *RemoveRepresentativeKind) error
	VisitMinimumVotes(k *MinimumVotesKind) error
	VisitExpirationTime(k *ExpirationTimeKind) error
	VisitUnknown(k *UnknownKind) error
}

// Transfer is a single destination of a transfer proposal. Amount is in base units.
type Transfer struct {
	Amount      *big.Int `json:"amount"`
	Destination string   `json:"destination"`
}

// TextKind carries the hex encoding of "ipfs://<path>"
type TextKind struct {
	Text string `json:"text"`
}

// TransferMutezKind moves tez held by the contract. Amounts are in mutez.
type TransferMutezKind struct {
	Transfers []Transfer `json:"transfers"`
}

// TransferTokenKind moves FA2 tokens held by the contract
type TransferTokenKind struct {
	FA2          string     `json:"fa2"`
	TokenID      *big.Int   `json:"tokenId"`
	Distribution []Transfer `json:"distribution"`
}

// LambdaFunctionKind carries Michelson code run by the contract
type LambdaFunctionKind struct {
	Code micheline.Prim `json:"code"`
}

// AddRepresentativeKind adds a new community and its representative
type AddRepresentativeKind struct {
	Representative Representative `json:"representative"`
}

// RemoveRepresentativeKind removes a representative and its community
type RemoveRepresentativeKind struct {
	Representative Representative `json:"representative"`
}

// MinimumVotesKind sets the positive votes required to execute a proposal
type MinimumVotesKind struct {
	Votes int64 `json:"votes"`
}

// ExpirationTimeKind sets the proposal lifetime in days
type ExpirationTimeKind struct {
	Days int64 `json:"days"`
}

// UnknownKind is produced when on-chain data does not match any known kind
type UnknownKind struct {
	Tag string          `json:"tag"`
	Raw json.RawMessage `json:"raw,omitempty"`
}

func (*TextKind) Name() KindName                 { return KindText }
func (*TransferMutezKind) Name() KindName        { return KindTransferMutez }
func (*TransferTokenKind) Name() KindName        { return KindTransferToken }
func (*LambdaFunctionKind) Name() KindName       { return KindLambdaFunction }
func (*AddRepresentativeKind) Name() KindName    { return KindAddRepresentative }
func (*RemoveRepresentativeKind) Name() KindName { return KindRemoveRepresentative }
func (*MinimumVotesKind) Name() KindName         { return KindMinimumVotes }
func (*ExpirationTimeKind) Name() KindName       { return KindExpirationTime }
func (k *UnknownKind) Name() KindName            { return KindName(k.Tag) }

func (k *TextKind) Accept(v KindVisitor) error                 { return v.VisitText(k) }
func (k *TransferMutezKind) Accept(v KindVisitor) error        { return v.VisitTransferMutez(k) }
func (k *TransferTokenKind) Accept(v KindVisitor) error        { return v.VisitTransferToken(k) }
func (k *LambdaFunctionKind) Accept(v KindVisitor) error       { return v.VisitLambdaFunction(k) }
func (k *AddRepresentativeKind) Accept(v KindVisitor) error    { return v.VisitAddRepresentative(k) }
func (k *RemoveRepresentativeKind) Accept(v KindVisitor) error { return v.VisitRemoveRepresentative(k) }
func (k *MinimumVotesKind) Accept(v KindVisitor) error         { return v.VisitMinimumVotes(k) }
func (k *ExpirationTimeKind) Accept(v KindVisitor) error       { return v.VisitExpirationTime(k) }
func (k *UnknownKind) Accept(v KindVisitor) error              { return v.VisitUnknown(k) }

func (*TextKind) isProposalKind()                 {}
func (*TransferMutezKind) isProposalKind()        {}
func (*TransferTokenKind) isProposalKind()        {}
func (*LambdaFunctionKind) isProposalKind()       {}
func (*AddRepresentativeKind) isProposalKind()    {}
func (*RemoveRepresentativeKind) isProposalKind() {}
func (*MinimumVotesKind) isProposalKind()         {}
func (*ExpirationTimeKind) isProposalKind()       {}
func (*UnknownKind) isProposalKind()              {}

// TotalAmount sums the amounts of a list of transfers
func TotalAmount(transfers []Transfer) *big.Int {
	total := new(big.Int)
	for _, t := range transfers {
		if t.Amount != nil {
			total.Add(total, t.Amount)
		}
	}
	return total
}
