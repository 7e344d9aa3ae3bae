package models

import "time"

// ProposalStatus is derived from a proposal and the current time, never stored
type ProposalStatus string

const (
	ProposalStatusActive   ProposalStatus = "active"
	ProposalStatusExpired  ProposalStatus = "expired"
	ProposalStatusExecuted ProposalStatus = "executed"
)

// Representative is a community and the address speaking for it
type Representative struct {
	Address   string `json:"address"`
	Community string `json:"community"`
}

// Proposal is a proposal record as stored in the contract proposals bigmap
type Proposal struct {
	ID            int64          `json:"id"`
	Issuer        Representative `json:"issuer"`
	Timestamp     time.Time      `json:"timestamp"`
	Kind          ProposalKind   `json:"kind"`
	PositiveVotes int64          `json:"positiveVotes"`
	Executed      bool           `json:"executed"`
}

// ExpiresAt returns the instant after which a non executed proposal is expired
func (p *Proposal) ExpiresAt(expirationDays int64) time.Time {
	return p.Timestamp.AddDate(0, 0, int(expirationDays))
}

// Status classifies the proposal. Executed wins over expiration.
func (p *Proposal) Status(now time.Time, expirationDays int64) ProposalStatus {
	if p.Executed {
		return ProposalStatusExecuted
	}
	if now.After(p.ExpiresAt(expirationDays)) {
		return ProposalStatusExpired
	}
	return ProposalStatusActive
}

// CanExecute reports whether the proposal gathered enough positive votes
func (p *Proposal) CanExecute(minimumVotes int64) bool {
	return p.PositiveVotes >= minimumVotes
}
