package usecase

import (
	"math/big"
	"sync/atomic"
	"time"

	"github.com/representatives-dao/repms/internal/domain/models"
)

// Snapshot is the contract state as last loaded. Snapshots are never mutated
// once published; updates build a new snapshot and replace the current one.
type Snapshot struct {
	UserAddress    string
	Community      string // community represented by the user, empty if none
	Storage        *models.ContractStorage
	Balance        *big.Int
	Aliases        map[string]string
	Proposals      []*models.Proposal
	CommunityVotes map[int64]bool
	LoadedAt       time.Time
}

// IsRepresentative reports whether the user represents a community
func (s *Snapshot) IsRepresentative() bool {
	return s != nil && s.Community != ""
}

// Proposal returns the proposal with the given id
func (s *Snapshot) Proposal(id int64) (*models.Proposal, bool) {
	if s == nil {
		return nil, false
	}
	for _, p := range s.Proposals {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// Vote returns the vote of the user community on a proposal
func (s *Snapshot) Vote(id int64) (approval bool, voted bool) {
	if s == nil {
		return false, false
	}
	approval, voted = s.CommunityVotes[id]
	return approval, voted
}

// clone returns a shallow copy to build the next snapshot from
func (s *Snapshot) clone() *Snapshot {
	next := *s
	return &next
}

// Session holds the current snapshot of the application state
type Session struct {
	current atomic.Pointer[Snapshot]
}

// NewSession creates an empty session
func NewSession() *Session {
	return &Session{}
}

// Snapshot returns the current snapshot, nil before the first load
func (s *Session) Snapshot() *Snapshot {
	return s.current.Load()
}

// Replace publishes a new snapshot
func (s *Session) Replace(snapshot *Snapshot) {
	s.current.Store(snapshot)
}
