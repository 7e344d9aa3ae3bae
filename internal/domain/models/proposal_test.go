package models

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProposal_Status(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		executed bool
		now      time.Time
		days     int64
		expected ProposalStatus
	}{
		{
			name:     "fresh proposal is active",
			now:      created.Add(time.Hour),
			days:     7,
			expected: ProposalStatusActive,
		},
		{
			name:     "exactly at deadline is still active",
			now:      created.AddDate(0, 0, 7),
			days:     7,
			expected: ProposalStatusActive,
		},
		{
			name:     "past deadline is expired",
			now:      created.AddDate(0, 0, 7).Add(time.Second),
			days:     7,
			expected: ProposalStatusExpired,
		},
		{
			name:     "executed wins over expiration",
			executed: true,
			now:      created.AddDate(1, 0, 0),
			days:     7,
			expected: ProposalStatusExecuted,
		},
		{
			name:     "executed and fresh",
			executed: true,
			now:      created,
			days:     7,
			expected: ProposalStatusExecuted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Proposal{ID: 1, Timestamp: created, Executed: tt.executed, Kind: &TextKind{}}
			assert.Equal(t, tt.expected, p.Status(tt.now, tt.days))
		})
	}
}

func TestProposal_CanExecute(t *testing.T) {
	p := &Proposal{PositiveVotes: 3}
	assert.True(t, p.CanExecute(2))
	assert.True(t, p.CanExecute(3))
	assert.False(t, p.CanExecute(4))
}

func TestContractStorage_Lookups(t *testing.T) {
	storage := &ContractStorage{
		Representatives: map[string]string{
			"tz1aSkwEot3L2kmUvcoxzjMomb9mvBNuzFK6": "teia",
			"tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb": "hen",
		},
		Communities: []string{"teia", "hen"},
	}

	community, ok := storage.CommunityOf("tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb")
	assert.True(t, ok)
	assert.Equal(t, "hen", community)

	_, ok = storage.CommunityOf("tz1KqTpEZ7Yob7QbPE4Hy4Wo8fHG8LhKxZSx")
	assert.False(t, ok)

	assert.True(t, storage.HasCommunity("teia"))
	assert.False(t, storage.HasCommunity("Teia"))

	reps := storage.SortedRepresentatives()
	assert.Equal(t, []Representative{
		{Address: "tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb", Community: "hen"},
		{Address: "tz1aSkwEot3L2kmUvcoxzjMomb9mvBNuzFK6", Community: "teia"},
	}, reps)

	var empty *ContractStorage
	assert.False(t, empty.HasCommunity("teia"))
	assert.Nil(t, empty.SortedRepresentatives())
}

func TestValidationError_Is(t *testing.T) {
	err := NewValidationError(CodeInvalidAddress, "invalid address: %s", "foo")
	wrapped := fmt.Errorf("failed to encode proposal: %w", err)

	assert.True(t, errors.Is(wrapped, ErrInvalidAddress))
	assert.False(t, errors.Is(wrapped, ErrOutOfRange))
	assert.Equal(t, "invalid address: foo", err.Error())
}

func TestTokenRegistry_Lookup(t *testing.T) {
	registry := NewTokenRegistry(append(DefaultTokens(), Token{Name: "Teia DAO", FA2: "KT1QrtA753MSv8VGxkDrKKyJniG5JtuHHbtV", Decimals: 6})...)

	token, ok := registry.Lookup("KT1QrtA753MSv8VGxkDrKKyJniG5JtuHHbtV")
	assert.True(t, ok)
	assert.Equal(t, "Teia DAO", token.Name)

	objkt, ok := registry.Lookup("KT1RJ6PbjHpwc3M5rw5s2Nbmefwbuwbdxton")
	assert.True(t, ok)
	assert.True(t, objkt.MultiAsset)

	_, ok = registry.Lookup("KT1unknown")
	assert.False(t, ok)
}
