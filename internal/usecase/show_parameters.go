package usecase

import (
	"context"
	"math/big"

	"github.com/representatives-dao/repms/internal/domain/config"
)

// RepresentativeView is a representative with its alias resolved
type RepresentativeView struct {
	Address   string `json:"address"`
	Community string `json:"community"`
	Alias     string `json:"alias,omitempty"`
	IsUser    bool   `json:"isUser,omitempty"`
}

// ParametersResult contains the contract governance parameters
type ParametersResult struct {
	Contract        string               `json:"contract"`
	Network         *config.Network      `json:"network"`
	Representatives []RepresentativeView `json:"representatives"`
	MinimumVotes    int64                `json:"minimumVotes"`
	ExpirationTime  int64                `json:"expirationTime"`
	Balance         *big.Int             `json:"balance"`
	UserAddress     string               `json:"userAddress,omitempty"`
	Community       string               `json:"community,omitempty"`
}

// ShowParameters is the use case for showing the contract parameters
type ShowParameters struct {
	config *config.RuntimeConfig
	state  *LoadState
}

// NewShowParameters creates a new ShowParameters use case
func NewShowParameters(cfg *config.RuntimeConfig, state *LoadState) *ShowParameters {
	return &ShowParameters{
		config: cfg,
		state:  state,
	}
}

// Run executes the show parameters use case
func (uc *ShowParameters) Run(ctx context.Context) (*ParametersResult, error) {
	snapshot, err := uc.state.Ensure(ctx)
	if err != nil {
		return nil, err
	}

	result := &ParametersResult{
		Contract:       uc.config.Contract,
		Network:        uc.config.Network,
		MinimumVotes:   snapshot.Storage.MinimumVotes,
		ExpirationTime: snapshot.Storage.ExpirationTime,
		Balance:        snapshot.Balance,
		UserAddress:    snapshot.UserAddress,
		Community:      snapshot.Community,
	}
	for _, rep := range snapshot.Storage.SortedRepresentatives() {
		result.Representatives = append(result.Representatives, RepresentativeView{
			Address:   rep.Address,
			Community: rep.Community,
			Alias:     snapshot.Aliases[rep.Address],
			IsUser:    rep.Address == snapshot.UserAddress,
		})
	}
	return result, nil
}
