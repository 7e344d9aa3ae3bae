package models

import "sort"

// ContractStorage is a snapshot of the representatives contract storage
type ContractStorage struct {
	// Representatives maps a representative address to its community
	Representatives map[string]string `json:"representatives"`
	Communities     []string          `json:"communities"`
	MinimumVotes    int64             `json:"minimumVotes"`
	ExpirationTime  int64             `json:"expirationTime"`
	ProposalsBigmap int64             `json:"proposalsBigmap"`
	VotesBigmap     int64             `json:"votesBigmap"`
}

// CommunityOf returns the community represented by an address
func (s *ContractStorage) CommunityOf(address string) (string, bool) {
	if s == nil {
		return "", false
	}
	community, ok := s.Representatives[address]
	return community, ok
}

// HasCommunity reports whether a community already has a representative
func (s *ContractStorage) HasCommunity(community string) bool {
	if s == nil {
		return false
	}
	for _, c := range s.Communities {
		if c == community {
			return true
		}
	}
	for _, c := range s.Representatives {
		if c == community {
			return true
		}
	}
	return false
}

// SortedRepresentatives returns the representatives ordered by community name
func (s *ContractStorage) SortedRepresentatives() []Representative {
	if s == nil {
		return nil
	}
	reps := make([]Representative, 0, len(s.Representatives))
	for address, community := range s.Representatives {
		reps = append(reps, Representative{Address: address, Community: community})
	}
	sort.Slice(reps, func(i, j int) bool {
		if reps[i].Community == reps[j].Community {
			return reps[i].Address < reps[j].Address
		}
		return reps[i].Community < reps[j].Community
	})
	return reps
}

// RepresentativeAddresses returns the representative addresses in community order
func (s *ContractStorage) RepresentativeAddresses() []string {
	reps := s.SortedRepresentatives()
	addresses := make([]string, len(reps))
	for i, r := range reps {
		addresses[i] = r.Address
	}
	return addresses
}
