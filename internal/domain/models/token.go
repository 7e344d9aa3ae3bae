package models

// Token describes an FA2 token the tool knows how to display
type Token struct {
	Name       string `json:"name" toml:"name"`
	FA2        string `json:"fa2" toml:"fa2"`
	Decimals   int32  `json:"decimals" toml:"decimals"`
	MultiAsset bool   `json:"multiasset" toml:"multiasset"`
	// Website is prefixed to the token id to link a token, empty when there is none
	Website string `json:"website,omitempty" toml:"website"`
}

// TokenRegistry is a lookup table keyed by FA2 contract address
type TokenRegistry map[string]Token

// DefaultTokens returns the tokens known out of the box
func DefaultTokens() []Token {
	return []Token{
		{
			Name:       "OBJKT",
			FA2:        "KT1RJ6PbjHpwc3M5rw5s2Nbmefwbuwbdxton",
			Decimals:   0,
			MultiAsset: true,
			Website:    "https://teia.art/objkt/",
		},
		{
			Name:     "TEIA",
			FA2:      "KT1QrtA753MSv8VGxkDrKKyJniG5JtuHHbtV",
			Decimals: 6,
		},
		{
			Name:     "USDt",
			FA2:      "KT1XnTn74bUtxHfDtBmm2bGZAQfhPbvKWR8o",
			Decimals: 6,
		},
	}
}

// NewTokenRegistry builds a registry; later tokens override earlier ones with the same address
func NewTokenRegistry(tokens ...Token) TokenRegistry {
	registry := make(TokenRegistry, len(tokens))
	for _, t := range tokens {
		registry[t.FA2] = t
	}
	return registry
}

// Lookup returns the token registered for an FA2 address
func (r TokenRegistry) Lookup(fa2 string) (Token, bool) {
	t, ok := r[fa2]
	return t, ok
}
