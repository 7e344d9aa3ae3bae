package codec

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/representatives-dao/repms/internal/domain/models"
)

// Context is the contract state a proposal input is validated against
type Context struct {
	// Representatives maps representative addresses to their community
	Representatives map[string]string
	Communities     []string
	// Balance is the contract balance in mutez
	Balance *big.Int
	Tokens  models.TokenRegistry
}

// NewContext builds a validation context from a storage snapshot
func NewContext(storage *models.ContractStorage, balance *big.Int, tokens models.TokenRegistry) *Context {
	vctx := &Context{Balance: balance, Tokens: tokens}
	if storage != nil {
		vctx.Representatives = storage.Representatives
		vctx.Communities = storage.Communities
	}
	return vctx
}

func (c *Context) hasCommunity(community string) bool {
	for _, existing := range c.Communities {
		if existing == community {
			return true
		}
	}
	return false
}

// Input is the raw, user typed form of a proposal. Fields hold text exactly as entered.
type Input interface {
	Kind() models.KindName
}

// TextInput references a document uploaded to IPFS
type TextInput struct {
	IPFSPath string `json:"ipfsPath" yaml:"ipfs_path"`
}

// TransferInput is one destination of a transfer, with the amount in display units
type TransferInput struct {
	Amount      string `json:"amount" yaml:"amount"`
	Destination string `json:"destination" yaml:"destination"`
}

// TransferMutezInput sends tez from the contract
type TransferMutezInput struct {
	Transfers []TransferInput `json:"transfers" yaml:"transfers"`
}

// TransferTokenInput sends FA2 tokens from the contract
type TransferTokenInput struct {
	TokenContract string          `json:"tokenContract" yaml:"token_contract"`
	TokenID       string          `json:"tokenId" yaml:"token_id"`
	Transfers     []TransferInput `json:"transfers" yaml:"transfers"`
}

// LambdaInput carries Michelson code in text notation or Micheline JSON
type LambdaInput struct {
	Source string `json:"source" yaml:"source"`
}

// AddRepresentativeInput adds a community represented by an address
type AddRepresentativeInput struct {
	Address   string `json:"address" yaml:"address"`
	Community string `json:"community" yaml:"community"`
}

// RemoveRepresentativeInput removes a representative and its community
type RemoveRepresentativeInput struct {
	Address   string `json:"address" yaml:"address"`
	Community string `json:"community" yaml:"community"`
}

// MinimumVotesInput changes the number of positive votes required
type MinimumVotesInput struct {
	Value string `json:"value" yaml:"value"`
}

// ExpirationTimeInput changes the proposal lifetime in days
type ExpirationTimeInput struct {
	Value string `json:"value" yaml:"value"`
}

func (TextInput) Kind() models.KindName                 { return models.KindText }
func (TransferMutezInput) Kind() models.KindName        { return models.KindTransferMutez }
func (TransferTokenInput) Kind() models.KindName        { return models.KindTransferToken }
func (LambdaInput) Kind() models.KindName               { return models.KindLambdaFunction }
func (AddRepresentativeInput) Kind() models.KindName    { return models.KindAddRepresentative }
func (RemoveRepresentativeInput) Kind() models.KindName { return models.KindRemoveRepresentative }
func (MinimumVotesInput) Kind() models.KindName         { return models.KindMinimumVotes }
func (ExpirationTimeInput) Kind() models.KindName       { return models.KindExpirationTime }

// Encode validates a raw input against the contract state and converts it to
// the payload submitted on chain. It performs no I/O.
func Encode(in Input, vctx *Context) (models.ProposalKind, error) {
	if vctx == nil {
		vctx = &Context{}
	}

	switch in := in.(type) {
	case TextInput:
		return encodeText(in)
	case TransferMutezInput:
		return encodeTransferMutez(in, vctx)
	case TransferTokenInput:
		return encodeTransferToken(in, vctx)
	case LambdaInput:
		code, err := ParseMicheline(in.Source)
		if err != nil {
			return nil, err
		}
		return &models.LambdaFunctionKind{Code: code}, nil
	case AddRepresentativeInput:
		return encodeAddRepresentative(in, vctx)
	case RemoveRepresentativeInput:
		return encodeRemoveRepresentative(in, vctx)
	case MinimumVotesInput:
		votes, err := positiveInteger(in.Value, "minimum votes")
		if err != nil {
			return nil, err
		}
		return &models.MinimumVotesKind{Votes: votes}, nil
	case ExpirationTimeInput:
		days, err := positiveInteger(in.Value, "expiration time")
		if err != nil {
			return nil, err
		}
		return &models.ExpirationTimeKind{Days: days}, nil
	case nil:
		return nil, fmt.Errorf("no proposal input")
	}
	return nil, fmt.Errorf("unsupported proposal input %T", in)
}

const ipfsScheme = "ipfs://"

func encodeText(in TextInput) (models.ProposalKind, error) {
	path := strings.TrimPrefix(strings.TrimSpace(in.IPFSPath), ipfsScheme)
	if path == "" {
		return nil, models.ErrMissingUpload
	}
	return &models.TextKind{Text: StringToHex(ipfsScheme + path)}, nil
}

func encodeTransferMutez(in TransferMutezInput, vctx *Context) (models.ProposalKind, error) {
	transfers, err := encodeTransfers(in.Transfers, MutezDecimals)
	if err != nil {
		return nil, err
	}

	total := models.TotalAmount(transfers)
	balance := vctx.Balance
	if balance == nil {
		balance = new(big.Int)
	}
	if total.Cmp(balance) > 0 {
		return nil, models.NewValidationError(models.CodeInsufficientBalance,
			"the contract balance (%s) is not enough to transfer %s", FormatTez(balance), FormatTez(total))
	}
	return &models.TransferMutezKind{Transfers: transfers}, nil
}

func encodeTransferToken(in TransferTokenInput, vctx *Context) (models.ProposalKind, error) {
	fa2 := strings.TrimSpace(in.TokenContract)
	if err := ValidateAddress(fa2); err != nil {
		return nil, err
	}

	tokenID, err := RoundInteger(in.TokenID)
	if err != nil {
		return nil, err
	}
	if tokenID.Sign() < 0 {
		return nil, models.NewValidationError(models.CodeOutOfRange, "token id must not be negative: %s", in.TokenID)
	}

	var decimals int32
	if token, ok := vctx.Tokens.Lookup(fa2); ok {
		decimals = token.Decimals
	}
	distribution, err := encodeTransfers(in.Transfers, decimals)
	if err != nil {
		return nil, err
	}

	return &models.TransferTokenKind{FA2: fa2, TokenID: tokenID, Distribution: distribution}, nil
}

func encodeTransfers(inputs []TransferInput, decimals int32) ([]models.Transfer, error) {
	if len(inputs) == 0 {
		return nil, models.NewValidationError(models.CodeOutOfRange, "at least one transfer is required")
	}

	transfers := make([]models.Transfer, 0, len(inputs))
	for _, in := range inputs {
		destination := strings.TrimSpace(in.Destination)
		if err := ValidateAddress(destination); err != nil {
			return nil, err
		}
		amount, err := ToBaseUnits(in.Amount, decimals)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, models.Transfer{Amount: amount, Destination: destination})
	}
	return transfers, nil
}

func encodeAddRepresentative(in AddRepresentativeInput, vctx *Context) (models.ProposalKind, error) {
	address := strings.TrimSpace(in.Address)
	if err := ValidateAddress(address); err != nil {
		return nil, err
	}
	if in.Community == "" {
		return nil, models.NewValidationError(models.CodeOutOfRange, "community name must not be empty")
	}
	if community, ok := vctx.Representatives[address]; ok {
		return nil, models.NewValidationError(models.CodeDuplicateRepresentative,
			"%s is already the representative of %s", address, community)
	}
	if vctx.hasCommunity(in.Community) {
		return nil, models.NewValidationError(models.CodeDuplicateCommunity,
			"community %q already has a representative", in.Community)
	}
	return &models.AddRepresentativeKind{
		Representative: models.Representative{Address: address, Community: in.Community},
	}, nil
}

func encodeRemoveRepresentative(in RemoveRepresentativeInput, vctx *Context) (models.ProposalKind, error) {
	address := strings.TrimSpace(in.Address)
	if err := ValidateAddress(address); err != nil {
		return nil, err
	}
	community, ok := vctx.Representatives[address]
	if !ok {
		return nil, models.NewValidationError(models.CodeNotARepresentative, "%s is not a representative", address)
	}
	if community != in.Community {
		return nil, models.NewValidationError(models.CodeCommunityMismatch,
			"%s represents %q, not %q", address, community, in.Community)
	}
	return &models.RemoveRepresentativeKind{
		Representative: models.Representative{Address: address, Community: in.Community},
	}, nil
}

func positiveInteger(value, field string) (int64, error) {
	n, err := RoundInteger(value)
	if err != nil {
		return 0, err
	}
	if n.Sign() <= 0 || !n.IsInt64() {
		return 0, models.NewValidationError(models.CodeOutOfRange, "%s must be a positive integer, got %s", field, value)
	}
	return n.Int64(), nil
}
