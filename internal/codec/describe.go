package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/representatives-dao/repms/internal/domain/models"
)

// LinkKind tells renderers how to turn a link target into a URL
type LinkKind string

const (
	// LinkIPFS targets an IPFS path, resolved through a gateway
	LinkIPFS LinkKind = "ipfs"
	// LinkURL targets a complete URL
	LinkURL LinkKind = "url"
	// LinkContract targets a contract address, resolved through the block explorer
	LinkContract LinkKind = "contract"
)

// Link is an external resource attached to a proposal description
type Link struct {
	Kind   LinkKind `json:"kind"`
	Target string   `json:"target"`
}

// Description is the human readable form of a proposal kind
type Description struct {
	// Summary completes the sentence "<issuer> proposed to ..."
	Summary string   `json:"summary"`
	Details []string `json:"details,omitempty"`
	Code    string   `json:"code,omitempty"`
	Link    *Link    `json:"link,omitempty"`
	Unknown bool     `json:"unknown,omitempty"`
}

// Describe renders a proposal for display. It never fails: kinds it cannot
// interpret produce a generic description flagged as Unknown.
func Describe(p *models.Proposal, tokens models.TokenRegistry, aliases AliasLookup) Description {
	d := &describer{tokens: tokens, aliases: aliases}
	if p == nil || p.Kind == nil {
		_ = d.VisitUnknown(&models.UnknownKind{})
		return d.out
	}
	_ = p.Kind.Accept(d)
	return d.out
}

// DescribeKind renders a proposal kind that is not attached to a stored proposal yet
func DescribeKind(kind models.ProposalKind, tokens models.TokenRegistry, aliases AliasLookup) Description {
	return Describe(&models.Proposal{Kind: kind}, tokens, aliases)
}

type describer struct {
	tokens  models.TokenRegistry
	aliases AliasLookup
	out     Description
}

var _ models.KindVisitor = (*describer)(nil)

func (d *describer) address(a string) string {
	return DisplayAddress(a, d.aliases)
}

func (d *describer) VisitText(k *models.TextKind) error {
	d.out.Summary = "approve a text proposal."
	text, ok := HexToString(k.Text)
	if !ok {
		return nil
	}
	if path, ok := strings.CutPrefix(text, ipfsScheme); ok && path != "" {
		d.out.Link = &Link{Kind: LinkIPFS, Target: path}
	}
	return nil
}

func (d *describer) VisitTransferMutez(k *models.TransferMutezKind) error {
	if len(k.Transfers) == 1 {
		t := k.Transfers[0]
		d.out.Summary = fmt.Sprintf("transfer %s to %s.", FormatTez(t.Amount), d.address(t.Destination))
		return nil
	}

	d.out.Summary = fmt.Sprintf("transfer %s.", FormatTez(models.TotalAmount(k.Transfers)))
	for _, t := range k.Transfers {
		d.out.Details = append(d.out.Details, fmt.Sprintf("%s to %s", FormatTez(t.Amount), d.address(t.Destination)))
	}
	return nil
}

func (d *describer) VisitTransferToken(k *models.TransferTokenKind) error {
	token, known := d.tokens.Lookup(k.FA2)
	tokenID := "0"
	if k.TokenID != nil {
		tokenID = k.TokenID.String()
	}

	var decimals int32
	if known {
		decimals = token.Decimals
	}
	// label names the unit; with row set it describes a single distribution line
	label := func(amount *big.Int, row bool) string {
		switch {
		case !known:
			return "tokens"
		case token.MultiAsset:
			unit := "edition"
			if FromBaseUnits(amount, decimals).GreaterThan(decimal.NewFromInt(1)) {
				unit = "editions"
			}
			if row {
				return unit
			}
			return unit + " of token #" + tokenID
		default:
			return token.Name
		}
	}

	if len(k.Distribution) == 1 {
		t := k.Distribution[0]
		d.out.Summary = fmt.Sprintf("transfer %s %s to %s.",
			FormatAmount(t.Amount, decimals), label(t.Amount, false), d.address(t.Destination))
	} else {
		total := models.TotalAmount(k.Distribution)
		d.out.Summary = fmt.Sprintf("transfer %s %s.", FormatAmount(total, decimals), label(total, false))
		for _, t := range k.Distribution {
			d.out.Details = append(d.out.Details, fmt.Sprintf("%s %s to %s",
				FormatAmount(t.Amount, decimals), label(t.Amount, true), d.address(t.Destination)))
		}
	}

	if known && token.Website != "" {
		d.out.Link = &Link{Kind: LinkURL, Target: token.Website + tokenID}
	} else {
		d.out.Link = &Link{Kind: LinkContract, Target: k.FA2}
	}
	return nil
}

func (d *describer) VisitLambdaFunction(k *models.LambdaFunctionKind) error {
	d.out.Summary = "execute a lambda function."
	d.out.Code = EmitMicheline(k.Code, DisplayOptions)
	return nil
}

func (d *describer) VisitAddRepresentative(k *models.AddRepresentativeKind) error {
	d.out.Summary = fmt.Sprintf("add %s (%s) to the community representatives.",
		d.address(k.Representative.Address), k.Representative.Community)
	return nil
}

func (d *describer) VisitRemoveRepresentative(k *models.RemoveRepresentativeKind) error {
	d.out.Summary = fmt.Sprintf("remove %s (%s) from the community representatives.",
		d.address(k.Representative.Address), k.Representative.Community)
	return nil
}

func (d *describer) VisitMinimumVotes(k *models.MinimumVotesKind) error {
	d.out.Summary = fmt.Sprintf("change the minimum positive votes required to approve a proposal to %d votes.", k.Votes)
	return nil
}

func (d *describer) VisitExpirationTime(k *models.ExpirationTimeKind) error {
	d.out.Summary = fmt.Sprintf("change the proposals expiration time to %d days.", k.Days)
	return nil
}

func (d *describer) VisitUnknown(k *models.UnknownKind) error {
	d.out.Unknown = true
	if k.Tag == "" {
		d.out.Summary = "apply an unrecognized proposal."
	} else {
		d.out.Summary = fmt.Sprintf("apply an unrecognized proposal kind (%s).", k.Tag)
	}
	if len(k.Raw) > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, k.Raw, "", "    "); err == nil {
			d.out.Code = buf.String()
		} else {
			d.out.Code = string(k.Raw)
		}
	}
	return nil
}
