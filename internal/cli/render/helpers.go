package render

import (
	"strings"

	"github.com/fatih/color"

	"github.com/representatives-dao/repms/internal/codec"
	"github.com/representatives-dao/repms/internal/domain/config"
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	msg := strings.TrimSpace(message)

	// Capitalize first letter
	if len(msg) > 0 {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}

	return color.New(color.FgRed).Sprintf("❌ %s", msg)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// Links turns addresses, operations and description links into URLs
type Links struct {
	explorer string
	gateway  string
}

// NewLinks creates links for the network block explorer and an IPFS gateway
func NewLinks(network *config.Network, gateway string) Links {
	l := Links{gateway: gateway}
	if network != nil {
		l.explorer = strings.TrimRight(network.ExplorerURL, "/")
	}
	if l.gateway != "" && !strings.HasSuffix(l.gateway, "/") {
		l.gateway += "/"
	}
	return l
}

// Explorer returns the explorer page of an address or operation hash
func (l Links) Explorer(target string) string {
	if l.explorer == "" || target == "" {
		return ""
	}
	return l.explorer + "/" + target
}

// Resolve returns the URL of a description link
func (l Links) Resolve(link *codec.Link) string {
	if link == nil {
		return ""
	}
	switch link.Kind {
	case codec.LinkIPFS:
		if l.gateway == "" {
			return "ipfs://" + link.Target
		}
		return l.gateway + link.Target
	case codec.LinkContract:
		return l.Explorer(link.Target)
	default:
		return link.Target
	}
}

// displayName shows an alias next to the shortened address
func displayName(address, alias string) string {
	short := codec.ShortenAddress(address)
	if alias == "" {
		return short
	}
	return alias + " " + color.New(color.Faint).Sprintf("(%s)", short)
}
