package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/representatives-dao/repms/internal/codec"
	"github.com/representatives-dao/repms/internal/usecase"
)

var (
	sectionHeaderStyle = color.New(color.Bold, color.FgHiWhite)
	communityStyle     = color.New(color.FgCyan)
	userStyle          = color.New(color.FgGreen, color.Bold)
	faintStyle         = color.New(color.Faint)
)

// ParametersRenderer renders the contract governance parameters
type ParametersRenderer struct {
	out   io.Writer
	links Links
}

// NewParametersRenderer creates a new parameters renderer
func NewParametersRenderer(out io.Writer, links Links) *ParametersRenderer {
	return &ParametersRenderer{out: out, links: links}
}

// Render renders the parameters result
func (r *ParametersRenderer) Render(result *usecase.ParametersResult) error {
	sectionHeaderStyle.Fprintln(r.out, "Representatives multisig parameters")
	fmt.Fprintln(r.out)

	fmt.Fprintf(r.out, "Contract:       %s\n", result.Contract)
	if url := r.links.Explorer(result.Contract); url != "" {
		fmt.Fprintf(r.out, "                %s\n", faintStyle.Sprint(url))
	}
	if result.Network != nil {
		fmt.Fprintf(r.out, "Network:        %s\n", result.Network.Name)
	}
	fmt.Fprintf(r.out, "Balance:        %s\n", codec.FormatTez(result.Balance))
	fmt.Fprintf(r.out, "Minimum votes:  %d\n", result.MinimumVotes)
	fmt.Fprintf(r.out, "Expiration:     %d days\n", result.ExpirationTime)
	fmt.Fprintln(r.out)

	sectionHeaderStyle.Fprintf(r.out, "Representatives (%d)\n", len(result.Representatives))
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateHeader = false
	t.Style().Box = table.BoxStyle{PaddingRight: "   "}
	for _, rep := range result.Representatives {
		marker := ""
		if rep.IsUser {
			marker = userStyle.Sprint("← you")
		}
		t.AppendRow(table.Row{communityStyle.Sprint(rep.Community), rep.Address, rep.Alias, marker})
	}
	t.Render()

	if result.UserAddress != "" && result.Community == "" {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("%s is not a community representative, proposals are read only", result.UserAddress)))
	}
	return nil
}

var _ Renderer[*usecase.ParametersResult] = (*ParametersRenderer)(nil)
