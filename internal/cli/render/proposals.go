package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/representatives-dao/repms/internal/domain/models"
	"github.com/representatives-dao/repms/internal/usecase"
)

var (
	activeStyle   = color.New(color.FgGreen, color.Bold)
	executedStyle = color.New(color.FgBlue, color.Bold)
	expiredStyle  = color.New(color.FgYellow, color.Bold)
	idStyle       = color.New(color.FgHiWhite, color.Bold)
	codeStyle     = color.New(color.FgMagenta)
)

// ProposalsRenderer renders proposal lists and single proposals
type ProposalsRenderer struct {
	out     io.Writer
	links   Links
	details bool
}

// NewProposalsRenderer creates a new proposals renderer. With details set,
// lists include the transfer rows and lambda code of each proposal.
func NewProposalsRenderer(out io.Writer, links Links, details bool) *ProposalsRenderer {
	return &ProposalsRenderer{out: out, links: links, details: details}
}

// RenderList renders proposals grouped by status
func (r *ProposalsRenderer) RenderList(result *usecase.ProposalListResult) error {
	groups := []struct {
		status models.ProposalStatus
		views  []*usecase.ProposalView
		style  *color.Color
	}{
		{models.ProposalStatusActive, result.Active, activeStyle},
		{models.ProposalStatusExecuted, result.Executed, executedStyle},
		{models.ProposalStatusExpired, result.Expired, expiredStyle},
	}

	total := 0
	for _, g := range groups {
		total += len(g.views)
	}
	if total == 0 {
		fmt.Fprintln(r.out, "No proposals found")
		return nil
	}

	title := cases.Title(language.English)
	for _, g := range groups {
		if len(g.views) == 0 {
			continue
		}
		g.style.Fprintf(r.out, "%s proposals (%d)\n", title.String(string(g.status)), len(g.views))
		for _, view := range g.views {
			r.renderProposal(view, result.MinimumVotes, r.details)
		}
		fmt.Fprintln(r.out)
	}
	return nil
}

// RenderProposal renders a single proposal with every detail
func (r *ProposalsRenderer) RenderProposal(view *usecase.ProposalView, minimumVotes int64) error {
	r.renderProposal(view, minimumVotes, true)
	fmt.Fprintf(r.out, "    Status: %s, created %s\n", view.Status, view.Proposal.Timestamp.UTC().Format(time.RFC3339))
	return nil
}

func (r *ProposalsRenderer) renderProposal(view *usecase.ProposalView, minimumVotes int64, details bool) {
	p := view.Proposal
	fmt.Fprintf(r.out, "  %s %s (%s) proposed to %s\n",
		idStyle.Sprintf("#%d", p.ID),
		displayName(p.Issuer.Address, view.IssuerAlias),
		communityStyle.Sprint(p.Issuer.Community),
		view.Description.Summary)

	if details {
		for _, line := range view.Description.Details {
			fmt.Fprintf(r.out, "      - %s\n", line)
		}
		if view.Description.Code != "" {
			for _, line := range strings.Split(view.Description.Code, "\n") {
				fmt.Fprintf(r.out, "      %s\n", codeStyle.Sprint(line))
			}
		}
	}
	if url := r.links.Resolve(view.Description.Link); url != "" {
		fmt.Fprintf(r.out, "    %s\n", faintStyle.Sprint(url))
	}

	fmt.Fprintf(r.out, "    %s\n", r.statusLine(view, minimumVotes))
}

func (r *ProposalsRenderer) statusLine(view *usecase.ProposalView, minimumVotes int64) string {
	parts := []string{fmt.Sprintf("Positive votes: %d/%d", view.Proposal.PositiveVotes, minimumVotes)}
	if view.Status == models.ProposalStatusActive {
		parts = append(parts, "expires "+view.ExpiresAt.UTC().Format("2006-01-02 15:04 MST"))
		if view.CanExecute {
			parts = append(parts, activeStyle.Sprint("ready to execute"))
		}
	}
	if view.Voted {
		vote := "no"
		if view.Approval {
			vote = "yes"
		}
		parts = append(parts, "your community voted "+vote)
	}
	return strings.Join(parts, " · ")
}
