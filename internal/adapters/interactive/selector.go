package interactive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"

	"github.com/representatives-dao/repms/internal/codec"
	"github.com/representatives-dao/repms/internal/domain/config"
	"github.com/representatives-dao/repms/internal/domain/models"
	"github.com/representatives-dao/repms/internal/usecase"
)

// ErrNonInteractive is returned when a selection is needed in non interactive mode
var ErrNonInteractive = errors.New("interactive selection not available in non-interactive mode")

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectRepresentative asks the user to pick one of the representatives
func (s *SelectorAdapter) SelectRepresentative(ctx context.Context, representatives []models.Representative, aliases map[string]string) (*models.Representative, error) {
	if len(representatives) == 0 {
		return nil, fmt.Errorf("no representatives to select from")
	}
	if s.config.NonInteractive {
		return nil, ErrNonInteractive
	}

	options := formatRepresentativeOptions(representatives, aliases)
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, type to filter, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             "Select the representative",
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(searchKeys(representatives, aliases)),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}
	selected := representatives[index]
	return &selected, nil
}

// SelectProposals asks the user to pick the proposals to act on
func (s *SelectorAdapter) SelectProposals(ctx context.Context, proposals []*usecase.ProposalView) ([]*usecase.ProposalView, error) {
	if len(proposals) == 0 {
		return nil, fmt.Errorf("no proposals to select from")
	}
	if s.config.NonInteractive {
		return nil, ErrNonInteractive
	}

	indices, err := selectMany(proposalOptions(proposals), "Select the proposals to vote on")
	if err != nil {
		return nil, err
	}
	selected := make([]*usecase.ProposalView, 0, len(indices))
	for _, i := range indices {
		selected = append(selected, proposals[i])
	}
	return selected, nil
}

// SelectApproval asks for a yes or no vote
func (s *SelectorAdapter) SelectApproval(ctx context.Context, prompt string) (bool, error) {
	if s.config.NonInteractive {
		return false, ErrNonInteractive
	}

	promptSelect := promptui.Select{
		Label: prompt,
		Items: []string{"yes", "no"},
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}",
			Active:   "▸ {{ . | cyan }}",
			Inactive: "  {{ . }}",
			Selected: "✓ {{ . | green }}",
		},
	}
	index, _, err := promptSelect.Run()
	if err != nil {
		return false, fmt.Errorf("selection cancelled: %w", err)
	}
	return index == 0, nil
}

// formatRepresentativeOptions creates display strings for representative selection
func formatRepresentativeOptions(representatives []models.Representative, aliases map[string]string) []string {
	options := make([]string, len(representatives))
	for i, rep := range representatives {
		community := color.New(color.FgWhite, color.Bold).Sprint(rep.Community)
		address := color.New(color.FgBlue).Sprint(rep.Address)
		if alias := aliases[rep.Address]; alias != "" {
			options[i] = fmt.Sprintf("%s %s (%s)", community, address, color.New(color.FgYellow).Sprint(alias))
		} else {
			options[i] = fmt.Sprintf("%s %s", community, address)
		}
	}
	return options
}

// searchKeys are the plain strings the fuzzy filter matches against
func searchKeys(representatives []models.Representative, aliases map[string]string) []string {
	keys := make([]string, len(representatives))
	for i, rep := range representatives {
		keys[i] = strings.TrimSpace(strings.Join([]string{rep.Community, rep.Address, aliases[rep.Address]}, " "))
	}
	return keys
}

func proposalOptions(proposals []*usecase.ProposalView) []string {
	options := make([]string, len(proposals))
	for i, view := range proposals {
		issuer := codec.ShortenAddress(view.Proposal.Issuer.Address)
		options[i] = fmt.Sprintf("#%d %s %s",
			view.Proposal.ID,
			view.Description.Summary,
			color.New(color.Faint).Sprintf("(by %s, %d votes)", issuer, view.Proposal.PositiveVotes))
	}
	return options
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

var _ usecase.InteractiveSelector = (*SelectorAdapter)(nil)
