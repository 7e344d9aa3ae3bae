package app

import (
	"github.com/representatives-dao/repms/internal/domain/config"
	"github.com/representatives-dao/repms/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Shared dependencies
	Selector usecase.InteractiveSelector
	Session  *usecase.Session

	// Use cases
	LoadState       *usecase.LoadState
	ShowParameters  *usecase.ShowParameters
	ListProposals   *usecase.ListProposals
	ShowProposal    *usecase.ShowProposal
	CreateProposal  *usecase.CreateProposal
	VoteProposal    *usecase.VoteProposal
	ExecuteProposal *usecase.ExecuteProposal
	UploadFile      *usecase.UploadFile
	ShowConfig      *usecase.ShowConfig
	SetConfig       *usecase.SetConfig
	RemoveConfig    *usecase.RemoveConfig
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	selector usecase.InteractiveSelector,
	session *usecase.Session,
	loadState *usecase.LoadState,
	showParameters *usecase.ShowParameters,
	listProposals *usecase.ListProposals,
	showProposal *usecase.ShowProposal,
	createProposal *usecase.CreateProposal,
	voteProposal *usecase.VoteProposal,
	executeProposal *usecase.ExecuteProposal,
	uploadFile *usecase.UploadFile,
	showConfig *usecase.ShowConfig,
	setConfig *usecase.SetConfig,
	removeConfig *usecase.RemoveConfig,
) (*App, error) {
	return &App{
		Config:          cfg,
		Selector:        selector,
		Session:         session,
		LoadState:       loadState,
		ShowParameters:  showParameters,
		ListProposals:   listProposals,
		ShowProposal:    showProposal,
		CreateProposal:  createProposal,
		VoteProposal:    voteProposal,
		ExecuteProposal: executeProposal,
		UploadFile:      uploadFile,
		ShowConfig:      showConfig,
		SetConfig:       setConfig,
		RemoveConfig:    removeConfig,
	}, nil
}
