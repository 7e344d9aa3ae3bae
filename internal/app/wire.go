//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"

	"github.com/representatives-dao/repms/internal/adapters"
	"github.com/representatives-dao/repms/internal/config"
	"github.com/representatives-dao/repms/internal/logging"
	"github.com/representatives-dao/repms/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Session state
		usecase.NewSession,
		usecase.NewLoadState,

		// Use cases
		usecase.NewShowParameters,
		usecase.NewListProposals,
		usecase.NewShowProposal,
		usecase.NewCreateProposal,
		usecase.NewVoteProposal,
		usecase.NewExecuteProposal,
		usecase.NewUploadFile,
		usecase.NewShowConfig,
		usecase.NewSetConfig,
		usecase.NewRemoveConfig,

		// App
		NewApp,
	)
	return nil, nil
}
