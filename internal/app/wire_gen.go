// Injector for the App. It follows the provider sets in wire.go and is
// maintained by hand alongside them.

//go:build !wireinject
// +build !wireinject

package app

import (
	"github.com/spf13/viper"

	"github.com/representatives-dao/repms/internal/adapters/fs"
	"github.com/representatives-dao/repms/internal/adapters/indexer"
	"github.com/representatives-dao/repms/internal/adapters/interactive"
	"github.com/representatives-dao/repms/internal/adapters/ipfs"
	"github.com/representatives-dao/repms/internal/adapters/octez"
	"github.com/representatives-dao/repms/internal/config"
	"github.com/representatives-dao/repms/internal/logging"
	"github.com/representatives-dao/repms/internal/usecase"
)

// Injectors from wire.go:

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	runtimeConfig, err := config.Provider(v)
	if err != nil {
		return nil, err
	}
	selectorAdapter := interactive.NewSelectorAdapter(runtimeConfig)
	session := usecase.NewSession()
	logger := logging.NewLogger(runtimeConfig)
	tzktAdapter, err := indexer.NewTzktAdapter(runtimeConfig, logger)
	if err != nil {
		return nil, err
	}
	aliasAdapter := indexer.NewAliasAdapter(runtimeConfig, logger)
	loadState := usecase.NewLoadState(runtimeConfig, tzktAdapter, aliasAdapter, session, sink)
	showParameters := usecase.NewShowParameters(runtimeConfig, loadState)
	listProposals := usecase.NewListProposals(runtimeConfig, loadState, sink)
	showProposal := usecase.NewShowProposal(runtimeConfig, loadState)
	clientAdapter := octez.NewClientAdapter(runtimeConfig, logger)
	createProposal := usecase.NewCreateProposal(runtimeConfig, loadState, tzktAdapter, clientAdapter, sink)
	voteProposal := usecase.NewVoteProposal(runtimeConfig, loadState, tzktAdapter, clientAdapter, sink)
	executeProposal := usecase.NewExecuteProposal(runtimeConfig, loadState, tzktAdapter, clientAdapter, sink)
	pinataAdapter := ipfs.NewPinataAdapter(runtimeConfig, logger)
	uploadFile := usecase.NewUploadFile(pinataAdapter, sink)
	localConfigStoreAdapter := fs.NewLocalConfigStoreAdapter(runtimeConfig)
	showConfig := usecase.NewShowConfig(runtimeConfig, localConfigStoreAdapter)
	setConfig := usecase.NewSetConfig(localConfigStoreAdapter)
	removeConfig := usecase.NewRemoveConfig(localConfigStoreAdapter)
	app, err := NewApp(runtimeConfig, selectorAdapter, session, loadState, showParameters, listProposals, showProposal, createProposal, voteProposal, executeProposal, uploadFile, showConfig, setConfig, removeConfig)
	if err != nil {
		return nil, err
	}
	return app, nil
}
