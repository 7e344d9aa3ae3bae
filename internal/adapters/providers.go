package adapters

import (
	"github.com/google/wire"

	"github.com/representatives-dao/repms/internal/adapters/fs"
	"github.com/representatives-dao/repms/internal/adapters/indexer"
	"github.com/representatives-dao/repms/internal/adapters/interactive"
	"github.com/representatives-dao/repms/internal/adapters/ipfs"
	"github.com/representatives-dao/repms/internal/adapters/octez"
	"github.com/representatives-dao/repms/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewLocalConfigStoreAdapter,
	wire.Bind(new(usecase.LocalConfigStore), new(*fs.LocalConfigStoreAdapter)),
)

// IndexerSet provides TzKT-based implementations
var IndexerSet = wire.NewSet(
	indexer.NewTzktAdapter,
	wire.Bind(new(usecase.Indexer), new(*indexer.TzktAdapter)),

	indexer.NewAliasAdapter,
	wire.Bind(new(usecase.AliasResolver), new(*indexer.AliasAdapter)),
)

// OctezSet provides octez-client based implementations
var OctezSet = wire.NewSet(
	octez.NewClientAdapter,
	wire.Bind(new(usecase.OperationSubmitter), new(*octez.ClientAdapter)),
)

// IPFSSet provides IPFS pinning implementations
var IPFSSet = wire.NewSet(
	ipfs.NewPinataAdapter,
	wire.Bind(new(usecase.FileUploader), new(*ipfs.PinataAdapter)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.InteractiveSelector), new(*interactive.SelectorAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	IndexerSet,
	OctezSet,
	IPFSSet,
	InteractiveSet,
)
