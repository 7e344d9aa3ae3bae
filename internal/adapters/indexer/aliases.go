package indexer

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/samber/lo"

	"github.com/representatives-dao/repms/internal/codec"
	"github.com/representatives-dao/repms/internal/domain/config"
	"github.com/representatives-dao/repms/internal/usecase"
	"github.com/representatives-dao/repms/pkg/tzkt"
)

// aliasBatchSize bounds the number of addresses in one key.in query
const aliasBatchSize = 100

// AliasAdapter reads user aliases from a registry bigmap. The registry lives
// on mainnet for every network, so it has its own TzKT client.
type AliasAdapter struct {
	client *tzkt.Client
	bigmap int64
	log    *slog.Logger
}

// NewAliasAdapter creates an alias resolver from the aliases configuration
func NewAliasAdapter(cfg *config.RuntimeConfig, log *slog.Logger) *AliasAdapter {
	return &AliasAdapter{
		client: tzkt.NewClient(cfg.Aliases.IndexerURL, tzkt.WithLogger(log)),
		bigmap: cfg.Aliases.Bigmap,
		log:    log,
	}
}

// GetAliases returns the aliases of the given addresses. Addresses without an
// alias, or with an alias that is not valid text, are left out.
func (a *AliasAdapter) GetAliases(ctx context.Context, addresses []string) (map[string]string, error) {
	aliases := map[string]string{}
	if a.bigmap == 0 || len(addresses) == 0 {
		return aliases, nil
	}

	for _, batch := range lo.Chunk(lo.Uniq(addresses), aliasBatchSize) {
		keys, err := a.client.GetBigmapKeys(ctx, a.bigmap, tzkt.BigmapQuery{KeyIn: batch})
		if err != nil {
			return nil, err
		}
		for _, key := range keys {
			var address, value string
			if err := json.Unmarshal(key.Key, &address); err != nil {
				a.log.Debug("skipping alias key", "key", string(key.Key), "error", err)
				continue
			}
			if err := json.Unmarshal(key.Value, &value); err != nil {
				a.log.Debug("skipping alias value", "address", address, "error", err)
				continue
			}
			if alias, ok := codec.HexToString(value); ok && alias != "" {
				aliases[address] = alias
			}
		}
	}
	return aliases, nil
}

var _ usecase.AliasResolver = (*AliasAdapter)(nil)
