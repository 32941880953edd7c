package cli

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/idn-labs/substrate-index/internal/hub"
	"github.com/idn-labs/substrate-index/internal/indexer"
	"github.com/idn-labs/substrate-index/internal/nodeclient"
	"github.com/idn-labs/substrate-index/internal/pallets"
	"github.com/idn-labs/substrate-index/internal/store"
	"github.com/idn-labs/substrate-index/internal/wsapi"
	"github.com/idn-labs/substrate-index/internal/xlog"
)

// shutdownGrace bounds how long the HTTP server waits for in-flight
// websocket handlers to drain on SIGINT/SIGTERM (spec.md §12.4).
const shutdownGrace = 5 * time.Second

// variantsFromRegistry answers the "Variants" request from the statically
// compiled pallet decoder tables (internal/pallets.Variants), since no
// SCALE-metadata codec is wired to decode the node's live metadata (see
// nodeclient.ErrNoEventDecoder). This is real, non-empty data reflecting
// every pallet the indexer actually decodes -- not a permanent stub.
func variantsFromRegistry() []wsapi.PalletMeta {
	infos := pallets.Variants()
	out := make([]wsapi.PalletMeta, len(infos))
	for i, p := range infos {
		events := make([]wsapi.EventMeta, len(p.Events))
		for j, e := range p.Events {
			events[j] = wsapi.EventMeta{Index: e.Index, Name: e.Name}
		}
		out[i] = wsapi.PalletMeta{Index: p.Index, Name: p.Name, Events: events}
	}
	return out
}

func runIndexer(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()
	if cfg.NodeURL == "" {
		return fmt.Errorf("cli: --node.url is required")
	}

	log, err := xlog.New(cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		return fmt.Errorf("cli: build logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Infow("opening store", "datadir", cfg.DataDir)
	s, err := store.Open(cfg.DataDir, store.Options{}, log)
	if err != nil {
		return fmt.Errorf("cli: open store: %w", err)
	}
	defer s.Close() //nolint:errcheck

	log.Infow("connecting to node", "url", cfg.NodeURL)
	client, err := nodeclient.Dial(ctx, cfg.NodeURL)
	if err != nil {
		return err
	}
	defer client.Close()

	h := hub.New()
	registry := pallets.Default()

	ix, err := indexer.New(s, client, registry, h, log, indexer.Config{
		QueueDepth:         cfg.QueueDepth,
		StartBlock:         cfg.StartBlock,
		BlockHashCacheSize: cfg.BlockHashCacheSize,
	})
	if err != nil {
		return fmt.Errorf("cli: build indexer: %w", err)
	}

	server := wsapi.New(s, h, log, variantsFromRegistry)
	httpSrv := &http.Server{Addr: cfg.ListenAddr, Handler: server.Handler()}
	go func() {
		log.Infow("listening", "addr", cfg.ListenAddr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorw("websocket server stopped", "error", err)
		}
	}()

	errCh := make(chan error, 1)
	go func() { errCh <- ix.Run(ctx, 0) }()

	select {
	case <-ctx.Done():
		log.Infow("shutting down")
	case err := <-errCh:
		if err != nil {
			log.Errorw("indexer stopped", "error", err)
		}
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warnw("http server shutdown", "error", err)
	}
	return s.Flush()
}
