// Package cli wires the indexer's cobra command tree, grounded on the
// cmd/headers/commands flag-variable idiom: package-level vars bound once
// when RootCommand builds the command tree, read by RunE closures rather
// than threaded through as parameters.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/idn-labs/substrate-index/internal/config"
)

var (
	chainName          string
	dataDir            string
	nodeURL            string
	listenAddr         string
	queueDepth         int
	startBlock         uint32
	hasStartBlock      bool
	metadataCacheSize  int
	blockHashCacheSize int
	logLevel           string
	logJSON            bool
)

// RootCommand builds the "substrate-index" command tree: the bare root
// command runs the indexer; "status" (status.go) asks a running indexer
// for its progress over the client websocket API.
func RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "substrate-index",
		Short: "Index finalized Substrate chain events for fast attribute lookup",
	}

	root.PersistentFlags().StringVar(&chainName, "chain", "polkadot", "chain name; selects the default data directory")
	root.PersistentFlags().StringVar(&dataDir, "datadir", "", "index data directory (default: ~/.local/share/substrate-index/<chain>)")
	root.PersistentFlags().StringVar(&logLevel, "log.level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&logJSON, "log.json", false, "emit structured JSON logs instead of console format")

	root.Flags().StringVar(&nodeURL, "node.url", "", "websocket URL of the Substrate node to index")
	root.Flags().StringVar(&listenAddr, "ws.addr", "0.0.0.0:8172", "address the client websocket API listens on")
	root.Flags().IntVar(&queueDepth, "queue.depth", 32, "max in-flight blocks during batch backfill")
	root.Flags().Uint32Var(&startBlock, "start.block", 0, "override the batch backfiller's start block")
	root.Flags().IntVar(&metadataCacheSize, "cache.metadata", 8, "distinct runtime spec-version metadata blobs to cache (not passed to the indexer, whose metadata cache is unbounded)")
	root.Flags().IntVar(&blockHashCacheSize, "cache.blockhash", 1024, "recent block hashes cached")

	root.PreRun = func(cmd *cobra.Command, args []string) {
		hasStartBlock = cmd.Flags().Changed("start.block")
	}

	root.RunE = runIndexer

	root.AddCommand(statusCmd())
	return root
}

func buildConfig() config.Config {
	cfg := config.Default(chainName)
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	cfg.NodeURL = nodeURL
	cfg.ListenAddr = listenAddr
	cfg.QueueDepth = queueDepth
	cfg.MetadataCacheSize = metadataCacheSize
	cfg.BlockHashCacheSize = blockHashCacheSize
	cfg.LogLevel = logLevel
	cfg.LogJSON = logJSON
	if hasStartBlock {
		b := startBlock
		cfg.StartBlock = &b
	}
	return cfg
}
