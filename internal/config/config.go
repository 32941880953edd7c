// Package config holds the indexer's resolved settings. The cobra command
// tree (cmd/substrate-index/cli) binds the command-line flags and copies
// them into a single Config value, which the rest of the program reads.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/c2h5oh/datasize"
)

// Config is the fully resolved set of knobs the indexer core, store and
// websocket server need. Zero value is not valid; use Default then apply
// flags.
type Config struct {
	// Name identifies the chain this indexer serves (e.g. "polkadot",
	// "kusama"); it selects the default data directory.
	Name string

	// DataDir is the directory the badger store lives under.
	DataDir string

	// NodeURL is the websocket endpoint of the Substrate node to index.
	NodeURL string

	// ListenAddr is the address the client websocket server binds, per
	// spec.md §6's fixed port 8172 default.
	ListenAddr string

	// QueueDepth bounds the batch backfiller's in-flight block window.
	QueueDepth int

	// StartBlock overrides the default start-block selection logic when
	// non-nil.
	StartBlock *uint32

	// MetadataCacheSize is set from the --cache.metadata flag but is not
	// passed to the indexer: its per-spec-version metadata cache keeps
	// every version it fetches, with no size bound.
	MetadataCacheSize int

	// BlockHashCacheSize bounds the recent-block-hash LRU (SPEC §12.1).
	BlockHashCacheSize int

	// LogLevel is one of debug/info/warn/error.
	LogLevel string

	// LogJSON selects the JSON log encoder over the console one.
	LogJSON bool
}

// Default returns the baseline configuration; cobra flag bindings overwrite
// fields on top of it.
func Default(name string) Config {
	dataDir := filepath.Join(".local", "share", "substrate-index", name)
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, dataDir)
	}
	return Config{
		Name:               name,
		DataDir:            dataDir,
		ListenAddr:         "0.0.0.0:8172",
		QueueDepth:         32,
		MetadataCacheSize:  8,
		BlockHashCacheSize: 1024,
		LogLevel:           "info",
	}
}

// CacheBytes parses a datasize string (e.g. "256MB") into a byte count;
// kept separate from the LRU entry-count fields above, which bound number
// of items rather than bytes. No command-line flag calls it.
func CacheBytes(s string) (datasize.ByteSize, error) {
	var v datasize.ByteSize
	if err := v.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("config: invalid size %q: %w", s, err)
	}
	return v, nil
}
