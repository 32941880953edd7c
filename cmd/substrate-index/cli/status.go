package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/gorilla/websocket"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/idn-labs/substrate-index/internal/wsapi"
)

var statusEndpoint string

// dialTimeout bounds how long "status" waits for the websocket handshake
// against a deployment that may be down or unreachable.
const dialTimeout = 5 * time.Second

// statusCmd implements spec.md §12.3's "indexer status" subcommand,
// folded in from original_source/src/main.rs's standalone progress
// report: it speaks the same websocket protocol a regular client would
// (internal/wsapi), sending a Status request and rendering the Response
// as a table, rather than reaching into the data directory directly.
func statusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Query indexing progress from a running indexer over its websocket API",
		RunE: func(cmd *cobra.Command, args []string) error {
			dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}
			conn, _, err := dialer.Dial(statusEndpoint, nil)
			if err != nil {
				return fmt.Errorf("status: dial %s: %w", statusEndpoint, err)
			}
			defer conn.Close() //nolint:errcheck

			if err := conn.WriteJSON(wsapi.Request{Type: wsapi.ReqStatus}); err != nil {
				return fmt.Errorf("status: send request: %w", err)
			}
			var resp wsapi.Response
			if err := conn.ReadJSON(&resp); err != nil {
				return fmt.Errorf("status: read response: %w", err)
			}
			if resp.Type != wsapi.RespStatus {
				return fmt.Errorf("status: unexpected response type %q", resp.Type)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Field", "Value"})
			table.Append([]string{"chain", chainName})
			table.Append([]string{"last head block", fmt.Sprint(derefU32(resp.LastHeadBlock))})
			table.Append([]string{"last batch block", fmt.Sprint(derefU32(resp.LastBatchBlock))})
			table.Append([]string{"batch indexing complete", fmt.Sprint(derefBool(resp.BatchIndexingComplete))})
			table.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&statusEndpoint, "endpoint", "ws://127.0.0.1:8172/ws", "websocket endpoint of the running indexer")
	return cmd
}

func derefU32(v *uint32) uint32 {
	if v == nil {
		return 0
	}
	return *v
}

func derefBool(v *bool) bool {
	if v == nil {
		return false
	}
	return *v
}
