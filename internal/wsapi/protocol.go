// Package wsapi implements the client-facing websocket protocol from
// spec.md §6: a Request/Response pair of JSON messages per connection,
// matching the shape (and the same four request kinds) the original
// source's websockets.rs module exposes, carried over verbatim at the
// protocol level since external clients depend on it.
package wsapi

import "encoding/json"

// AttributeRef is the wire counterpart of keys.Attribute; its JSON shape
// is defined by MarshalJSON/UnmarshalJSON in attribute.go.

// EventRef is one matched (block, event_index) pair returned from a query.
type EventRef struct {
	Block uint32 `json:"blockNumber"`
	Event uint16 `json:"eventIndex"`
}

// Request is the tagged union of client requests. Exactly one of the
// type-specific fields is meaningful, selected by Type.
type Request struct {
	Type string `json:"type"`

	// GetEvents / SubscribeEvents
	Key *AttributeRef `json:"key,omitempty"`
}

const (
	ReqStatus          = "status"
	ReqVariants        = "variants"
	ReqGetEvents       = "getEvents"
	ReqSubscribeEvents = "subscribeEvents"
)

// Response is the tagged union of server responses.
type Response struct {
	Type string `json:"type"`

	// status
	LastHeadBlock         *uint32 `json:"lastHeadBlock,omitempty"`
	LastBatchBlock        *uint32 `json:"lastBatchBlock,omitempty"`
	BatchIndexingComplete *bool   `json:"batchIndexingComplete,omitempty"`

	// variants
	Pallets []PalletMeta `json:"pallets,omitempty"`

	// getEvents / push notifications
	Key    *AttributeRef `json:"key,omitempty"`
	Events []EventRef    `json:"events,omitempty"`
}

const (
	RespStatus     = "status"
	RespVariants   = "variants"
	RespEvents     = "events"
	RespSubscribed = "subscribed"
)

// PalletMeta/EventMeta describe one pallet's decodable event variants, for
// the "variants" response clients use to build a query UI.
type PalletMeta struct {
	Index  uint8       `json:"index"`
	Name   string      `json:"name"`
	Events []EventMeta `json:"events"`
}

type EventMeta struct {
	Index uint8  `json:"index"`
	Name  string `json:"name"`
}

func MarshalResponse(r Response) ([]byte, error) { return json.Marshal(r) }
