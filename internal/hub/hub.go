// Package hub implements the subscription fan-out (C5): a map from
// attribute key to the set of live subscribers wanting new positions for
// that key, pushed as they're written. Grounded on the original source's
// sub_map (a mutex-guarded HashMap<Key, Vec<Sender>>), carried over as the
// same clone-then-unlock-then-send shape so a slow subscriber never holds
// the hub's lock. Notify itself still waits for every Send it makes, and
// the indexer calls Notify synchronously on its write path.
package hub

import (
	"sync"

	"github.com/idn-labs/substrate-index/internal/keys"
)

// Notification is one new position discovered for a subscribed attribute.
type Notification struct {
	Attribute keys.Attribute
	Position  keys.Position
}

// Subscriber receives notifications for attributes it has subscribed to.
// Send returns false once the subscriber can no longer receive. The
// websocket Subscriber (internal/wsapi) writes each notification to its
// connection synchronously, so Notify waits for that write; it has no
// buffer and no overflow limit, and reports false after a write fails.
type Subscriber interface {
	Send(Notification) bool
}

type attrKey struct {
	kind    keys.Kind
	pallet  uint8
	variant uint8
	bytes32 [32]byte
	u32     uint32
}

func toAttrKey(a keys.Attribute) attrKey {
	return attrKey{kind: a.Kind, pallet: a.Pallet, variant: a.Variant, bytes32: a.Bytes32, u32: a.U32}
}

// Hub fans out index writes to subscribers by attribute. Zero value is
// ready to use.
type Hub struct {
	mu   sync.Mutex
	subs map[attrKey][]Subscriber
}

// New builds an empty hub.
func New() *Hub {
	return &Hub{subs: map[attrKey][]Subscriber{}}
}

// Subscribe registers sub to receive notifications for attribute a.
func (h *Hub) Subscribe(a keys.Attribute, sub Subscriber) {
	k := toAttrKey(a)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs == nil {
		h.subs = map[attrKey][]Subscriber{}
	}
	h.subs[k] = append(h.subs[k], sub)
}

// Notify delivers pos to every subscriber registered for a. Subscribers are
// cloned out of the map under the lock, then sent to without holding it, so
// a subscriber's Send can take its time without blocking concurrent
// Subscribe/Notify calls on unrelated attributes. Subscribers whose Send
// reports false (connection closed) are removed from the attribute's list
// before this Notify returns, so later Notify calls skip them.
func (h *Hub) Notify(a keys.Attribute, pos keys.Position) {
	k := toAttrKey(a)
	h.mu.Lock()
	subs := h.subs[k]
	cloned := make([]Subscriber, len(subs))
	copy(cloned, subs)
	h.mu.Unlock()

	if len(cloned) == 0 {
		return
	}

	n := Notification{Attribute: a, Position: pos}
	var dead []Subscriber
	for _, s := range cloned {
		if !s.Send(n) {
			dead = append(dead, s)
		}
	}
	if len(dead) == 0 {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	current := h.subs[k]
	live := make([]Subscriber, 0, len(current))
	for _, s := range current {
		keep := true
		for _, d := range dead {
			if s == d {
				keep = false
				break
			}
		}
		if keep {
			live = append(live, s)
		}
	}
	if len(live) == 0 {
		delete(h.subs, k)
	} else {
		h.subs[k] = live
	}
}
