package wsapi

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/idn-labs/substrate-index/internal/hub"
	"github.com/idn-labs/substrate-index/internal/keys"
	"github.com/idn-labs/substrate-index/internal/store"
)

// variantEventLimit/attributeEventLimit mirror the original source's two
// distinct per-kind result caps: the variant tree (one pallet/event pair
// can match very many events) is capped tighter than the rest.
const (
	variantEventLimit   = 100
	attributeEventLimit = 1000
)

// Server serves the client-facing websocket API on one HTTP listener,
// grounded on the teacher's httprouter + rs/cors combination
// (cmd/rpcdaemon's JSON-RPC HTTP server uses the same pairing).
type Server struct {
	store    *store.Store
	hub      *hub.Hub
	log      *zap.SugaredLogger
	variants func() []PalletMeta
	upgrader websocket.Upgrader
}

// New builds a Server. variantsFn supplies the "variants" response; it may
// be nil if metadata isn't available, in which case the "variants"
// response carries no pallets field.
func New(s *store.Store, h *hub.Hub, log *zap.SugaredLogger, variantsFn func() []PalletMeta) *Server {
	return &Server{
		store:    s,
		hub:      h,
		log:      log,
		variants: variantsFn,
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
	}
}

// Handler builds the HTTP handler: /healthz, /ws, /metrics, wrapped in
// permissive CORS for browser-based clients, matching the teacher's
// rs/cors + httprouter JSON-RPC server wiring.
func (s *Server) Handler() http.Handler {
	r := httprouter.New()
	r.GET("/healthz", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})
	r.GET("/ws", func(w http.ResponseWriter, req *http.Request, _ httprouter.Params) {
		s.serveWS(w, req)
	})
	r.Handler(http.MethodGet, "/metrics", promhttp.Handler())
	return cors.AllowAll().Handler(r)
}

type wsSubscriber struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool
}

func (w *wsSubscriber) Send(n hub.Notification) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return false
	}
	resp := Response{
		Type:   RespEvents,
		Key:    ref(FromAttribute(n.Attribute)),
		Events: []EventRef{{Block: n.Position.Block, Event: n.Position.Event}},
	}
	if err := w.conn.WriteJSON(resp); err != nil {
		w.closed = true
		return false
	}
	return true
}

func ref(a AttributeRef) *AttributeRef { return &a }

func (s *Server) serveWS(w http.ResponseWriter, req *http.Request) {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		s.log.Warnw("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	sub := &wsSubscriber{conn: conn}
	var writeMu sync.Mutex

	for {
		var reqMsg Request
		if err := conn.ReadJSON(&reqMsg); err != nil {
			return
		}
		resp := s.handle(reqMsg, sub)
		writeMu.Lock()
		err := conn.WriteJSON(resp)
		writeMu.Unlock()
		if err != nil {
			return
		}
	}
}

func (s *Server) handle(req Request, sub *wsSubscriber) Response {
	switch req.Type {
	case ReqStatus:
		return s.handleStatus()
	case ReqVariants:
		return s.handleVariants()
	case ReqGetEvents:
		return s.handleGetEvents(req)
	case ReqSubscribeEvents:
		return s.handleSubscribe(req, sub)
	default:
		return Response{Type: "error"}
	}
}

func (s *Server) handleStatus() Response {
	head, _, _ := s.store.LastHeadBlock()
	batch, _, _ := s.store.LastBatchBlock()
	complete, _ := s.store.BatchIndexingComplete()
	return Response{Type: RespStatus, LastHeadBlock: &head, LastBatchBlock: &batch, BatchIndexingComplete: &complete}
}

func (s *Server) handleVariants() Response {
	var pallets []PalletMeta
	if s.variants != nil {
		pallets = s.variants()
	}
	return Response{Type: RespVariants, Pallets: pallets}
}

func (s *Server) handleGetEvents(req Request) Response {
	if req.Key == nil {
		return Response{Type: "error"}
	}
	attr, err := req.Key.ToAttribute()
	if err != nil {
		return Response{Type: "error"}
	}
	limit := attributeEventLimit
	if attr.Kind == keys.KindVariant {
		limit = variantEventLimit
	}
	positions, err := s.store.QueryPositions(attr, limit)
	if err != nil {
		return Response{Type: "error"}
	}
	events := make([]EventRef, len(positions))
	for i, p := range positions {
		events[i] = EventRef{Block: p.Block, Event: p.Event}
	}
	return Response{Type: RespEvents, Key: req.Key, Events: events}
}

func (s *Server) handleSubscribe(req Request, sub *wsSubscriber) Response {
	if req.Key == nil {
		return Response{Type: "error"}
	}
	attr, err := req.Key.ToAttribute()
	if err != nil {
		return Response{Type: "error"}
	}
	s.hub.Subscribe(attr, sub)
	return Response{Type: RespSubscribed}
}
