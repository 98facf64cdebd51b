package main

import (
	"encoding/json"
	"errors"
	"image/png"
	"io"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/websocket"

	"github.com/gogpu/custompaint"
	"github.com/gogpu/custompaint/internal/config"
	"github.com/gogpu/custompaint/surface"
)

const maxMessageBytes = 32 << 20

type server struct {
	engine *custompaint.Engine
	hub    *hub
}

func newServer(c config.Config, reg *prometheus.Registry) (*server, error) {
	h := &hub{conns: make(map[*websocket.Conn]struct{})}
	opts := append(c.EngineOptions(),
		custompaint.WithSender(h),
		custompaint.WithRegisterer(reg),
	)
	e, err := custompaint.New(opts...)
	if err != nil {
		return nil, err
	}
	return &server{engine: e, hub: h}, nil
}

func (s *server) Close() error {
	return s.engine.Close()
}

func (s *server) router(reg *prometheus.Registry) *mux.Router {
	r := mux.NewRouter()
	r.Handle("/ws", websocket.Handler(s.serveConn)).Name("ws")
	r.HandleFunc("/messages", s.postMessage).Methods(http.MethodPost).Name("messages")
	r.HandleFunc("/views/{id}.png", s.viewPNG).Methods(http.MethodGet).Name("view")
	r.HandleFunc("/views/{id}/attributes", s.viewAttributes).Methods(http.MethodGet).Name("attributes")
	r.HandleFunc("/drawables/stats", s.drawableStats).Methods(http.MethodGet).Name("stats")
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Name("metrics")
	return r
}

// serveConn feeds every frame of one connection to the engine until the
// peer goes away.
func (s *server) serveConn(ws *websocket.Conn) {
	ws.MaxPayloadBytes = maxMessageBytes
	s.hub.add(ws)
	defer s.hub.remove(ws)

	log := custompaint.Logger()
	ctx := ws.Request().Context()
	for {
		var msg []byte
		if err := websocket.Message.Receive(ws, &msg); err != nil {
			if !errors.Is(err, io.EOF) {
				log.Debug("paintd: receive", "remote", ws.Request().RemoteAddr, "err", err)
			}
			return
		}
		if err := s.engine.HandleMessage(ctx, msg); err != nil {
			log.Warn("paintd: message rejected", "err", err)
		}
	}
}

func (s *server) postMessage(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxMessageBytes))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.engine.HandleMessage(r.Context(), body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) viewPNG(w http.ResponseWriter, r *http.Request) {
	id := custompaint.ViewID(mux.Vars(r)["id"])
	v, ok := s.engine.LookupView(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	img, err := v.Snapshot(r.Context())
	if errors.Is(err, surface.ErrNotReady) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	} else if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		custompaint.Logger().Debug("paintd: write png", "view", id, "err", err)
	}
}

// viewAttributes reports the element attributes of a view, creating the
// view so the host can type its element before the first layout.
func (s *server) viewAttributes(w http.ResponseWriter, r *http.Request) {
	v, err := s.engine.View(custompaint.ViewID(mux.Vars(r)["id"]))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	attrs := v.ElementAttributes()
	if attrs == nil {
		attrs = map[string]string{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(attrs)
}

func (s *server) drawableStats(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.engine.Drawables().Stats())
}

// hub broadcasts engine replies to every open connection.
type hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func (h *hub) add(ws *websocket.Conn) {
	h.mu.Lock()
	h.conns[ws] = struct{}{}
	h.mu.Unlock()
}

func (h *hub) remove(ws *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, ws)
	h.mu.Unlock()
}

// Send implements custompaint.Sender.
func (h *hub) Send(msg []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var errs []error
	for ws := range h.conns {
		if err := websocket.Message.Send(ws, string(msg)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
