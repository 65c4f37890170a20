// server.go - HTTP and websocket interface
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/lgbarn/cgtcase/internal/config"
	cgterrors "github.com/lgbarn/cgtcase/internal/errors"
	"github.com/lgbarn/cgtcase/internal/output"
	"github.com/lgbarn/cgtcase/internal/parser"
	"github.com/lgbarn/cgtcase/internal/registry"
)

// maxRequestBytes limits the size of a test file sent to the server.
const maxRequestBytes = 1 << 20

// ParseResponse is the reply to a parse request. On failure Cases holds the
// cases read before the error.
type ParseResponse struct {
	Cases         []*output.JSONCase `json:"cases"`
	WarnedVersion bool               `json:"warnedVersion,omitempty"`
	Error         string             `json:"error,omitempty"`
	ErrorClass    string             `json:"errorClass,omitempty"`
}

// StatusMessage ends each websocket reply.
type StatusMessage struct {
	Done          bool   `json:"done"`
	Cases         int    `json:"cases"`
	WarnedVersion bool   `json:"warnedVersion,omitempty"`
	Error         string `json:"error,omitempty"`
	ErrorClass    string `json:"errorClass,omitempty"`
}

// Server serves the parser over HTTP.
type Server struct {
	router   *mux.Router
	reg      *registry.Registry
	cfg      *config.Config
	upgrader websocket.Upgrader
}

// NewServer creates a server that logs requests to logOut.
func NewServer(reg *registry.Registry, cfg *config.Config, logOut io.Writer) *Server {
	s := &Server{
		router: mux.NewRouter(),
		reg:    reg,
		cfg:    cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	logged := func(next http.Handler) http.Handler {
		return handlers.LoggingHandler(logOut, next)
	}
	s.router.NotFoundHandler = logged(http.HandlerFunc(notFoundHandler))
	s.router.Use(logged)

	s.router.HandleFunc("/parse", s.parseHandler).Methods(http.MethodPost)
	s.router.HandleFunc("/families", s.familiesHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/ws", s.wsHandler)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// parse reads test file text, calling emit for every case. The version
// command is optional, as for command-line strings.
func (s *Server) parse(text string, emit func(*output.JSONCase) error) (bool, error) {
	cfg := s.cfg.Clone()
	cfg.CurrentInputFile = parser.StringName

	p, err := parser.FromString(text, s.reg, cfg)
	if err != nil {
		return false, err
	}
	defer p.Close() //nolint:errcheck // G104: string source

	for {
		c, err := p.ParseChunk()
		if err != nil {
			return p.WarnedWrongVersion(), err
		}
		if c == nil {
			return p.WarnedWrongVersion(), nil
		}
		jc := output.CaseToJSON(c, cfg)
		c.Cleanup()
		if err := emit(jc); err != nil {
			return p.WarnedWrongVersion(), err
		}
	}
}

func (s *Server) parseHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		http.Error(w, "Request Too Large", http.StatusRequestEntityTooLarge)
		return
	}

	resp := ParseResponse{Cases: []*output.JSONCase{}}
	warned, err := s.parse(string(body), func(jc *output.JSONCase) error {
		resp.Cases = append(resp.Cases, jc)
		return nil
	})
	resp.WarnedVersion = warned

	status := http.StatusOK
	if err != nil {
		status = http.StatusUnprocessableEntity
		resp.Error = err.Error()
		resp.ErrorClass = cgterrors.ClassOf(err).String()
	}
	writeJSON(w, status, resp)
}

func (s *Server) familiesHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"families": s.reg.Families()})
}

// wsHandler parses every text message as a test file. Each case is sent as
// a JSON message, followed by a StatusMessage.
func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return // Upgrade has already replied
	}
	defer conn.Close()
	conn.SetReadLimit(maxRequestBytes)

	for {
		kind, msg, err := conn.ReadMessage()
		if err != nil {
			s.cfg.Debugf("websocket %s closed: %v", conn.RemoteAddr(), err)
			return
		}
		if kind != websocket.TextMessage {
			continue
		}

		status := StatusMessage{Done: true}
		warned, err := s.parse(string(msg), func(jc *output.JSONCase) error {
			status.Cases++
			return conn.WriteJSON(jc)
		})
		status.WarnedVersion = warned
		if err != nil {
			status.Error = err.Error()
			status.ErrorClass = cgterrors.ClassOf(err).String()
		}
		if err := conn.WriteJSON(status); err != nil {
			return
		}
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, "Not Found", http.StatusNotFound)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Printf("Error writing response: %v\n", err)
	}
}

// runServer serves until the listener fails.
func runServer(addr string, reg *registry.Registry, cfg *config.Config, logOut io.Writer) error {
	fmt.Fprintf(logOut, "Starting server on %s\n", addr)
	return http.ListenAndServe(addr, NewServer(reg, cfg, logOut)) //nolint:gosec // G114: local tool
}
