package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jsphweid/rhythmdex/db"
	"github.com/jsphweid/rhythmdex/midi"
	"github.com/jsphweid/rhythmdex/model"
	"github.com/jsphweid/rhythmdex/render"
	"github.com/jsphweid/rhythmdex/trainer"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// Engine is the part of the trainer engine the API talks to.
type Engine interface {
	Submit(ev model.KeyEvent)
	Snapshot() trainer.Snapshot
}

type Server struct {
	// triggerKey is the key the index page sends and listens for.
	triggerKey string
	engine     Engine
	hub        *render.Hub
	store      db.Store
	log        logrus.FieldLogger
	router     *mux.Router
}

func New(triggerKey string, e Engine, hub *render.Hub, store db.Store, log logrus.FieldLogger) *Server {
	s := &Server{triggerKey: triggerKey, engine: e, hub: hub, store: store, log: log}

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/", s.handleIndex).Methods("GET")
	router.HandleFunc("/input", s.handleInput).Methods("POST")
	router.HandleFunc("/state", s.handleState).Methods("GET")
	router.HandleFunc("/events", s.handleEvents).Methods("GET")
	router.HandleFunc("/rounds", s.handleRounds).Methods("GET")
	router.HandleFunc("/rounds/{id}", s.handleRound).Methods("GET")
	router.HandleFunc("/rounds/{id}/midi", s.handleRoundMidi).Methods("GET")
	s.router = router
	return s
}

// Handler is the router wrapped for cross origin browser clients.
func (s *Server) Handler() http.Handler {
	return cors.Default().Handler(s.router)
}

// ListenAndServe serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	errs := make(chan error, 1)
	go func() { errs <- srv.ListenAndServe() }()
	s.log.WithField("addr", addr).Info("listening")

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexPage.Execute(w, pageData{TriggerKey: s.triggerKey}); err != nil {
		s.log.WithError(err).Error("rendering index page")
	}
}

func (s *Server) handleInput(w http.ResponseWriter, r *http.Request) {
	var input model.InputRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "could not decode request body: "+err.Error())
		return
	}
	s.engine.Submit(model.KeyEvent{Key: input.Key, Type: input.Type})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events, leave := s.hub.Subscribe()
	defer leave()
	s.log.WithField("clients", s.hub.Count()).Debug("sse client joined")

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-events:
			data, err := json.Marshal(ev)
			if err != nil {
				s.log.WithError(err).Error("encoding frame")
				continue
			}
			fmt.Fprintf(w, "event: frame\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}

func (s *Server) handleRounds(w http.ResponseWriter, r *http.Request) {
	rounds, err := s.store.List(r.Context())
	if err != nil {
		s.log.WithError(err).Error("listing rounds")
		writeError(w, http.StatusInternalServerError, "could not list rounds")
		return
	}
	if rounds == nil {
		rounds = []model.RoundResult{}
	}
	writeJSON(w, http.StatusOK, rounds)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (model.RoundResult, bool) {
	id := mux.Vars(r)["id"]
	res, err := s.store.Get(r.Context(), id)
	switch {
	case errors.Is(err, db.ErrNotFound):
		writeError(w, http.StatusNotFound, "no round "+id)
		return res, false
	case err != nil:
		s.log.WithError(err).WithField("round", id).Error("loading round")
		writeError(w, http.StatusInternalServerError, "could not load round")
		return res, false
	}
	return res, true
}

func (s *Server) handleRound(w http.ResponseWriter, r *http.Request) {
	if res, ok := s.lookup(w, r); ok {
		writeJSON(w, http.StatusOK, res)
	}
}

func (s *Server) handleRoundMidi(w http.ResponseWriter, r *http.Request) {
	res, ok := s.lookup(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.ID+".mid"))
	if err := midi.WritePerformance(w, res); err != nil {
		s.log.WithError(err).WithField("round", res.ID).Error("exporting round")
	}
}
