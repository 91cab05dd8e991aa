package feedstub

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/okian/playerboard/internal/domain/model"
	"github.com/okian/playerboard/pkg/logger"
)

// Server serves one fixed feed for its whole lifetime, like the upstream
// does between deploys.
type Server struct {
	body    []byte
	players map[string]model.Player
	count   int
	log     logger.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		s.log = l
	}
}

// NewServer builds the feed from cfg: the seed file when set, generated
// players otherwise.
func NewServer(cfg Config, opts ...Option) (*Server, error) {
	s := &Server{}
	for _, opt := range opts {
		opt(s)
	}

	var (
		feed model.Feed
		err  error
	)
	if cfg.SeedFile != "" {
		s.body, err = os.ReadFile(cfg.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSeedFile, err)
		}
		if err = json.Unmarshal(s.body, &feed); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrSeedFile, cfg.SeedFile, err)
		}
	} else {
		if cfg.Players <= 0 {
			return nil, fmt.Errorf("%w: %d", ErrPlayerList, cfg.Players)
		}
		feed.PlayerList = Generate(cfg.Players, time.Now())
		if s.body, err = json.Marshal(feed); err != nil {
			return nil, fmt.Errorf("encode feed: %w", err)
		}
	}

	s.count = len(feed.PlayerList)
	s.players = make(map[string]model.Player, s.count)
	for _, p := range feed.PlayerList {
		s.players[p.ID] = p
	}
	return s, nil
}

// Count returns the number of players in the feed.
func (s *Server) Count() int {
	return s.count
}

// Handler returns the stub's routes.
//
//	GET /players       -> {"playerList":[...]}
//	GET /players/{id}  -> one player
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(s.logRequests)
	router.HandleFunc("/players", s.handlePlayers).Methods(http.MethodGet)
	router.HandleFunc("/players/{id}", s.handlePlayer).Methods(http.MethodGet)
	return router
}

func (s *Server) handlePlayers(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(s.body)
}

func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	p, ok := s.players[mux.Vars(r)["id"]]
	if !ok {
		http.Error(w, "Player not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		if s.log != nil {
			s.log.Debug(r.Context(), "feed request",
				logger.String("method", r.Method),
				logger.String("path", r.URL.Path),
				logger.Duration("took", time.Since(start)))
		}
	})
}
