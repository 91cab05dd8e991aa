// Package site serves the player board page: the search box, the cards
// grid and player images.
package site

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"net/http"

	"github.com/okian/playerboard/internal/adapters/http/api"
	"github.com/okian/playerboard/internal/domain/card"
	"github.com/okian/playerboard/internal/domain/model"
	"github.com/okian/playerboard/pkg/logger"
)

// Error constants
var (
	ErrRender = errors.New("board render failed")
)

// Board is the part of the service the page needs.
type Board interface {
	Visible(ctx context.Context, query string) []model.Player
}

// Handler renders the board.
type Handler struct {
	board  Board
	mapper *card.Mapper
	images fs.FS
	logger logger.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithMapper sets the card mapper, e.g. to render times in another zone.
func WithMapper(m *card.Mapper) Option {
	return func(h *Handler) {
		if m != nil {
			h.mapper = m
		}
	}
}

// WithImages sets the filesystem holding {id}.jpg player images.
func WithImages(fsys fs.FS) Option {
	return func(h *Handler) {
		h.images = fsys
	}
}

// WithLogger sets the logger used for render failures.
func WithLogger(l logger.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHandler creates a board handler.
func NewHandler(board Board, opts ...Option) *Handler {
	h := &Handler{board: board, mapper: card.NewMapper()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register attaches the board routes to mux. "/" is a catch-all in
// ServeMux, so unknown paths are answered with 404 by HandleBoard.
func (h *Handler) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/", api.MetricsMiddleware(h.HandleBoard, "board"))
	mux.HandleFunc("/cards", api.MetricsMiddleware(h.HandleCards, "cards"))
	mux.HandleFunc(card.ImagePrefix, api.MetricsMiddleware(h.HandleImage, "images"))
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServerFS(assets)))
}

type pageData struct {
	Query string
	Cards []card.Card
}

// HandleBoard handles GET /?q=text and renders the full page.
func (h *Handler) HandleBoard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" || r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	h.render(w, r, "board")
}

// HandleCards handles GET /cards?q=text and renders only the cards grid.
func (h *Handler) HandleCards(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	h.render(w, r, "cards")
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string) {
	query := r.URL.Query().Get(api.QueryParam)
	data := pageData{
		Query: query,
		Cards: h.mapper.Cards(h.board.Visible(r.Context(), query)),
	}

	// Render into a buffer so a template failure never leaves half a page.
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		if h.logger != nil {
			h.logger.Error(r.Context(), ErrRender.Error(), logger.String("template", name), logger.Error(err))
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}
