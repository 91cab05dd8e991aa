package api

import (
	"net/http"
)

// QueryParam is the search query parameter shared with the board page.
const QueryParam = "q"

// PlayersHandler serves the visible collection as JSON.
type PlayersHandler struct {
	deps Dependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps Dependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

// HandleGetPlayers handles GET /api/players?q=text requests. The query is
// used verbatim; an absent or empty q returns the whole collection.
func (h *PlayersHandler) HandleGetPlayers(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_players"
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(op, ErrMethod))
		return
	}
	players := h.deps.Visible(r.Context(), r.URL.Query().Get(QueryParam))
	writeJSON(w, http.StatusOK, players)
}
