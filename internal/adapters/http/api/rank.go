package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/okian/depthchart/internal/domain/model"
)

// RankDependencies defines the interface for rank operations.
type RankDependencies interface {
	Rank(ctx context.Context, role model.Role, player string) (Entry, error)
}

// RankHandler handles rank requests.
type RankHandler struct {
	deps RankDependencies
}

// NewRankHandler creates a new rank handler.
func NewRankHandler(deps RankDependencies) *RankHandler {
	return &RankHandler{deps: deps}
}

// HandleGetRank handles GET /rank/{role}/{player} requests.
func (h *RankHandler) HandleGetRank(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_rank"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Player names contain spaces, so read the escaped path.
	path := strings.TrimPrefix(r.URL.EscapedPath(), "/rank/")
	rawRole, rawPlayer, ok := strings.Cut(path, "/")
	if !ok || rawPlayer == "" || strings.Contains(rawPlayer, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", wrap(op, ErrBadRequest))
		return
	}
	role, err := parseRole(op, rawRole)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	player, err := url.PathUnescape(rawPlayer)
	if err != nil || strings.TrimSpace(player) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", wrap(op, ErrBadRequest))
		return
	}

	entry, err := h.deps.Rank(r.Context(), role, player)
	if err != nil {
		writeLookupError(w, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
