package site

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/okian/playerboard/internal/domain/card"
	"github.com/okian/playerboard/pkg/metrics"
)

const imageExt = ".jpg"

// HandleImage handles GET /player-images/{id}.jpg. A missing image is
// answered with the placeholder rather than an error.
func (h *Handler) HandleImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, card.ImagePrefix)
	if name == avatarName {
		serveAvatar(w, r)
		return
	}

	id, ok := strings.CutSuffix(name, imageExt)
	if !ok || id == "" || strings.ContainsAny(id, `/\`) || !fs.ValidPath(name) {
		http.NotFound(w, r)
		return
	}

	if h.images != nil {
		if info, err := fs.Stat(h.images, name); err == nil && info.Mode().IsRegular() {
			metrics.RecordImageRequest("hit")
			http.ServeFileFS(w, r, h.images, name)
			return
		}
	}
	metrics.RecordImageRequest("fallback")
	serveAvatar(w, r)
}

func serveAvatar(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, assets, avatarName)
}
