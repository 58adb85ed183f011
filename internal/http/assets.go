package http

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-cms-bootstrap/internal/tabs"
)

func (api *API) registerAssetRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET "+api.path("/assets/"+tabs.ScriptName), api.handleClientScript)
	if api.mount != nil {
		mux.HandleFunc("GET "+api.path("/app"), api.handleMount)
	}
}

func (api *API) handleClientScript(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(tabs.ClientScript())
}

// handleMount serves the page shell the front-end bundle mounts into. The
// variant query selects a theme variant.
func (api *API) handleMount(w http.ResponseWriter, r *http.Request) {
	variant := strings.TrimSpace(r.URL.Query().Get("variant"))
	out, err := api.mount.Render(r.Context(), variant)
	if err != nil {
		api.logger.Error("http.mount.render_failed", "variant", variant, "error", err)
		writeError(w, err)
		return
	}
	writeHTML(w, http.StatusOK, out)
}
