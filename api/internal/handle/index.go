package handle

import (
	"net/http"
	"os"
	"path/filepath"
)

func (h *Handle) Ping(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "app": AppName})
}

// Index serves index.html byte for byte; the file is read on every request.
func (h *Handle) Index(w http.ResponseWriter, _ *http.Request) {
	b, err := os.ReadFile(filepath.Join(h.staticDir, "index.html"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

// Static serves everything under the static directory at /static/.
func (h *Handle) Static() http.Handler {
	return http.StripPrefix("/static/", http.FileServer(http.Dir(h.staticDir)))
}
