package handle

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"span-checker/api/internal/checker"
	"span-checker/api/internal/llm/types"
)

const maxCheckBody = 1 << 20

// Check handles POST /api/check: one model call per request, the model's JSON is
// relayed unchanged.
func (h *Handle) Check(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req types.CheckRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxCheckBody))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad json: unexpected data after the request object")
		return
	}

	res, err := h.svc.Check(r.Context(), checker.SourceWeb, req.Text)
	if errors.Is(err, checker.ErrEmptyText) {
		writeError(w, http.StatusBadRequest, "Text is empty")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Raw)
}
