package handle

import (
	"encoding/json"
	"net/http"

	"span-checker/api/internal/checker"
)

const AppName = "mizzou-span-1200"

type Handle struct {
	svc       *checker.Service
	staticDir string
}

func New(svc *checker.Service, staticDir string) *Handle {
	return &Handle{
		svc:       svc,
		staticDir: staticDir,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Detail string `json:"detail"`
}

func writeError(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, errorBody{Detail: detail})
}
