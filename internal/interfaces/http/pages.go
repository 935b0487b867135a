package http

import (
	"net/http"

	"tiis/internal/web"
)

// HandleHealth returns a simple health check response.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// HandleIndexPage serves the transaction input form.
func HandleIndexPage(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, web.FS, "index.html")
}
