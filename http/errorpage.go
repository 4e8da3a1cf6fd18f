package http

import (
	"net/http"
)

// handleNotFound answers unmatched routes and methods.
func handleNotFound(w http.ResponseWriter, r *http.Request) {
	drainBody(r)
	writeNotFound(w)
}

func writeNotFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
}
