package handlers

import (
	"net/http"
)

// Health reports liveness. The payload names the service so the response is
// identifiable when several services sit behind the same proxy.
func Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "delivery-fee-service",
	})
}
