package handlers

import (
	"net/http"
)

// State returns the current pool counters.
func State(w http.ResponseWriter, r *http.Request) {
	responseJSON(w, bridgePool.Snapshot(), http.StatusOK)
}
