package handlers

import (
	"log"
	"net/http"
	"strconv"

	"gostablebridge/redis"
)

const defaultEventCount = 100

// Events returns the newest journal entries, oldest first.
func Events(w http.ResponseWriter, r *http.Request) {
	count := defaultEventCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			responseJSON(w, &APIResponse{
				Status:  "error",
				Field:   "count",
				Message: "Count must be a positive integer",
			}, http.StatusBadRequest)
			return
		}
		count = parsed
	}

	evs, err := redis.RecentEvents(count)
	if err != nil {
		log.Printf("Error loading events: %v", err)
		responseJSON(w, &APIResponse{
			Status:  "error",
			Message: "Error loading events",
		}, http.StatusInternalServerError)
		return
	}

	responseJSON(w, evs, http.StatusOK)
}
