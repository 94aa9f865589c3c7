package handlers

import (
	"log"
	"net/http"
)

// UpdateFeeRate changes the release fee. Admin API key required.
func UpdateFeeRate(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req FeeRateRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if err := bridgePool.SetFeeRate(caller, req.FeeRateBps); err != nil {
		log.Printf("Error updating fee rate to %d bps: %v", req.FeeRateBps, err)
		responseError(w, err)
		return
	}

	responseJSON(w, &FeeResponse{
		Status:     "ok",
		FeeRateBps: req.FeeRateBps,
	}, http.StatusOK)
}

// Pause toggles the pool-wide pause gate. Admin API key required.
func Pause(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req PauseRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if err := bridgePool.SetPaused(caller, req.Paused); err != nil {
		log.Printf("Error setting paused=%v: %v", req.Paused, err)
		responseError(w, err)
		return
	}

	responseJSON(w, &APIResponse{
		Status: "ok",
	}, http.StatusOK)
}
