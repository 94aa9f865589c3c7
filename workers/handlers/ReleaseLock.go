package handlers

import (
	"log"
	"net/http"
)

// ReleaseLock moves a lock's funds back to the available tier after the
// relayer settled or abandoned the outbound intent. Relayer API key
// required.
func ReleaseLock(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req ReleaseLockRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	amount, err := bridgePool.ReleaseLock(caller, req.Nonce)
	if err != nil {
		log.Printf("Error releasing lock nonce %d: %v", req.Nonce, err)
		responseError(w, err)
		return
	}

	responseJSON(w, &AmountResponse{
		Status: "ok",
		Amount: amount.String(),
		Nonce:  req.Nonce,
	}, http.StatusOK)
}
