package handlers

import (
	"log"
	"net/http"
)

// RevertBridge reclaims an executed release. Relayer API key required.
func RevertBridge(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req RevertBridgeRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	restored, err := bridgePool.RevertBridge(caller, req.Nonce)
	if err != nil {
		log.Printf("Error reverting bridge nonce %d: %v", req.Nonce, err)
		responseError(w, err)
		return
	}

	responseJSON(w, &AmountResponse{
		Status: "ok",
		Amount: restored.String(),
		Nonce:  req.Nonce,
	}, http.StatusOK)
}
