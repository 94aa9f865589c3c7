package handlers

import (
	"log"
	"net/http"

	ethav "github.com/KOREAN139/ethereum-address-validator"
	"github.com/ethereum/go-ethereum/common"
)

// LockForBridge records an outbound bridge intent: pulls the sender's
// funds into the locked tier and assigns the next lock nonce.
func LockForBridge(w http.ResponseWriter, r *http.Request) {
	var req LockRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if err := ethav.Validate(common.HexToAddress(req.Address).Hex()); err != nil {
		log.Printf("Error validating sender address '%s': %s\n", req.Address, err.Error())
		responseJSON(w, &APIResponse{
			Status:  "error",
			Field:   "address",
			Message: "No sender address or invalid address provided",
		}, http.StatusBadRequest)
		return
	}

	if req.Recipient == "" {
		responseJSON(w, &APIResponse{
			Status:  "error",
			Field:   "recipient",
			Message: "Destination chain recipient not provided",
		}, http.StatusBadRequest)
		return
	}

	amount := parseAmount(w, "amount", req.Amount)
	if amount == nil {
		return
	}

	nonce, err := bridgePool.LockForBridge(common.HexToAddress(req.Address), amount, req.DestChain, req.Recipient)
	if err != nil {
		log.Printf("Error locking %s for bridge from %s: %v", req.Amount, req.Address, err)
		responseError(w, err)
		return
	}

	responseJSON(w, &AmountResponse{
		Status: "ok",
		Amount: amount.String(),
		Nonce:  nonce,
	}, http.StatusOK)
}
