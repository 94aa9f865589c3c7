package handlers

import (
	"log"
	"net/http"

	ethav "github.com/KOREAN139/ethereum-address-validator"
	"github.com/ethereum/go-ethereum/common"
)

// ExecuteRelease pays out a bridge intent the relayer verified off-chain.
// Relayer API key required.
func ExecuteRelease(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req ExecuteReleaseRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if err := ethav.Validate(common.HexToAddress(req.Recipient).Hex()); err != nil {
		log.Printf("Error validating recipient address '%s': %s\n", req.Recipient, err.Error())
		responseJSON(w, &APIResponse{
			Status:  "error",
			Field:   "recipient",
			Message: "No recipient address or invalid address provided",
		}, http.StatusBadRequest)
		return
	}

	gross := parseAmount(w, "amount", req.Amount)
	if gross == nil {
		return
	}

	net, err := bridgePool.ExecuteBridgeRelease(caller, common.HexToAddress(req.Recipient), gross, req.SourceChain, req.Nonce)
	if err != nil {
		log.Printf("Error executing release nonce %d: %v", req.Nonce, err)
		responseError(w, err)
		return
	}

	responseJSON(w, &AmountResponse{
		Status: "ok",
		Amount: net.String(),
		Nonce:  req.Nonce,
	}, http.StatusOK)
}
