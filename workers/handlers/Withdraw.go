package handlers

import (
	"log"
	"net/http"

	ethav "github.com/KOREAN139/ethereum-address-validator"
	"github.com/ethereum/go-ethereum/common"
)

func Withdraw(w http.ResponseWriter, r *http.Request) {
	var req WithdrawRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if err := ethav.Validate(common.HexToAddress(req.Address).Hex()); err != nil {
		log.Printf("Error validating provider address '%s': %s\n", req.Address, err.Error())
		responseJSON(w, &APIResponse{
			Status:  "error",
			Field:   "address",
			Message: "No provider address or invalid address provided",
		}, http.StatusBadRequest)
		return
	}

	amount := parseAmount(w, "amount", req.Amount)
	if amount == nil {
		return
	}

	burned, err := bridgePool.Withdraw(common.HexToAddress(req.Address), amount)
	if err != nil {
		log.Printf("Error withdrawing %s for %s: %v", req.Amount, req.Address, err)
		responseError(w, err)
		return
	}

	responseJSON(w, &AmountResponse{
		Status: "ok",
		Amount: amount.String(),
		Shares: burned.String(),
	}, http.StatusOK)
}
