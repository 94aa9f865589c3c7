package handlers

import (
	"log"
	"net/http"
	"strconv"

	ethav "github.com/KOREAN139/ethereum-address-validator"
	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi"
)

func FeeRate(w http.ResponseWriter, r *http.Request) {
	responseJSON(w, &FeeResponse{
		Status:     "ok",
		FeeRateBps: bridgePool.FeeRateBps(),
	}, http.StatusOK)
}

// Shares returns a provider's LP share balance.
func Shares(w http.ResponseWriter, r *http.Request) {
	addr, ok := pathAddress(w, r)
	if !ok {
		return
	}
	responseJSON(w, &ValueResponse{
		Status:  "ok",
		Address: addr.Hex(),
		Value:   bridgePool.SharesOf(addr).String(),
	}, http.StatusOK)
}

// Value returns the stablecoin value currently backing a provider's shares.
func Value(w http.ResponseWriter, r *http.Request) {
	addr, ok := pathAddress(w, r)
	if !ok {
		return
	}
	responseJSON(w, &ValueResponse{
		Status:  "ok",
		Address: addr.Hex(),
		Value:   bridgePool.ValueOf(addr).String(),
	}, http.StatusOK)
}

// Executed reports whether a bridge nonce is currently executed.
func Executed(w http.ResponseWriter, r *http.Request) {
	nonce, err := strconv.ParseUint(chi.URLParam(r, "nonce"), 10, 64)
	if err != nil {
		responseJSON(w, &APIResponse{
			Status:  "error",
			Field:   "nonce",
			Message: "Nonce must be an unsigned integer",
		}, http.StatusBadRequest)
		return
	}
	responseJSON(w, &ExecutedResponse{
		Status:   "ok",
		Nonce:    nonce,
		Executed: bridgePool.IsExecuted(nonce),
	}, http.StatusOK)
}

func pathAddress(w http.ResponseWriter, r *http.Request) (common.Address, bool) {
	raw := chi.URLParam(r, "address")
	if err := ethav.Validate(common.HexToAddress(raw).Hex()); err != nil {
		log.Printf("Error validating address '%s': %s\n", raw, err.Error())
		responseJSON(w, &APIResponse{
			Status:  "error",
			Field:   "address",
			Message: "No address or invalid address provided",
		}, http.StatusBadRequest)
		return common.Address{}, false
	}
	return common.HexToAddress(raw), true
}
