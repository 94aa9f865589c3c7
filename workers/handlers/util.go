package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"math/big"
	"net/http"

	"gostablebridge/types"
)

func responseJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

// decodeRequest reads and unmarshals the body; on failure it writes the
// error response and returns false.
func decodeRequest(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %s", err.Error())
		responseJSON(w, &APIResponse{
			Status:  "error",
			Message: "Error reading request body",
		}, http.StatusBadRequest)
		return false
	}

	if err := json.Unmarshal(body, v); err != nil {
		log.Printf("Error unmarshalling request body: %s\n", err.Error())
		responseJSON(w, &APIResponse{
			Status:  "error",
			Message: "Cannot unmarshal input JSON",
		}, http.StatusBadRequest)
		return false
	}
	return true
}

// parseAmount parses a decimal base-unit amount; nil result means the
// error response was already written.
func parseAmount(w http.ResponseWriter, field, value string) *big.Int {
	amount, ok := big.NewInt(0).SetString(value, 10)
	if !ok || amount.Sign() < 0 {
		responseJSON(w, &APIResponse{
			Status:  "error",
			Field:   field,
			Message: "Amount must be a decimal integer in base units",
		}, http.StatusBadRequest)
		return nil
	}
	return amount
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, types.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, types.ErrPaused):
		return http.StatusServiceUnavailable
	case errors.Is(err, types.ErrLockNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrNonceAlreadyUsed),
		errors.Is(err, types.ErrBridgeNotExecuted),
		errors.Is(err, types.ErrLockAlreadyReleased):
		return http.StatusConflict
	case errors.Is(err, types.ErrZeroAmount),
		errors.Is(err, types.ErrZeroAddress),
		errors.Is(err, types.ErrInvalidFeeRate),
		errors.Is(err, types.ErrInsufficientLiquidity),
		errors.Is(err, types.ErrInsufficientShares),
		errors.Is(err, types.ErrLockLimitExceeded):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func responseError(w http.ResponseWriter, err error) {
	responseJSON(w, &APIResponse{
		Status:  "error",
		Message: err.Error(),
	}, statusForError(err))
}
