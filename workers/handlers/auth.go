package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"gostablebridge/config"

	"github.com/ethereum/go-ethereum/common"
)

// callerAddress resolves the request's API key to the configured on-ledger
// identity. The pool re-checks the capability by address, this only maps
// credential to caller. Comparison is constant-time.
func callerAddress(r *http.Request) (common.Address, bool) {
	token := extractToken(r)
	if token == "" {
		return common.Address{}, false
	}

	cfg := config.Config.Auth
	if cfg.AdminKey != "" && subtle.ConstantTimeCompare([]byte(token), []byte(cfg.AdminKey)) == 1 {
		return common.HexToAddress(cfg.AdminAddress), true
	}
	for _, rc := range cfg.Relayers {
		if rc.Key != "" && subtle.ConstantTimeCompare([]byte(token), []byte(rc.Key)) == 1 {
			return common.HexToAddress(rc.Address), true
		}
	}
	return common.Address{}, false
}

// extractToken looks for a token in the Authorization header (Bearer
// scheme) or in the X-API-Key header.
func extractToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	if key := r.Header.Get("X-API-Key"); key != "" {
		return strings.TrimSpace(key)
	}

	return ""
}

func requireCaller(w http.ResponseWriter, r *http.Request) (common.Address, bool) {
	caller, ok := callerAddress(r)
	if !ok {
		responseJSON(w, &APIResponse{
			Status:  "error",
			Message: "Missing or invalid API key",
		}, http.StatusUnauthorized)
		return common.Address{}, false
	}
	return caller, true
}
