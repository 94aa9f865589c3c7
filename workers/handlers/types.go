package handlers

type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type DepositRequest struct {
	Address string `json:"address"`
	Amount  string `json:"amount"` // base units, decimal string
}

type WithdrawRequest struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
}

type ExecuteReleaseRequest struct {
	Recipient   string `json:"recipient"`
	Amount      string `json:"amount"` // gross amount before fee
	SourceChain uint64 `json:"sourceChain"`
	Nonce       uint64 `json:"nonce"`
}

type RevertBridgeRequest struct {
	Nonce uint64 `json:"nonce"`
}

type LockRequest struct {
	Address   string `json:"address"`
	Amount    string `json:"amount"`
	DestChain uint64 `json:"destChain"`
	Recipient string `json:"recipient"` // destination-chain address, opaque here
}

type ReleaseLockRequest struct {
	Nonce uint64 `json:"nonce"`
}

type FeeRateRequest struct {
	FeeRateBps uint64 `json:"feeRateBps"`
}

type PauseRequest struct {
	Paused bool `json:"paused"`
}

type AmountResponse struct {
	Status string `json:"status"`
	Amount string `json:"amount"`
	Shares string `json:"shares,omitempty"`
	Nonce  uint64 `json:"nonce,omitempty"`
}

type ValueResponse struct {
	Status  string `json:"status"`
	Address string `json:"address"`
	Value   string `json:"value"`
}

type ExecutedResponse struct {
	Status   string `json:"status"`
	Nonce    uint64 `json:"nonce"`
	Executed bool   `json:"executed"`
}

type FeeResponse struct {
	Status     string `json:"status"`
	FeeRateBps uint64 `json:"feeRateBps"`
}
