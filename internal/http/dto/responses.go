package dto

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Network  string `json:"network"`
	ChainID  int    `json:"chain_id"`
	Database string `json:"database"`
	Testnet  bool   `json:"testnet"`
}

type RootResponse struct {
	Message string `json:"message"`
	Health  string `json:"health"`
	Version string `json:"version"`
}
