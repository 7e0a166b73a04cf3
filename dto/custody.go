package dto

// CreateAccountRequest ... Custody account creation payload
type CreateAccountRequest struct {
	Name string `json:"name"`
}

// CustodyAccount ... Custody account resource
type CustodyAccount struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// CustodyTransferRequest ... Primary-path transfer payload. Asset is the
// native marker or a contract address; Amount is in smallest units.
type CustodyTransferRequest struct {
	Network string `json:"network"`
	To      string `json:"to"`
	Asset   string `json:"asset"`
	Amount  string `json:"amount"`
}

// CustodyTransferResponse ... Primary-path transfer result
type CustodyTransferResponse struct {
	TransactionHash string `json:"transactionHash"`
	Status          string `json:"status,omitempty"`
}

// ExportKeyResponse ... Signing key export used by the local fallback path
type ExportKeyResponse struct {
	PrivateKey string `json:"privateKey"`
}

// CustodyErr ... Error envelope returned by the custody service
type CustodyErr struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
