package model

// Account links a caller-supplied logical name to its custody-managed
// chain address. Provisioning is idempotent per name.
type Account struct {
	Name    string `json:"accountName"`
	Address string `json:"address"`
}
