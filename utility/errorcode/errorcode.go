package errorcode

// Machine-readable error codes returned in the response envelope.
const (
	INVALID_REQUEST      = "INVALID_REQUEST"
	SERVICE_UNAVAILABLE  = "SERVICE_UNAVAILABLE"
	FETCH_TOKENS_FAILED  = "FETCH_TOKENS_FAILED"
	FETCH_NFTS_FAILED    = "FETCH_NFTS_FAILED"
	FETCH_HISTORY_FAILED = "FETCH_HISTORY_FAILED"
	SEND_FAILED          = "SEND_FAILED"
	SEND_NFT_FAILED      = "SEND_NFT_FAILED"
	SYSTEM_ERROR         = "SYSTEM_ERROR"
)

// Human-readable message fragments.
var (
	SUCCESS                = "Request processed successfully"
	INPUT_ERR              = "Invalid input supplied. See documentation"
	SYSTEM_ERR             = "Request could not be processed. Server encountered an error"
	VALIDATION_ERR         = "Validation failed for some fields"
	CUSTODY_CONFIG_ERR     = "Custody service credentials are not configured"
	CUSTODY_UNAVAILABLE    = "Custody service could not process the request"
	UNKNOWN_NETWORK_ERR    = "Network is not supported"
	INVALID_ADDRESS_ERR    = "Recipient address is not a valid hex address"
	INVALID_AMOUNT_ERR     = "Amount must be a positive integer string in smallest units"
	INVALID_ASSET_ERR      = "Token must be the native marker, a known alias or a 0x contract address"
	ALL_NETWORKS_FAILED    = "Every supported network failed to respond"
	ALL_PATHS_FAILED       = "Transfer failed on every execution path"
	ACCOUNT_NOT_FOUND      = "No custody account exists for the given name"
)
