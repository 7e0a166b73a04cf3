package response

// ErrorBody ... Machine-readable error payload of a failed response
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ResponseObj ... Response envelope returned by every endpoint
type ResponseObj struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// New ... Initializes a response builder
func New() ResponseObj {
	return ResponseObj{}
}

// Successful ... Returns a successful response wrapping the given data
func (res ResponseObj) Successful(data interface{}) ResponseObj {
	res.Success = true
	res.Data = data
	res.Error = nil
	return res
}

// PlainError ... Returns an error response with code and message only
func (res ResponseObj) PlainError(code string, msg string) ResponseObj {
	res.Success = false
	res.Data = nil
	res.Error = &ErrorBody{Code: code, Message: msg}
	return res
}

// DetailedError ... Returns an error response carrying extra details
func (res ResponseObj) DetailedError(code string, msg string, details interface{}) ResponseObj {
	res.Success = false
	res.Data = nil
	res.Error = &ErrorBody{Code: code, Message: msg, Details: details}
	return res
}
