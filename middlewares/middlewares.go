package middlewares

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	uuid "github.com/satori/go.uuid"

	"wallet-engine/utility"
	"wallet-engine/utility/errorcode"
	"wallet-engine/utility/logger"
	"wallet-engine/utility/response"
)

// Middleware ... Middleware struct
type Middleware struct {
	next http.Handler
}

// NewMiddleware ... Creates a middleware instance
func NewMiddleware(handler http.Handler) *Middleware {
	return &Middleware{handler}
}

// Build ... Build middleware functions
func (m *Middleware) Build() http.Handler {
	return m.next
}

// LogAPIRequests ... Tags every request with an id and logs it
func (m *Middleware) LogAPIRequests() *Middleware {
	nextHandler := http.HandlerFunc(func(responseWriter http.ResponseWriter, requestReader *http.Request) {
		requestID := requestReader.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewV4().String()
		}
		responseWriter.Header().Set("X-Request-ID", requestID)
		logger.Info(fmt.Sprintf("Incoming request %s from : %s with IP : %s to : %s", requestID, requestReader.UserAgent(), utility.GetIPAddress(requestReader), requestReader.URL.Path))
		m.next.ServeHTTP(responseWriter, requestReader)
	})

	return &Middleware{nextHandler}
}

// Recover ... Converts handler panics into a 500 envelope and reports them
func (m *Middleware) Recover() *Middleware {
	nextHandler := http.HandlerFunc(func(responseWriter http.ResponseWriter, requestReader *http.Request) {
		defer func() {
			if recovered := recover(); recovered != nil {
				logger.Error("Recovered from panic serving %s : %+v", requestReader.URL.Path, recovered)
				sentry.CurrentHub().Recover(recovered)
				sentry.Flush(2 * time.Second)

				apiResponse := response.New()
				responseWriter.Header().Set("Content-Type", "application/json")
				responseWriter.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(responseWriter).Encode(apiResponse.PlainError(errorcode.SYSTEM_ERROR, errorcode.SYSTEM_ERR))
			}
		}()
		m.next.ServeHTTP(responseWriter, requestReader)
	})

	return &Middleware{nextHandler}
}
