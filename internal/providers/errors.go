package providers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

type ErrorType string

const (
	ErrorQuota     ErrorType = "quota"
	ErrorRate      ErrorType = "rate"
	ErrorTransient ErrorType = "transient"
	ErrorPermanent ErrorType = "permanent"
	ErrorContext   ErrorType = "context"
)

// StatusError is returned by the HTTP bindings in this package when the
// upstream answers with a non-2xx status.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s generate error %d: %s", e.Provider, e.StatusCode, e.Body)
}

// Retryable reports whether a failure of this class is worth another attempt.
func (t ErrorType) Retryable() bool {
	return t == ErrorRate || t == ErrorQuota
}

// ClassifyError prefers status codes carried by typed errors and only falls
// back to message matching for bindings that return plain errors.
func ClassifyError(err error) ErrorType {
	if err == nil {
		return ""
	}
	var se *StatusError
	if errors.As(err, &se) {
		return classifyStatus(se.StatusCode, se.Body)
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.Code, apiErr.Status+" "+apiErr.Message)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return classifyStatus(apiErrPtr.Code, apiErrPtr.Status+" "+apiErrPtr.Message)
	}
	return classifyMessage(err.Error())
}

func classifyStatus(code int, detail string) ErrorType {
	low := strings.ToLower(detail)
	switch {
	case code == http.StatusTooManyRequests && strings.Contains(low, "quota"):
		return ErrorQuota
	case code == http.StatusTooManyRequests:
		return ErrorRate
	case code == http.StatusRequestEntityTooLarge:
		return ErrorContext
	case code == http.StatusRequestTimeout, code >= 500:
		return ErrorTransient
	case code == 0:
		return classifyMessage(detail)
	default:
		return ErrorPermanent
	}
}

func classifyMessage(msg string) ErrorType {
	e := strings.ToLower(msg)
	switch {
	case strings.Contains(e, "quota"):
		return ErrorQuota
	case strings.Contains(e, "429"):
		return ErrorRate
	case strings.Contains(e, "timeout"), strings.Contains(e, "deadline exceeded"), strings.Contains(e, "temporarily"), strings.Contains(e, "unavailable"):
		return ErrorTransient
	case strings.Contains(e, "context length"), strings.Contains(e, "too long"):
		return ErrorContext
	default:
		return ErrorPermanent
	}
}
