package errors

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the JSON body written for failed requests
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Meta    map[string]interface{} `json:"meta,omitempty"`
}

// ToHTTPStatus maps an error to the HTTP status code it should be served with
func ToHTTPStatus(err error) int {
	return GetCode(err).HTTPStatus()
}

// WriteHTTP writes an error as a JSON response with the mapped status code.
// Internal causes are logged but never exposed in the response body.
func WriteHTTP(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	code := GetCode(err)
	resp := ErrorResponse{
		Code:    code.String(),
		Message: GetMessage(err),
		Meta:    GetMeta(err),
	}
	if code == CodeInternal {
		// Don't leak wrapped storage errors to clients
		resp.Message = "internal error"
		resp.Meta = nil
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code.HTTPStatus())
	if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
		slog.Error("failed to encode error response", "error", encErr)
	}
}
