package bitvavo

import (
	"encoding/json"

	"bitvavo-api/pkg/exchanges/common"
)

// errorEnvelope is the body of every non-2xx response.
type errorEnvelope struct {
	ErrorCode int64  `json:"errorCode"`
	Error     string `json:"error"`
}

// decodeResponse turns a status and body into out or a typed error. The
// status alone picks the path: a success body is never read as an error
// envelope and an error body is never read as a success value.
func decodeResponse(status int, body []byte, out any) error {
	if status >= 200 && status < 300 {
		if err := json.Unmarshal(body, out); err != nil {
			return &CodecError{Err: err}
		}
		if err := common.CheckRequired(body, out); err != nil {
			return &CodecError{Err: err}
		}
		return nil
	}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &CodecError{Err: err}
	}
	if err := common.CheckRequired(body, &env); err != nil {
		return &CodecError{Err: err}
	}
	return &ExchangeError{
		Status:  status,
		Code:    env.ErrorCode,
		Message: env.Error,
	}
}
