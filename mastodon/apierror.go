package mastodon

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Mastodon error entity, the body of non-successful responses. 'error' is always set; 'error_description' only comes with OAuth failures.
type ErrorEntity struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// Non-successful API response. Entity is nil when the body was not a Mastodon error entity (eg, an HTML page from a proxy).
type APIError struct {
	StatusCode int
	Entity     *ErrorEntity
}

func (ae *APIError) Error() string {
	msg := fmt.Sprintf("mastodon: HTTP %d", ae.StatusCode)
	if text := http.StatusText(ae.StatusCode); text != "" {
		msg += " " + text
	}
	if ae.Entity == nil || ae.Entity.Error == "" {
		return msg
	}
	msg += ": " + ae.Entity.Error
	if ae.Entity.Description != "" {
		msg += " (" + ae.Entity.Description + ")"
	}
	return msg
}

// Builds the error for a non-2xx response, consuming its body.
func readAPIError(resp *http.Response) *APIError {
	ae := &APIError{StatusCode: resp.StatusCode}
	var ent ErrorEntity
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64*1024)).Decode(&ent); err == nil && ent.Error != "" {
		ae.Entity = &ent
	}
	return ae
}
