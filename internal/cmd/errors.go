package cmd

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"spotweb/internal/errors"
)

// requestError is a failed API call as shown to the user. It keeps the
// original error reachable through Unwrap.
type requestError struct {
	message string
	err     error
}

func (e *requestError) Error() string {
	return e.message
}

func (e *requestError) Unwrap() error {
	return e.err
}

// describeError adds the API's own error message and any Retry-After hint
// to a transport failure, the target URL to a network failure, and the token
// endpoint's reason to an authentication failure. Other errors are returned
// unchanged.
func describeError(err error) error {
	var transportErr *errors.TransportError

	switch {
	case errors.IsAuthentication(err):
		var authErr *errors.AuthenticationError
		if stderrors.As(err, &authErr) && authErr.Err != nil {
			return &requestError{message: fmt.Sprintf("%s: %s", authErr.Error(), tokenErrorReason(authErr.Err)), err: err}
		}
		return err

	case errors.IsNetwork(err):
		if stderrors.As(err, &transportErr) {
			return &requestError{message: fmt.Sprintf("could not reach %s: %s", transportErr.URL, transportErr.Message), err: err}
		}
		return err
	}

	if _, ok := errors.StatusCode(err); !ok || !stderrors.As(err, &transportErr) {
		return err
	}

	message := transportErr.Message
	if detail := apiErrorMessage(transportErr.Response.Data); detail != "" {
		message = fmt.Sprintf("%s: %s", message, detail)
	}
	if errors.IsRateLimited(err) {
		if wait, ok := errors.RetryAfter(err); ok {
			message = fmt.Sprintf("%s (retry after %s)", message, wait)
		}
	}

	return &requestError{message: message, err: err}
}

// errorHint suggests what to do about err, or returns "" when there is
// nothing useful to add.
func errorHint(err error) string {
	if _, ok := errors.StatusCode(err); ok {
		switch {
		case errors.IsRateLimited(err):
			return "wait before sending the request again; spotweb does not retry"
		case errors.IsHTTPStatus(err, http.StatusUnauthorized):
			return "the access token was rejected or has expired; pass a new one with --token or SPOTWEB_TOKEN"
		case errors.IsUnauthorized(err):
			return "the access token lacks the scope or account permission this endpoint needs"
		case errors.IsNotFound(err):
			return "check the request path and the IDs in it"
		}
		return ""
	}

	switch {
	case errors.IsNetwork(err):
		return "check base_url and your network connection"
	case errors.IsAuthentication(err):
		return "check client_id, client_secret and token_url"
	case errors.IsConfiguration(err):
		return "check 'spotweb config show' and any SPOTWEB_* environment variables"
	case errors.IsValidation(err):
		return "run the command with --help for usage"
	}
	return ""
}

// apiErrorMessage extracts the message from a Web API error body
// ({"error":{"status":..,"message":..}}) or an accounts service error body
// ({"error":"..","error_description":".."}).
func apiErrorMessage(data any) string {
	body, ok := data.(map[string]any)
	if !ok {
		return ""
	}

	switch e := body["error"].(type) {
	case map[string]any:
		if message, ok := e["message"].(string); ok {
			return message
		}
	case string:
		if description, ok := body["error_description"].(string); ok && description != "" {
			return fmt.Sprintf("%s (%s)", e, description)
		}
		return e
	}
	return ""
}

func tokenErrorReason(err error) string {
	var retrieveErr *oauth2.RetrieveError
	if !stderrors.As(err, &retrieveErr) || retrieveErr.ErrorCode == "" {
		return err.Error()
	}
	if retrieveErr.ErrorDescription != "" {
		return fmt.Sprintf("%s (%s)", retrieveErr.ErrorCode, retrieveErr.ErrorDescription)
	}
	return retrieveErr.ErrorCode
}
