package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// LoginResult carries the pending second-factor challenge returned by a
// successful credential submission. The caller is NOT authenticated yet.
type LoginResult struct {
	PendingUserID string
}

// VerifyResult carries the authenticated user and the bearer token the
// backend issued for subsequent requests.
type VerifyResult struct {
	User  *User
	Token string
}

// Login posts credentials to the backend. The canonical success shape is
// {"pending_user_id": ...}; the legacy top-level "user_id" alias is still
// accepted while older backend deployments drain. Any other 2xx shape is a
// malformed response reported with the field names actually present.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	status, data, err := c.roundTrip(ctx, http.MethodPost, "/login", body)
	if err != nil {
		return nil, err
	}

	if status < 200 || status >= 300 {
		if status == http.StatusUnauthorized || status == http.StatusForbidden || status == http.StatusBadRequest {
			e := newError(KindInvalidCredentials, backendMessage(data))
			e.HTTPStatus = status
			return nil, e
		}
		e := newError(KindMalformedResponse, fmt.Sprintf("unexpected status: %s", backendMessage(data)))
		e.HTTPStatus = status
		return nil, e
	}

	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		e := wrapError(KindMalformedResponse, "login response is not a JSON object", err)
		e.HTTPStatus = status
		return nil, e
	}

	pendingID := rawStringField(raw, "pending_user_id")
	if pendingID == "" {
		// Deprecated alias kept for pre-OTP-rollout backends.
		pendingID = rawStringField(raw, "user_id")
	}
	if pendingID == "" {
		e := newError(KindMalformedResponse, "login response has no pending_user_id")
		e.HTTPStatus = status
		e.Fields = fieldNames(raw)
		return nil, e
	}

	return &LoginResult{PendingUserID: pendingID}, nil
}

// VerifyPasscode posts the one-time passcode for the pending user. On
// success the returned token becomes the ambient credential for all
// subsequent protected requests.
func (c *Client) VerifyPasscode(ctx context.Context, pendingUserID, code string) (*VerifyResult, error) {
	body := map[string]string{"user_id": pendingUserID, "code": code}
	status, data, err := c.roundTrip(ctx, http.MethodPost, "/verify-2fa", body)
	if err != nil {
		return nil, err
	}

	if status < 200 || status >= 300 {
		e := newError(KindVerificationFailed, backendMessage(data))
		e.HTTPStatus = status
		return nil, e
	}

	var payload struct {
		User  *User  `json:"user"`
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.User == nil {
		raw := map[string]json.RawMessage{}
		_ = json.Unmarshal(data, &raw)
		e := newError(KindMalformedResponse, "verify response has no user record")
		e.HTTPStatus = status
		e.Fields = fieldNames(raw)
		if err != nil {
			e.cause = err
		}
		return nil, e
	}

	return &VerifyResult{User: payload.User, Token: payload.Token}, nil
}

// ResendPasscode re-triggers passcode issuance for the pending user. No
// session-state-relevant fields come back.
func (c *Client) ResendPasscode(ctx context.Context, pendingUserID string) error {
	body := map[string]string{"user_id": pendingUserID}
	status, data, err := c.roundTrip(ctx, http.MethodPost, "/resend-otp", body)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		e := newError(KindVerificationFailed, backendMessage(data))
		e.HTTPStatus = status
		return e
	}
	return nil
}

// VerifySession asks the backend whether the ambient credential still
// identifies an authenticated session. A definitive "no" is (nil, false,
// nil); only transport or contract problems produce an error, so callers
// can tell "logged out" from "could not check".
func (c *Client) VerifySession(ctx context.Context) (*User, bool, error) {
	status, data, err := c.roundTrip(ctx, http.MethodGet, "/verify", nil)
	if err != nil {
		return nil, false, err
	}

	if status == http.StatusUnauthorized {
		return nil, false, nil
	}
	if status < 200 || status >= 300 {
		e := newError(KindMalformedResponse, fmt.Sprintf("unexpected status: %s", backendMessage(data)))
		e.HTTPStatus = status
		return nil, false, e
	}

	var payload struct {
		User *User `json:"user"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.User == nil {
		raw := map[string]json.RawMessage{}
		_ = json.Unmarshal(data, &raw)
		e := newError(KindMalformedResponse, "verify response has no user record")
		e.HTTPStatus = status
		e.Fields = fieldNames(raw)
		if err != nil {
			e.cause = err
		}
		return nil, false, e
	}
	return payload.User, true, nil
}

// Logout asks the backend to invalidate its session state. Callers that
// must succeed locally regardless of connectivity ignore the error.
func (c *Client) Logout(ctx context.Context) error {
	status, data, err := c.roundTrip(ctx, http.MethodPost, "/logout", nil)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("logout returned HTTP %d: %s", status, backendMessage(data))
	}
	return nil
}

// rawStringField coerces a top-level field to a string, accepting both
// JSON strings and numbers (the backend sends numeric user ids).
func rawStringField(raw map[string]json.RawMessage, key string) string {
	msg, ok := raw[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(msg, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(msg, &n); err == nil {
		return n.String()
	}
	return ""
}
