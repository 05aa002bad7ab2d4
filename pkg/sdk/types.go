package sdk

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// User is the authenticated user record returned by the backend. The SDK
// interprets only the identifier and role label; every other business field
// is carried opaquely in Profile so callers can render it without the SDK
// having to track the backend's schema.
type User struct {
	ID      string
	Role    string
	Name    string
	Email   string
	Profile map[string]any
}

// UnmarshalJSON accepts the backend's user shape, where user_id may arrive
// as a JSON number or string depending on the endpoint.
func (u *User) UnmarshalJSON(data []byte) error {
	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	u.Profile = raw
	u.ID = stringField(raw, "user_id", "id")
	u.Role = stringField(raw, "user_role", "role")
	u.Name = stringField(raw, "name", "full_name")
	u.Email = stringField(raw, "email")
	if u.ID == "" {
		return fmt.Errorf("user record has no user_id field")
	}
	return nil
}

// MarshalJSON round-trips the opaque profile so a cached user record
// survives a save/load cycle unchanged.
func (u User) MarshalJSON() ([]byte, error) {
	if u.Profile != nil {
		return json.Marshal(u.Profile)
	}
	return json.Marshal(map[string]any{
		"user_id":   u.ID,
		"user_role": u.Role,
		"name":      u.Name,
		"email":     u.Email,
	})
}

// stringField returns the first present key coerced to a string. Numeric
// identifiers are rendered without an exponent.
func stringField(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			return t
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64)
		case json.Number:
			return t.String()
		}
	}
	return ""
}

// Case is a legal matter tracked by the backend.
type Case struct {
	GUID       string    `json:"guid"`
	Number     string    `json:"case_number"`
	Title      string    `json:"title"`
	ClientID   string    `json:"client_id"`
	AssigneeID string    `json:"assignee_id"`
	Status     string    `json:"status"`
	FiledAt    time.Time `json:"filed_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateCaseInput describes a new case. When GUID is empty the SDK
// generates one client-side so retries are idempotent.
type CreateCaseInput struct {
	GUID     string `json:"guid,omitempty"`
	Title    string `json:"title"`
	ClientID string `json:"client_id"`
}

// Task is a to-do item, optionally attached to a case.
type Task struct {
	GUID      string    `json:"guid"`
	CaseGUID  string    `json:"case_guid,omitempty"`
	Title     string    `json:"title"`
	DueAt     time.Time `json:"due_at"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateTaskInput describes a new task.
type CreateTaskInput struct {
	GUID     string    `json:"guid,omitempty"`
	CaseGUID string    `json:"case_guid,omitempty"`
	Title    string    `json:"title"`
	DueAt    time.Time `json:"due_at,omitempty"`
}

// Document is metadata for a file stored against a case.
type Document struct {
	GUID       string    `json:"guid"`
	CaseGUID   string    `json:"case_guid"`
	Name       string    `json:"name"`
	MimeType   string    `json:"mime_type"`
	SizeBytes  int64     `json:"size_bytes"`
	UploadedAt time.Time `json:"uploaded_at"`
	URL        string    `json:"url"`
}

// Contact is a client (person or organization) in the registry.
type Contact struct {
	GUID      string    `json:"guid"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateContactInput describes a new client registry entry.
type CreateContactInput struct {
	GUID  string `json:"guid,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Payment is a billing record attached to a case.
type Payment struct {
	GUID        string    `json:"guid"`
	CaseGUID    string    `json:"case_guid"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	PaidAt      time.Time `json:"paid_at"`
}
