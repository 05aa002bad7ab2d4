package sdk

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"
)

// ListCases returns every case visible to the authenticated user.
func (c *Client) ListCases(ctx context.Context) ([]Case, error) {
	var cases []Case
	if err := c.getJSON(ctx, "/cases", &cases); err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	return cases, nil
}

// GetCase retrieves a single case by GUID.
func (c *Client) GetCase(ctx context.Context, guid string) (*Case, error) {
	var result Case
	if err := c.getJSON(ctx, "/cases/"+url.PathEscape(guid), &result); err != nil {
		return nil, fmt.Errorf("failed to get case %s: %w", guid, err)
	}
	return &result, nil
}

// CreateCase creates a new case. When GUID is empty a random UUID is
// generated client-side so a retried request is idempotent.
func (c *Client) CreateCase(ctx context.Context, input CreateCaseInput) (*Case, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("case title is required")
	}
	if input.GUID == "" {
		input.GUID = uuid.NewString()
	}
	var result Case
	if err := c.postJSON(ctx, "/cases", input, &result); err != nil {
		return nil, fmt.Errorf("failed to create case: %w", err)
	}
	return &result, nil
}

// UpdateCaseStatus moves a case to a new workflow status.
func (c *Client) UpdateCaseStatus(ctx context.Context, guid, status string) (*Case, error) {
	body := map[string]string{"status": status}
	var result Case
	if err := c.putJSON(ctx, "/cases/"+url.PathEscape(guid)+"/status", body, &result); err != nil {
		return nil, fmt.Errorf("failed to update case status: %w", err)
	}
	return &result, nil
}

// ListTasks returns tasks, optionally filtered to one case.
func (c *Client) ListTasks(ctx context.Context, caseGUID string) ([]Task, error) {
	path := "/tasks"
	if caseGUID != "" {
		path += "?case=" + url.QueryEscape(caseGUID)
	}
	var tasks []Task
	if err := c.getJSON(ctx, path, &tasks); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask creates a new task.
func (c *Client) CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("task title is required")
	}
	if input.GUID == "" {
		input.GUID = uuid.NewString()
	}
	var result Task
	if err := c.postJSON(ctx, "/tasks", input, &result); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return &result, nil
}

// CompleteTask marks a task as done.
func (c *Client) CompleteTask(ctx context.Context, guid string) (*Task, error) {
	var result Task
	if err := c.putJSON(ctx, "/tasks/"+url.PathEscape(guid)+"/complete", nil, &result); err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}
	return &result, nil
}

// ListDocuments returns document metadata, optionally filtered to one case.
func (c *Client) ListDocuments(ctx context.Context, caseGUID string) ([]Document, error) {
	path := "/documents"
	if caseGUID != "" {
		path += "?case=" + url.QueryEscape(caseGUID)
	}
	var docs []Document
	if err := c.getJSON(ctx, path, &docs); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// GetDocument retrieves metadata for one document.
func (c *Client) GetDocument(ctx context.Context, guid string) (*Document, error) {
	var result Document
	if err := c.getJSON(ctx, "/documents/"+url.PathEscape(guid), &result); err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", guid, err)
	}
	return &result, nil
}

// ListContacts returns the client registry.
func (c *Client) ListContacts(ctx context.Context) ([]Contact, error) {
	var contacts []Contact
	if err := c.getJSON(ctx, "/clients", &contacts); err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return contacts, nil
}

// GetContact retrieves one registry entry.
func (c *Client) GetContact(ctx context.Context, guid string) (*Contact, error) {
	var result Contact
	if err := c.getJSON(ctx, "/clients/"+url.PathEscape(guid), &result); err != nil {
		return nil, fmt.Errorf("failed to get client %s: %w", guid, err)
	}
	return &result, nil
}

// CreateContact adds a client registry entry.
func (c *Client) CreateContact(ctx context.Context, input CreateContactInput) (*Contact, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("client name is required")
	}
	if input.GUID == "" {
		input.GUID = uuid.NewString()
	}
	var result Contact
	if err := c.postJSON(ctx, "/clients", input, &result); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return &result, nil
}

// ListPayments returns billing records, optionally filtered to one case.
func (c *Client) ListPayments(ctx context.Context, caseGUID string) ([]Payment, error) {
	path := "/payments"
	if caseGUID != "" {
		path += "?case=" + url.QueryEscape(caseGUID)
	}
	var payments []Payment
	if err := c.getJSON(ctx, path, &payments); err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}
