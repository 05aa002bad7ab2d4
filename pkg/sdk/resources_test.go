package sdk_test

import (
	"context"
	"testing"

	"github.com/annthusiaast/lexctl/internal/apitest"
	"github.com/annthusiaast/lexctl/pkg/sdk"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedClient(t *testing.T, server *apitest.Server) *sdk.Client {
	t.Helper()
	account := server.AddAccount("ada@firm.example", "hunter2", "Lawyer", "123456")
	token := server.IssueToken(account)
	return sdk.NewClient(server.URL, sdk.WithHTTPClient(bearerClient(token)))
}

func TestListCases(t *testing.T) {
	server := apitest.New(t)
	server.Seed("cases", map[string]any{
		"guid": "c-1", "case_number": "2026-CV-001", "title": "Estate of Morales", "status": "open",
	})
	server.Seed("cases", map[string]any{
		"guid": "c-2", "case_number": "2026-CV-002", "title": "Reyes v. Tan", "status": "filed",
	})

	client := authedClient(t, server)
	cases, err := client.ListCases(context.Background())
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, "2026-CV-001", cases[0].Number)
	assert.Equal(t, "Reyes v. Tan", cases[1].Title)
}

func TestGetCaseNotFound(t *testing.T) {
	server := apitest.New(t)
	client := authedClient(t, server)

	_, err := client.GetCase(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestCreateCaseGeneratesGUID(t *testing.T) {
	server := apitest.New(t)
	client := authedClient(t, server)

	created, err := client.CreateCase(context.Background(), sdk.CreateCaseInput{
		Title:    "Estate of Morales",
		ClientID: "client-1",
	})
	require.NoError(t, err)
	_, parseErr := uuid.Parse(created.GUID)
	assert.NoError(t, parseErr, "generated case id must be a UUID")

	got, err := client.GetCase(context.Background(), created.GUID)
	require.NoError(t, err)
	assert.Equal(t, "Estate of Morales", got.Title)
}

func TestCreateCaseRequiresTitle(t *testing.T) {
	client := sdk.NewClient("http://127.0.0.1:1")
	_, err := client.CreateCase(context.Background(), sdk.CreateCaseInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title is required")
}

func TestUpdateCaseStatus(t *testing.T) {
	server := apitest.New(t)
	server.Seed("cases", map[string]any{"guid": "c-1", "title": "Estate of Morales", "status": "open"})

	client := authedClient(t, server)
	updated, err := client.UpdateCaseStatus(context.Background(), "c-1", "closed")
	require.NoError(t, err)
	assert.Equal(t, "closed", updated.Status)
}

func TestListTasksFiltersByCase(t *testing.T) {
	server := apitest.New(t)
	server.Seed("tasks", map[string]any{"guid": "t-1", "case_guid": "c-1", "title": "File motion"})
	server.Seed("tasks", map[string]any{"guid": "t-2", "case_guid": "c-2", "title": "Call client"})
	server.Seed("tasks", map[string]any{"guid": "t-3", "title": "Order supplies"})

	client := authedClient(t, server)

	all, err := client.ListTasks(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	filtered, err := client.ListTasks(context.Background(), "c-1")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "File motion", filtered[0].Title)
}

func TestCompleteTask(t *testing.T) {
	server := apitest.New(t)
	server.Seed("tasks", map[string]any{"guid": "t-1", "title": "File motion", "done": false})

	client := authedClient(t, server)
	task, err := client.CompleteTask(context.Background(), "t-1")
	require.NoError(t, err)
	assert.True(t, task.Done)
}

func TestContactsRoundTrip(t *testing.T) {
	server := apitest.New(t)
	client := authedClient(t, server)

	created, err := client.CreateContact(context.Background(), sdk.CreateContactInput{
		Name:  "Morales Holdings",
		Email: "legal@morales.example",
	})
	require.NoError(t, err)

	got, err := client.GetContact(context.Background(), created.GUID)
	require.NoError(t, err)
	assert.Equal(t, "Morales Holdings", got.Name)

	contacts, err := client.ListContacts(context.Background())
	require.NoError(t, err)
	assert.Len(t, contacts, 1)
}

func TestListPayments(t *testing.T) {
	server := apitest.New(t)
	server.Seed("payments", map[string]any{
		"guid": "p-1", "case_guid": "c-1", "amount_cents": 150000, "currency": "USD", "status": "paid",
	})

	client := authedClient(t, server)
	payments, err := client.ListPayments(context.Background(), "c-1")
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, int64(150000), payments[0].AmountCents)
}

func TestResourcesRequireCredential(t *testing.T) {
	server := apitest.New(t)
	anon := sdk.NewClient(server.URL)

	_, err := anon.ListCases(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 401")
}
