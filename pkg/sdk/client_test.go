package sdk_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/annthusiaast/lexctl/pkg/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func bearerClient(token string) *http.Client {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	return oauth2.NewClient(context.Background(), source)
}

func TestUnreachableBackendIsNetworkFailure(t *testing.T) {
	client := sdk.NewClient("http://127.0.0.1:1")

	_, err := client.Login(context.Background(), "ada@firm.example", "hunter2")
	require.Error(t, err)
	assert.Equal(t, sdk.KindNetworkFailure, sdk.KindOf(err))
}

func TestSlowBackendIsNetworkTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	client := sdk.NewClient(server.URL, sdk.WithTimeout(50*time.Millisecond))
	_, err := client.Login(context.Background(), "ada@firm.example", "hunter2")
	require.Error(t, err)
	assert.Equal(t, sdk.KindNetworkTimeout, sdk.KindOf(err))
}

func TestCallerDeadlineWins(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	// The client default is generous; the caller's context must cut it short.
	client := sdk.NewClient(server.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.Login(ctx, "ada@firm.example", "hunter2")
	require.Error(t, err)
	assert.Equal(t, sdk.KindNetworkTimeout, sdk.KindOf(err))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRequestCarriesRequestID(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"pending_user_id":"42"}`))
	}))
	t.Cleanup(server.Close)

	client := sdk.NewClient(server.URL)
	_, err := client.Login(context.Background(), "ada@firm.example", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}

func TestErrorKindOfPlainError(t *testing.T) {
	assert.Equal(t, sdk.KindUnknown, sdk.KindOf(assert.AnError))
	assert.Equal(t, sdk.KindUnknown, sdk.KindOf(nil))
}
