package client

import (
	"context"
	"net/http"
	"sync"

	"github.com/annthusiaast/lexctl/pkg/sdk"
	"github.com/annthusiaast/lexctl/pkg/session"
	"golang.org/x/oauth2"
)

// Provider assembles the session store, the token-bearing HTTP client, the
// SDK client, and the session manager, each exactly once per process.
type Provider struct {
	serverURL string
	storePath string // when set, overrides ~/.lexctl/session.json (tests)

	storeOnce sync.Once
	store     session.Store
	storeErr  error

	httpOnce sync.Once
	httpCli  *http.Client
	httpErr  error

	sdkOnce sync.Once
	sdkCli  *sdk.Client
	sdkErr  error

	sessionOnce sync.Once
	sess        *session.Manager
	sessErr     error
}

// NewProvider constructs a Provider bound to the given server URL.
func NewProvider(serverURL string) *Provider {
	return &Provider{serverURL: serverURL}
}

// SetStorePath overrides the session cache location (for tests).
func (p *Provider) SetStorePath(path string) {
	p.storePath = path
}

// Store returns the durable session store.
func (p *Provider) Store() (session.Store, error) {
	p.storeOnce.Do(func() {
		if p.storePath != "" {
			p.store = session.NewFileStoreAt(p.storePath)
			return
		}
		p.store, p.storeErr = session.NewFileStore()
	})
	return p.store, p.storeErr
}

// HTTPClient returns an http.Client that attaches the cached bearer token
// when one exists. The token is the ambient credential: the SDK's contract
// is only that the transport supplies whatever the backend requires.
func (p *Provider) HTTPClient() (*http.Client, error) {
	p.httpOnce.Do(func() {
		store, err := p.Store()
		if err != nil {
			p.httpErr = err
			return
		}

		snap, err := store.Load()
		if err != nil || snap == nil || snap.Token == "" {
			// Anonymous transport; protected endpoints will answer 401
			// and the session manager reports the state accordingly.
			p.httpCli = http.DefaultClient
			return
		}

		token := &oauth2.Token{
			AccessToken: snap.Token,
			TokenType:   "Bearer",
		}
		source := oauth2.StaticTokenSource(token)
		p.httpCli = oauth2.NewClient(context.Background(), source)
	})
	return p.httpCli, p.httpErr
}

// SDKClient returns the backend client backed by HTTPClient.
func (p *Provider) SDKClient() (*sdk.Client, error) {
	p.sdkOnce.Do(func() {
		httpClient, err := p.HTTPClient()
		if err != nil {
			p.sdkErr = err
			return
		}
		p.sdkCli = sdk.NewClient(p.serverURL, sdk.WithHTTPClient(httpClient))
	})
	return p.sdkCli, p.sdkErr
}

// Session returns the process-wide session manager.
func (p *Provider) Session() (*session.Manager, error) {
	p.sessionOnce.Do(func() {
		api, err := p.SDKClient()
		if err != nil {
			p.sessErr = err
			return
		}
		store, err := p.Store()
		if err != nil {
			p.sessErr = err
			return
		}
		p.sess = session.NewManager(api, store)
	})
	return p.sess, p.sessErr
}
