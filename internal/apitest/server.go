// Package apitest runs an in-process fake of the case management backend
// for SDK and session tests. It implements the same JSON contract the real
// backend serves: password login, OTP verification, bearer-guarded
// resources.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Account is one test user known to the fake backend.
type Account struct {
	ID       string
	Email    string
	Password string
	Code     string         // the OTP the backend will accept
	User     map[string]any // raw user record returned on verify
}

// Server is the fake backend. All fields guarded by mu; handlers run on the
// httptest server's goroutines.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	accounts map[string]*Account // by email
	byID     map[string]*Account // by user id
	tokens   map[string]*Account // bearer token -> account

	resends map[string]int // user id -> resend count

	// LoginResponse overrides the /login success body when set, letting
	// tests exercise alternate or malformed response shapes.
	LoginResponse func(a *Account) map[string]any

	cases     []map[string]any
	tasks     []map[string]any
	documents []map[string]any
	contacts  []map[string]any
	payments  []map[string]any
}

// New starts a fake backend and registers its shutdown with t.
func New(t *testing.T) *Server {
	t.Helper()
	s := &Server{
		accounts: map[string]*Account{},
		byID:     map[string]*Account{},
		tokens:   map[string]*Account{},
		resends:  map[string]int{},
	}

	r := mux.NewRouter()
	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/verify-2fa", s.handleVerify2FA).Methods(http.MethodPost)
	r.HandleFunc("/resend-otp", s.handleResendOTP).Methods(http.MethodPost)
	r.HandleFunc("/verify", s.handleVerifySession).Methods(http.MethodGet)
	r.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)

	protected := r.NewRoute().Subrouter()
	protected.Use(s.requireBearer)
	protected.HandleFunc("/cases", s.listOf(&s.cases)).Methods(http.MethodGet)
	protected.HandleFunc("/cases", s.createInto(&s.cases)).Methods(http.MethodPost)
	protected.HandleFunc("/cases/{guid}", s.getFrom(&s.cases)).Methods(http.MethodGet)
	protected.HandleFunc("/cases/{guid}/status", s.updateStatus).Methods(http.MethodPut)
	protected.HandleFunc("/tasks", s.listOf(&s.tasks)).Methods(http.MethodGet)
	protected.HandleFunc("/tasks", s.createInto(&s.tasks)).Methods(http.MethodPost)
	protected.HandleFunc("/tasks/{guid}/complete", s.completeTask).Methods(http.MethodPut)
	protected.HandleFunc("/documents", s.listOf(&s.documents)).Methods(http.MethodGet)
	protected.HandleFunc("/documents/{guid}", s.getFrom(&s.documents)).Methods(http.MethodGet)
	protected.HandleFunc("/clients", s.listOf(&s.contacts)).Methods(http.MethodGet)
	protected.HandleFunc("/clients", s.createInto(&s.contacts)).Methods(http.MethodPost)
	protected.HandleFunc("/clients/{guid}", s.getFrom(&s.contacts)).Methods(http.MethodGet)
	protected.HandleFunc("/payments", s.listOf(&s.payments)).Methods(http.MethodGet)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// AddAccount registers a test user and returns it. The user record served
// on verification uses the backend's numeric-flavored field names.
func (s *Server) AddAccount(email, password, role, code string) *Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := fmt.Sprintf("%d", len(s.byID)+41)
	a := &Account{
		ID:       id,
		Email:    email,
		Password: password,
		Code:     code,
		User: map[string]any{
			"user_id":   id,
			"user_role": role,
			"email":     email,
			"name":      strings.Split(email, "@")[0],
		},
	}
	s.accounts[email] = a
	s.byID[id] = a
	return a
}

// IssueToken mints a bearer token for the account, as if verification had
// already happened. Useful for tests that start authenticated.
func (s *Server) IssueToken(a *Account) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := uuid.NewString()
	s.tokens[token] = a
	return token
}

// RevokeAll invalidates every issued token, simulating server-side session
// expiry.
func (s *Server) RevokeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = map[string]*Account{}
}

// ResendCount reports how many passcode resends were requested for a user.
func (s *Server) ResendCount(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resends[userID]
}

// Seed appends a raw record to one of the resource collections
// ("cases", "tasks", "documents", "clients", "payments").
func (s *Server) Seed(collection string, record map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch collection {
	case "cases":
		s.cases = append(s.cases, record)
	case "tasks":
		s.tasks = append(s.tasks, record)
	case "documents":
		s.documents = append(s.documents, record)
	case "clients":
		s.contacts = append(s.contacts, record)
	case "payments":
		s.payments = append(s.payments, record)
	default:
		panic("apitest: unknown collection " + collection)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	account, ok := s.accounts[body.Email]
	override := s.LoginResponse
	s.mu.Unlock()

	if !ok || account.Password != body.Password {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if override != nil {
		writeJSON(w, http.StatusOK, override(account))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pending_user_id": account.ID})
}

func (s *Server) handleVerify2FA(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID string `json:"user_id"`
		Code   string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	account, ok := s.byID[body.UserID]
	s.mu.Unlock()

	if !ok || account.Code != body.Code {
		writeError(w, http.StatusUnauthorized, "invalid or expired code")
		return
	}

	token := s.IssueToken(account)
	writeJSON(w, http.StatusOK, map[string]any{"user": account.User, "token": token})
}

func (s *Server) handleResendOTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	_, ok := s.byID[body.UserID]
	if ok {
		s.resends[body.UserID]++
	}
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "unknown user")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{})
}

func (s *Server) handleVerifySession(w http.ResponseWriter, r *http.Request) {
	account := s.accountFor(r)
	if account == nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": account.User})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{})
}

func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.accountFor(r) == nil {
			writeError(w, http.StatusUnauthorized, "unauthenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) accountFor(r *http.Request) *Account {
	token := bearerToken(r)
	if token == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[token]
}

func (s *Server) listOf(collection *[]map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caseFilter := r.URL.Query().Get("case")
		s.mu.Lock()
		records := make([]map[string]any, 0, len(*collection))
		for _, rec := range *collection {
			if caseFilter != "" && rec["case_guid"] != caseFilter {
				continue
			}
			records = append(records, rec)
		}
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, records)
	}
}

func (s *Server) getFrom(collection *[]map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guid := mux.Vars(r)["guid"]
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, rec := range *collection {
			if rec["guid"] == guid {
				writeJSON(w, http.StatusOK, rec)
				return
			}
		}
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *Server) createInto(collection *[]map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record := map[string]any{}
		if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if record["guid"] == nil || record["guid"] == "" {
			record["guid"] = uuid.NewString()
		}
		s.mu.Lock()
		*collection = append(*collection, record)
		s.mu.Unlock()
		writeJSON(w, http.StatusCreated, record)
	}
}

func (s *Server) updateStatus(w http.ResponseWriter, r *http.Request) {
	guid := mux.Vars(r)["guid"]
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.cases {
		if rec["guid"] == guid {
			rec["status"] = body.Status
			writeJSON(w, http.StatusOK, rec)
			return
		}
	}
	writeError(w, http.StatusNotFound, "not found")
}

func (s *Server) completeTask(w http.ResponseWriter, r *http.Request) {
	guid := mux.Vars(r)["guid"]
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.tasks {
		if rec["guid"] == guid {
			rec["done"] = true
			writeJSON(w, http.StatusOK, rec)
			return
		}
	}
	writeError(w, http.StatusNotFound, "not found")
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimPrefix(header, prefix)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
