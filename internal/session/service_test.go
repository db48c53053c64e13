package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GabrijelGordic/ShoeSteraj/internal/api"
	"github.com/GabrijelGordic/ShoeSteraj/internal/store"
)

func newTestService(t *testing.T, handler http.Handler) (*Service, *Store, *store.CredentialStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	creds, err := store.OpenCredentialStore(t.TempDir())
	if err != nil {
		t.Fatalf("OpenCredentialStore: %v", err)
	}
	client, err := api.New(srv.URL, creds)
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}
	st := NewStore()
	return NewService(client, creds, st), st, creds
}

func authHandler(t *testing.T, logoutStatus int) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/token/login/", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Username == "alice" && body.Password == "correct-secret" {
			_ = json.NewEncoder(w).Encode(map[string]string{"auth_token": "tok-alice"})
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"non_field_errors":["Unable to log in with provided credentials."]}`))
	})
	mux.HandleFunc("/auth/users/me/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Token tok-alice" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Invalid token."}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 1, "username": "alice"})
	})
	mux.HandleFunc("/auth/token/logout/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(logoutStatus)
	})
	mux.HandleFunc("/auth/users/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 2, "username": "alice", "email": "a@example.com"})
	})
	return mux
}

func TestRestoreWithoutCredential(t *testing.T) {
	requests := 0
	svc, st, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	if st.Status() != StatusRestoring {
		t.Fatalf("store must start restoring, got %s", st.Status())
	}
	svc.Restore(context.Background())
	if st.Status() != StatusAnonymous {
		t.Fatalf("expected anonymous, got %s", st.Status())
	}
	if requests != 0 {
		t.Fatalf("no credential must mean no network, got %d requests", requests)
	}
}

func TestRestoreValidCredential(t *testing.T) {
	svc, st, creds := newTestService(t, authHandler(t, http.StatusNoContent))
	if err := creds.Set("tok-alice"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	svc.Restore(context.Background())
	if st.Status() != StatusAuthenticated {
		t.Fatalf("expected authenticated, got %s", st.Status())
	}
	id := st.Identity()
	if id == nil || id.Username != "alice" {
		t.Fatalf("identity: %+v", id)
	}
}

func TestRestoreInvalidCredentialClearsStore(t *testing.T) {
	svc, st, creds := newTestService(t, authHandler(t, http.StatusNoContent))
	if err := creds.Set("tok-expired"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	svc.Restore(context.Background())
	if st.Status() != StatusAnonymous {
		t.Fatalf("expected anonymous, got %s", st.Status())
	}
	if st.Identity() != nil {
		t.Fatalf("anonymous store must hold no identity")
	}
	if creds.Get() != "" {
		t.Fatalf("invalid credential must be cleared, got %q", creds.Get())
	}
}

func TestLoginSuccess(t *testing.T) {
	svc, st, creds := newTestService(t, authHandler(t, http.StatusNoContent))

	id, err := svc.Login(context.Background(), "alice", "correct-secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if id.Username != "alice" {
		t.Fatalf("identity: %+v", id)
	}
	if st.Status() != StatusAuthenticated {
		t.Fatalf("expected authenticated, got %s", st.Status())
	}
	if creds.Get() != "tok-alice" {
		t.Fatalf("credential not persisted: %q", creds.Get())
	}
}

func TestLoginWrongSecretLeavesStoreUntouched(t *testing.T) {
	svc, st, creds := newTestService(t, authHandler(t, http.StatusNoContent))
	svc.Restore(context.Background()) // anonymous baseline

	_, err := svc.Login(context.Background(), "alice", "wrong")
	if err == nil {
		t.Fatalf("expected credential error")
	}
	var ve *api.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if st.Status() != StatusAnonymous {
		t.Fatalf("failed login must not change the session, got %s", st.Status())
	}
	if creds.Get() != "" {
		t.Fatalf("failed login must not persist a credential, got %q", creds.Get())
	}
}

// A token that is issued but whose identity lookup fails must not stick
// around: login either fully authenticates or leaves nothing behind.
func TestLoginIdentityFailureRollsBackCredential(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/token/login/", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"auth_token": "tok-alice"})
	})
	mux.HandleFunc("/auth/users/me/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	svc, st, creds := newTestService(t, mux)

	if _, err := svc.Login(context.Background(), "alice", "correct-secret"); err == nil {
		t.Fatalf("expected error")
	}
	if creds.Get() != "" {
		t.Fatalf("credential must be rolled back, got %q", creds.Get())
	}
	if st.Status() == StatusAuthenticated {
		t.Fatalf("session must not be authenticated")
	}
}

func TestLogoutAlwaysClearsLocally(t *testing.T) {
	for _, logoutStatus := range []int{http.StatusNoContent, http.StatusInternalServerError} {
		svc, st, creds := newTestService(t, authHandler(t, logoutStatus))
		if _, err := svc.Login(context.Background(), "alice", "correct-secret"); err != nil {
			t.Fatalf("Login: %v", err)
		}

		svc.Logout(context.Background())
		if st.Status() != StatusAnonymous {
			t.Fatalf("logout (revoke status %d): expected anonymous, got %s", logoutStatus, st.Status())
		}
		if creds.Get() != "" {
			t.Fatalf("logout (revoke status %d): credential must be cleared", logoutStatus)
		}
	}
}

func TestLogoutSurvivesUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(authHandler(t, http.StatusNoContent))
	creds, err := store.OpenCredentialStore(t.TempDir())
	if err != nil {
		t.Fatalf("OpenCredentialStore: %v", err)
	}
	client, err := api.New(srv.URL, creds)
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}
	st := NewStore()
	svc := NewService(client, creds, st)

	if _, err := svc.Login(context.Background(), "alice", "correct-secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	srv.Close() // server gone; revocation will fail with a network error

	svc.Logout(context.Background())
	if st.Status() != StatusAnonymous {
		t.Fatalf("expected anonymous, got %s", st.Status())
	}
	if creds.Get() != "" {
		t.Fatalf("credential must be cleared even when revocation is unreachable")
	}
}

func TestRegisterEndsAuthenticated(t *testing.T) {
	svc, st, creds := newTestService(t, authHandler(t, http.StatusNoContent))

	id, err := svc.Register(context.Background(), "alice", "a@example.com", "correct-secret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if id.Username != "alice" {
		t.Fatalf("identity: %+v", id)
	}
	if st.Status() != StatusAuthenticated {
		t.Fatalf("expected authenticated, got %s", st.Status())
	}
	if creds.Get() == "" {
		t.Fatalf("register must leave a persisted credential")
	}
}
