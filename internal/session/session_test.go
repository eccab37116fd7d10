package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/marqueehq/marquee/internal/store"
	"github.com/marqueehq/marquee/internal/types"
)

type fakeAPI struct {
	loginResp   types.LoginResponse
	loginErr    error
	registerErr error
	started     chan struct{}
	release     chan struct{}
}

func (a *fakeAPI) Login(ctx context.Context, email, password string) (types.LoginResponse, error) {
	if a.started != nil {
		close(a.started)
	}
	if a.release != nil {
		<-a.release
	}
	if a.loginErr != nil {
		return types.LoginResponse{}, a.loginErr
	}
	return a.loginResp, nil
}

func (a *fakeAPI) Register(ctx context.Context, email, userName, password string) (types.User, error) {
	if a.registerErr != nil {
		return types.User{}, a.registerErr
	}
	return types.User{UserEmail: email, UserName: userName}, nil
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	kv, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func TestCheckStatusWithoutToken(t *testing.T) {
	sess := New(openStore(t), &fakeAPI{}, nil)

	if sess.Status() != StatusChecking {
		t.Fatalf("expected initial checking, got %s", sess.Status())
	}
	sess.CheckStatus()
	if sess.Status() != StatusUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", sess.Status())
	}
}

func TestCheckStatusTrustsPersistedToken(t *testing.T) {
	kv := openStore(t)
	if err := kv.Set(store.KeyAuthToken, "persisted"); err != nil {
		t.Fatalf("seed token: %v", err)
	}

	sess := New(kv, &fakeAPI{}, nil)
	sess.CheckStatus()

	if sess.Status() != StatusAuthenticated {
		t.Fatalf("expected authenticated, got %s", sess.Status())
	}
	if sess.Token() != "persisted" {
		t.Fatalf("expected persisted token, got %q", sess.Token())
	}
	// Restore trusts the token alone; no user identity is attached.
	if sess.User() != nil {
		t.Fatalf("expected nil user after restore, got %v", sess.User())
	}
}

func TestLoginPersistsTokenAndUser(t *testing.T) {
	kv := openStore(t)
	api := &fakeAPI{loginResp: types.LoginResponse{
		AccessToken: "tok",
		User:        types.User{ID: "u1", UserName: "ada", UserEmail: "ada@example.com"},
	}}
	sess := New(kv, api, nil)
	sess.CheckStatus()

	if !sess.Login(context.Background(), "ada@example.com", "pw") {
		t.Fatal("expected login to succeed")
	}
	if sess.Status() != StatusAuthenticated {
		t.Fatalf("expected authenticated, got %s", sess.Status())
	}
	if user := sess.User(); user == nil || user.UserName != "ada" {
		t.Fatalf("expected user ada, got %v", user)
	}

	value, ok, err := kv.Get(store.KeyAuthToken)
	if err != nil || !ok || value != "tok" {
		t.Fatalf("expected persisted token, got value=%q ok=%v err=%v", value, ok, err)
	}
}

func TestLoginFailureLeavesUnauthenticated(t *testing.T) {
	kv := openStore(t)
	sess := New(kv, &fakeAPI{loginErr: errors.New("bad credentials")}, nil)
	sess.CheckStatus()

	if sess.Login(context.Background(), "a@b.c", "pw") {
		t.Fatal("expected login to fail")
	}
	if sess.Status() != StatusUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", sess.Status())
	}
	if _, ok, _ := kv.Get(store.KeyAuthToken); ok {
		t.Fatal("expected no persisted token after failed login")
	}
}

func TestRegisterReturnsToUnauthenticated(t *testing.T) {
	sess := New(openStore(t), &fakeAPI{}, nil)
	sess.CheckStatus()

	if !sess.Register(context.Background(), "a@b.c", "ada", "pw") {
		t.Fatal("expected register to succeed")
	}
	// Signup does not log the user in.
	if sess.Status() != StatusUnauthenticated {
		t.Fatalf("expected unauthenticated after register, got %s", sess.Status())
	}
	if sess.Token() != "" {
		t.Fatalf("expected no token after register, got %q", sess.Token())
	}
}

func TestLogoutClearsTokenAndState(t *testing.T) {
	kv := openStore(t)
	api := &fakeAPI{loginResp: types.LoginResponse{AccessToken: "tok"}}
	sess := New(kv, api, nil)
	sess.CheckStatus()

	if !sess.Login(context.Background(), "a@b.c", "pw") {
		t.Fatal("login failed")
	}
	sess.Logout()

	if sess.Status() != StatusUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", sess.Status())
	}
	if _, ok, _ := kv.Get(store.KeyAuthToken); ok {
		t.Fatal("expected token cleared")
	}
}

func TestLoginRejectedWhileLoading(t *testing.T) {
	api := &fakeAPI{
		loginResp: types.LoginResponse{AccessToken: "tok"},
		started:   make(chan struct{}),
		release:   make(chan struct{}),
	}
	sess := New(openStore(t), api, nil)
	sess.CheckStatus()

	firstDone := make(chan bool, 1)
	go func() {
		firstDone <- sess.Login(context.Background(), "a@b.c", "pw")
	}()

	<-api.started
	if sess.Status() != StatusLoading {
		t.Fatalf("expected loading, got %s", sess.Status())
	}
	if sess.Login(context.Background(), "a@b.c", "pw") {
		t.Fatal("expected concurrent login to be rejected")
	}

	close(api.release)
	select {
	case ok := <-firstDone:
		if !ok {
			t.Fatal("expected first login to succeed")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("first login never settled")
	}
}

func TestInstallIDIsStable(t *testing.T) {
	sess := New(openStore(t), &fakeAPI{}, nil)

	first, err := sess.InstallID()
	if err != nil {
		t.Fatalf("install id: %v", err)
	}
	if first == "" {
		t.Fatal("expected generated install id")
	}
	second, err := sess.InstallID()
	if err != nil {
		t.Fatalf("install id: %v", err)
	}
	if first != second {
		t.Fatalf("expected stable install id, got %q then %q", first, second)
	}
}
