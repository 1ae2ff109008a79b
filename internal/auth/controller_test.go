package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"prostage/internal/clients"
	"prostage/internal/models"
	"prostage/internal/session"
)

func newController(t *testing.T, handler http.Handler) (*Controller, *session.Store) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := session.NewStore(filepath.Join(t.TempDir(), "auth_token"))
	base := clients.NewBaseClient(server.URL, server.Client(), store, zap.NewNop())
	api := clients.NewAuthAPI(base, zap.NewNop())
	return New(api, store, zap.NewNop()), store
}

func TestInitWithoutTokenGoesAnonymous(t *testing.T) {
	called := false
	controller, _ := newController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	require.Equal(t, StateInitializing, controller.State())
	controller.Init(context.Background())

	assert.Equal(t, StateAnonymous, controller.State())
	assert.False(t, controller.IsAuthenticated())
	assert.False(t, controller.IsLoading())
	assert.False(t, called, "no stored token means no network call")
}

func TestInitWithValidToken(t *testing.T) {
	controller, store := newController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/verify-token/", r.URL.Path)
		assert.Equal(t, "Token tok-ok", r.Header.Get("Authorization"))
		w.Write([]byte(`{"valid":true,"user":{"id":5,"email":"mo@studio.test","first_name":"Mo"}}`))
	}))
	require.NoError(t, store.Save("tok-ok"))

	controller.Init(context.Background())

	assert.Equal(t, StateAuthenticated, controller.State())
	require.NotNil(t, controller.User())
	assert.Equal(t, int64(5), controller.User().ID)
}

func TestInitWithRejectedTokenGoesAnonymousAndClearsStore(t *testing.T) {
	controller, store := newController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"invalid token"}`))
	}))
	require.NoError(t, store.Save("stale"))

	controller.Init(context.Background())

	assert.Equal(t, StateAnonymous, controller.State())
	assert.Nil(t, controller.User())
	_, present := store.Token()
	assert.False(t, present, "rejected token must be cleared")
}

func TestInitNetworkFailureGoesAnonymous(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	store := session.NewStore(filepath.Join(t.TempDir(), "auth_token"))
	require.NoError(t, store.Save("tok"))
	base := clients.NewBaseClient(server.URL, http.DefaultClient, store, zap.NewNop())
	controller := New(clients.NewAuthAPI(base, zap.NewNop()), store, zap.NewNop())

	controller.Init(context.Background())

	assert.Equal(t, StateAnonymous, controller.State())
	_, present := store.Token()
	assert.False(t, present)
}

func TestInitValidWithoutUserFallsBackToProfile(t *testing.T) {
	controller, store := newController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/verify-token/":
			w.Write([]byte(`{"valid":true}`))
		case "/auth/profile/":
			w.Write([]byte(`{"id":11,"email":"kay@studio.test"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	require.NoError(t, store.Save("tok"))

	controller.Init(context.Background())

	assert.Equal(t, StateAuthenticated, controller.State())
	require.NotNil(t, controller.User())
	assert.Equal(t, int64(11), controller.User().ID)
}

func TestLoginTransitionsToAuthenticated(t *testing.T) {
	controller, store := newController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user":{"id":2,"email":"lee@studio.test"},"token":"lee-token"}`))
	}))

	user, err := controller.Login(context.Background(), models.LoginRequest{Email: "lee@studio.test", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), user.ID)
	assert.True(t, controller.IsAuthenticated())

	token, present := store.Token()
	require.True(t, present)
	assert.Equal(t, "lee-token", token)
}

func TestLoginFailureLeavesStateUntouched(t *testing.T) {
	controller, _ := newController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"invalid credentials"}`))
	}))
	controller.Init(context.Background())
	require.Equal(t, StateAnonymous, controller.State())

	_, err := controller.Login(context.Background(), models.LoginRequest{Email: "a", Password: "b"})
	require.Error(t, err)
	assert.Equal(t, StateAnonymous, controller.State())
	assert.False(t, controller.IsAuthenticated())
}

func TestRegisterPasswordMismatchFailsLocally(t *testing.T) {
	called := false
	controller, _ := newController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := controller.Register(context.Background(), models.RegisterRequest{
		Email:           "new@studio.test",
		Username:        "new",
		Password:        "abc123",
		PasswordConfirm: "xyz789",
	})
	require.ErrorIs(t, err, ErrPasswordMismatch)
	assert.False(t, called, "mismatch must be caught before any network call")
}

func TestRegisterSuccess(t *testing.T) {
	controller, store := newController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/register/", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"user":{"id":8,"username":"new"},"token":"new-token"}`))
	}))

	user, err := controller.Register(context.Background(), models.RegisterRequest{
		Email:           "new@studio.test",
		Username:        "new",
		Password:        "abc123",
		PasswordConfirm: "abc123",
	})
	require.NoError(t, err)
	assert.Equal(t, "new", user.Username)
	assert.True(t, controller.IsAuthenticated())

	token, _ := store.Token()
	assert.Equal(t, "new-token", token)
}

func TestLoginThenLogoutAlwaysEndsAnonymous(t *testing.T) {
	logoutFails := false
	controller, store := newController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login/":
			w.Write([]byte(`{"user":{"id":1},"token":"tok"}`))
		case "/auth/logout/":
			if logoutFails {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error":"boom"}`))
			} else {
				w.Write([]byte(`{}`))
			}
		}
	}))

	for _, fail := range []bool{false, true} {
		logoutFails = fail

		_, err := controller.Login(context.Background(), models.LoginRequest{Email: "a", Password: "b"})
		require.NoError(t, err)
		require.True(t, controller.IsAuthenticated())

		require.NoError(t, controller.Logout(context.Background()))
		assert.Equal(t, StateAnonymous, controller.State())
		assert.Nil(t, controller.User())
		_, present := store.Token()
		assert.False(t, present, "store must end absent, remote failure or not")
	}
}

func TestUpdateProfileFailureKeepsIdentity(t *testing.T) {
	controller, store := newController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/verify-token/":
			w.Write([]byte(`{"valid":true,"user":{"id":5,"first_name":"Mo"}}`))
		case "/auth/profile/update/":
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"phone number invalid"}`))
		}
	}))
	require.NoError(t, store.Save("tok"))
	controller.Init(context.Background())
	require.True(t, controller.IsAuthenticated())

	_, err := controller.UpdateProfile(context.Background(), models.ProfileUpdate{PhoneNumber: "nope"})
	require.Error(t, err)
	assert.Equal(t, StateAuthenticated, controller.State())
	assert.Equal(t, "Mo", controller.User().FirstName)
}

func TestUpdateProfileMergesIdentity(t *testing.T) {
	controller, store := newController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/verify-token/":
			w.Write([]byte(`{"valid":true,"user":{"id":5,"first_name":"Mo"}}`))
		case "/auth/profile/update/":
			w.Write([]byte(`{"id":5,"first_name":"Maurice"}`))
		}
	}))
	require.NoError(t, store.Save("tok"))
	controller.Init(context.Background())

	user, err := controller.UpdateProfile(context.Background(), models.ProfileUpdate{FirstName: "Maurice"})
	require.NoError(t, err)
	assert.Equal(t, "Maurice", user.FirstName)
	assert.Equal(t, "Maurice", controller.User().FirstName)
}

func TestChangePasswordConfirmMismatch(t *testing.T) {
	called := false
	controller, _ := newController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	err := controller.ChangePassword(context.Background(), "old", "new1", "new2")
	require.ErrorIs(t, err, ErrPasswordMismatch)
	assert.False(t, called)
}
