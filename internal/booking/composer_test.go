package booking

import (
	"context"
	"encoding/json"
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

func validForm() Form {
	return Form{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "+1 555 0100",
		ServiceID: 3,
		Date:      "2025-06-01",
		Time:      "14:00",
		Location:  "Riverside Hall",
		Notes:     "side entrance",
	}
}

func newComposer(t *testing.T, handler http.Handler) (*Composer, *int) {
	t.Helper()
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)

	store := session.NewStore(filepath.Join(t.TempDir(), "auth_token"))
	base := clients.NewBaseClient(server.URL, server.Client(), store, zap.NewNop())
	return NewComposer(clients.NewBookingAPI(base), zap.NewNop()), &calls
}

func TestBuildDerivesInstants(t *testing.T) {
	composer, _ := newComposer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	composer.Form = validForm()

	payload, err := composer.Build()
	require.NoError(t, err)

	assert.Equal(t, "2025-06-01T14:00:00Z", payload.BookingDate)
	assert.Equal(t, "2025-06-01T18:00:00Z", payload.EndDate, "end must be exactly 4 hours after start")
	assert.Equal(t, "500.00", payload.TotalPrice)
	assert.Equal(t, int64(3), payload.ServiceID)
}

func TestBuildRejectsMissingRequiredFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Form)
		field  string
	}{
		{"first name", func(f *Form) { f.FirstName = "" }, "first name"},
		{"last name", func(f *Form) { f.LastName = "" }, "last name"},
		{"email", func(f *Form) { f.Email = "" }, "email"},
		{"phone", func(f *Form) { f.Phone = "" }, "phone"},
		{"date", func(f *Form) { f.Date = "" }, "date"},
		{"time", func(f *Form) { f.Time = "" }, "time"},
		{"location", func(f *Form) { f.Location = "" }, "location"},
		{"service", func(f *Form) { f.ServiceID = 0 }, "service"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			composer, calls := newComposer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
			form := validForm()
			tc.mutate(&form)
			composer.Form = form

			_, err := composer.Submit(context.Background())
			var valErr *ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, tc.field, valErr.Field)
			assert.Zero(t, *calls, "validation failure must not reach the network")
			assert.False(t, composer.Submitted())
		})
	}
}

func TestBuildRejectsMalformedDate(t *testing.T) {
	composer, _ := newComposer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	form := validForm()
	form.Time = "half past two"
	composer.Form = form

	_, err := composer.Build()
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestSubmitSuccessIsTerminal(t *testing.T) {
	composer, calls := newComposer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload models.BookingCreate
		json.NewDecoder(r.Body).Decode(&payload)
		assert.Equal(t, "Riverside Hall", payload.Location)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":42,"status":"pending","status_display":"Pending"}`))
	}))
	composer.Form = validForm()

	accepted, err := composer.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), accepted.ID)
	assert.True(t, composer.Submitted())
	assert.Equal(t, int64(42), composer.Result().ID)

	// Resubmission requires explicit Reset, not another network call.
	_, err = composer.Submit(context.Background())
	require.ErrorIs(t, err, ErrAlreadySubmitted)
	assert.Equal(t, 1, *calls)
}

func TestSubmitFailureStaysEditable(t *testing.T) {
	composer, _ := newComposer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"service unavailable on that date"}`))
	}))
	composer.Form = validForm()

	_, err := composer.Submit(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service unavailable on that date")
	assert.False(t, composer.Submitted())
	assert.Equal(t, "Riverside Hall", composer.Form.Location, "form input must survive a failed submit")
}

func TestReset(t *testing.T) {
	composer, _ := newComposer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1}`))
	}))
	composer.Form = validForm()

	_, err := composer.Submit(context.Background())
	require.NoError(t, err)
	require.True(t, composer.Submitted())

	composer.Reset()
	assert.False(t, composer.Submitted())
	assert.Nil(t, composer.Result())
	assert.Equal(t, Form{}, composer.Form)
}

func TestPrefillFillsOnlyEmptyFields(t *testing.T) {
	composer, _ := newComposer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	composer.Form.Email = "kept@example.com"

	composer.Prefill(&models.User{
		FirstName:   "Grace",
		LastName:    "Hopper",
		Email:       "grace@example.com",
		PhoneNumber: "+1 555 0199",
	})

	assert.Equal(t, "Grace", composer.Form.FirstName)
	assert.Equal(t, "Hopper", composer.Form.LastName)
	assert.Equal(t, "kept@example.com", composer.Form.Email, "user input wins over prefill")
	assert.Equal(t, "+1 555 0199", composer.Form.Phone)

	composer.Prefill(nil) // must not panic
}
