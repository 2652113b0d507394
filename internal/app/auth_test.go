package app_test

import (
	"net/http"
	"testing"

	"irrigation_backend/internal/config"
	"irrigation_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionalAuth(t *testing.T) {
	ts := testutil.NewTestServer(t)
	token := ts.Login(t)

	categoryID := createCategory(t, ts, token, "Drip")
	contactBody := map[string]any{
		"name": "Ivan", "email": "ivan@example.com", "subject": "Quote", "message": "Need 40 sprinklers",
	}
	res, body := ts.SendRequest(t, http.MethodPost, ts.API("/contact"), "", contactBody)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	contactID := testutil.DecodeJSON[idOnly](t, body).ID

	// каждый запрос без токена; ожидаемый код ответа
	cases := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"Read categories", http.MethodGet, "/categories", nil, http.StatusOK},
		{"Read category", http.MethodGet, "/categories/" + categoryID, nil, http.StatusOK},
		{"Read products", http.MethodGet, "/products", nil, http.StatusOK},
		{"Read gallery", http.MethodGet, "/gallery", nil, http.StatusOK},
		{"Read downloads", http.MethodGet, "/downloads", nil, http.StatusOK},
		{"Read partners", http.MethodGet, "/partners", nil, http.StatusOK},
		{"Read features", http.MethodGet, "/features", nil, http.StatusOK},
		{"Read stats", http.MethodGet, "/stats", nil, http.StatusOK},
		{"Read contacts", http.MethodGet, "/contact", nil, http.StatusOK},
		{"Read missing is not found", http.MethodGet, "/products/missing", nil, http.StatusNotFound},

		{"Create category", http.MethodPost, "/categories", map[string]any{"name": "X"}, http.StatusUnauthorized},
		{"Update category", http.MethodPut, "/categories/" + categoryID, map[string]any{"name": "X"}, http.StatusUnauthorized},
		{"Delete category", http.MethodDelete, "/categories/" + categoryID, nil, http.StatusUnauthorized},
		{"Create product", http.MethodPost, "/products", productBody(categoryID, "p"), http.StatusUnauthorized},
		{"Create partner", http.MethodPost, "/partners", map[string]any{}, http.StatusUnauthorized},
		{"Delete stat", http.MethodDelete, "/stats/any", nil, http.StatusUnauthorized},
		{"Update contact", http.MethodPut, "/contact/" + contactID, contactBody, http.StatusUnauthorized},
		{"Delete contact", http.MethodDelete, "/contact/" + contactID, nil, http.StatusUnauthorized},

		{"Submit contact", http.MethodPost, "/contact", contactBody, http.StatusCreated},
		{"Change contact status", http.MethodPatch, "/contact/" + contactID + "/status", map[string]any{"status": "CLOSED"}, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, body := ts.SendRequest(t, tc.method, ts.API(tc.path), "", tc.body)
			assert.Equal(t, tc.want, res.StatusCode, body)
			if tc.want == http.StatusUnauthorized {
				assert.Equal(t, "UNAUTHORIZED", decodeError(t, body).Error.Code)
			}
		})
	}

	t.Run("Bad token is rejected on writes", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodPost, ts.API("/categories"), "not-a-jwt", map[string]any{"name": "X"})
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
		assert.Equal(t, "INVALID_TOKEN", decodeError(t, body).Error.Code)
	})

	t.Run("Bad token is ignored on reads", func(t *testing.T) {
		res, _ := ts.SendRequest(t, http.MethodGet, ts.API("/categories"), "not-a-jwt", nil)
		assert.Equal(t, http.StatusOK, res.StatusCode)
	})

	t.Run("Token signed with another secret", func(t *testing.T) {
		other := testutil.NewTestServer(t, func(cfg *config.Config) { cfg.JWT.Secret = "other-secret" })
		foreign := other.Login(t)

		res, _ := ts.SendRequest(t, http.MethodPost, ts.API("/categories"), foreign, map[string]any{"name": "X"})
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})

	t.Run("Valid token writes", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodPost, ts.API("/categories"), token, map[string]any{"name": "Valves"})
		assert.Equal(t, http.StatusCreated, res.StatusCode, body)
	})

	t.Run("Unknown route is not found without a token", func(t *testing.T) {
		res, _ := ts.SendRequest(t, http.MethodPost, ts.API("/nothing-here"), "", nil)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	ts := testutil.NewTestServer(t)

	t.Run("Wrong password", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodPost, ts.API("/auth/login"), "", map[string]string{
			"email": testutil.AdminEmail, "password": "nope",
		})
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
		assert.Equal(t, "INVALID_CREDENTIALS", decodeError(t, body).Error.Code)
	})

	t.Run("Unknown email looks the same", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodPost, ts.API("/auth/login"), "", map[string]string{
			"email": "ghost@example.com", "password": testutil.AdminPassword,
		})
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
		assert.Equal(t, "INVALID_CREDENTIALS", decodeError(t, body).Error.Code)
	})

	t.Run("Malformed body", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodPost, ts.API("/auth/login"), "", map[string]string{"email": "bad"})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		fields := errorFields(t, body)
		assert.Equal(t, "email", fields["email"])
		assert.Equal(t, "required", fields["password"])
	})

	t.Run("Me reports the token state", func(t *testing.T) {
		token := ts.Login(t)

		res, body := ts.SendRequest(t, http.MethodGet, ts.API("/auth/me"), token, nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		me := testutil.DecodeJSON[map[string]any](t, body)
		assert.Equal(t, true, me["authenticated"])
		assert.Equal(t, testutil.AdminEmail, me["email"])

		res, body = ts.SendRequest(t, http.MethodGet, ts.API("/auth/me"), "", nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, false, testutil.DecodeJSON[map[string]any](t, body)["authenticated"])
	})
}
