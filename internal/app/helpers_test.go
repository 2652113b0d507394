package app_test

import (
	"encoding/json"
	"testing"

	"irrigation_backend/internal/testutil"

	"github.com/stretchr/testify/require"
)

type fieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type errorResponse struct {
	Error struct {
		Code    string          `json:"code"`
		Domain  string          `json:"domain"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

// decodeError разбирает конверт ошибки; details у разных кодов разные
func decodeError(t *testing.T, body string) errorResponse {
	t.Helper()
	return testutil.DecodeJSON[errorResponse](t, body)
}

func errorFields(t *testing.T, body string) map[string]string {
	t.Helper()
	resp := decodeError(t, body)
	require.Equal(t, "VALIDATION_FAILED", resp.Error.Code, body)
	var details []fieldError
	require.NoError(t, json.Unmarshal(resp.Error.Details, &details), body)
	out := make(map[string]string, len(details))
	for _, d := range details {
		out[d.Field] = d.Reason
	}
	return out
}

type idOnly struct {
	ID string `json:"id"`
}

func createCategory(t *testing.T, ts *testutil.TestServer, token, name string) string {
	t.Helper()
	res, body := ts.SendRequest(t, "POST", ts.API("/categories"), token, map[string]any{"name": name, "description": name + " description"})
	require.Equal(t, 201, res.StatusCode, body)
	return testutil.DecodeJSON[idOnly](t, body).ID
}

func productBody(categoryID, name string) map[string]any {
	return map[string]any{
		"name":        name,
		"description": "Pressure compensating dripper",
		"features":    []string{"2 l/h", "self-cleaning", "UV resistant"},
		"sizes":       []string{"16mm", "20mm"},
		"image":       "/uploads/products/1700000000000-1-" + name + ".png",
		"featured":    false,
		"categoryId":  categoryID,
	}
}
