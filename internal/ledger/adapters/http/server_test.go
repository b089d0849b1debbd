package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	ledgerhttp "finledger/internal/ledger/adapters/http"
	"finledger/internal/ledger/config"
	"finledger/internal/ledger/ports/services"
)

const (
	tokenUser1 = "token-user-1"
	tokenUser2 = "token-user-2"
)

type testServer struct {
	app     *fiber.App
	entries *mockEntryUseCase
	users   *mockUserUseCase
	tokens  *mockTokenService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	s := &testServer{
		entries: new(mockEntryUseCase),
		users:   new(mockUserUseCase),
		tokens:  new(mockTokenService),
	}
	s.tokens.On("ValidateAccessToken", mock.Anything, tokenUser1).Return(int64(1), nil).Maybe()
	s.tokens.On("ValidateAccessToken", mock.Anything, tokenUser2).Return(int64(2), nil).Maybe()
	s.tokens.On("ValidateAccessToken", mock.Anything, mock.Anything).Return(int64(0), services.ErrInvalidJWTToken).Maybe()

	s.app = ledgerhttp.NewApp(&config.HTTPConfig{})
	ledgerhttp.SetupRouter(s.app,
		ledgerhttp.NewUsersHandler(s.users, s.entries, s.tokens),
		ledgerhttp.NewEntriesHandler(s.entries),
		s.tokens,
	)

	return s
}

// do sends a request with an optional JSON body and bearer token.
func (s *testServer) do(t *testing.T, method, path string, body interface{}, token string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := s.app.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, raw
}

func errorMessage(t *testing.T, raw []byte) string {
	t.Helper()

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	return body.Error
}
