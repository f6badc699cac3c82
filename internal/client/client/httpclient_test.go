package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *HTTPClient {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	c, err := NewHTTPClient(ts.URL, 2*time.Second)
	require.NoError(t, err)
	return c
}

func writeBody(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewHTTPClient_InvalidURL(t *testing.T) {
	for _, u := range []string{"", "127.0.0.1:8000", "ftp://host", "http://", "://bad"} {
		_, err := NewHTTPClient(u, time.Second)
		assert.Error(t, err, u)
	}
}

func TestHTTPClient_Register(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/register", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"username": "alice", "email": "alice@example.com", "password": "s3cretpass"}, body)

		writeBody(w, http.StatusOK, map[string]string{"access_token": "tok-1", "token_type": "bearer"})
	})

	tok, err := c.Register(context.Background(), "alice", "alice@example.com", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
	assert.Equal(t, "tok-1", c.AccessToken())
}

func TestHTTPClient_Login(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "alice", r.PostForm.Get("username"))
		assert.Equal(t, "s3cretpass", r.PostForm.Get("password"))
		writeBody(w, http.StatusOK, map[string]string{"access_token": "tok-2", "token_type": "bearer"})
	})

	tok, err := c.Login(context.Background(), "alice", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, "tok-2", tok)
}

func TestHTTPClient_SendsBearerToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-3", r.Header.Get("Authorization"))
		assert.Equal(t, "/add", r.URL.Path)

		var body map[string]float64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeBody(w, http.StatusOK, Result{Result: body["num1"] + body["num2"], Operation: "add", Num1: body["num1"], Num2: body["num2"]})
	})
	c.SetAccessToken("tok-3")

	res, err := c.Calculate(context.Background(), OperationAdd, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, &Result{Result: 5, Operation: "add", Num1: 2, Num2: 3}, res)
}

func TestHTTPClient_Calculate_UnknownOperation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := c.Calculate(context.Background(), "divide", 1, 2)
	assert.Error(t, err)
}

func TestHTTPClient_RootAndHistory(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/root":
			writeBody(w, http.StatusOK, Result{Result: 3, Operation: "root", Num1: 9})
		case "/history":
			writeBody(w, http.StatusOK, []Operation{{ID: 1, Operation: "root", Num1: 9, Result: 3, Timestamp: ts, UserID: "u-1"}})
		default:
			http.NotFound(w, r)
		}
	})

	res, err := c.Root(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 3.0, res.Result)

	ops, err := c.History(context.Background())
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, ts, ops[0].Timestamp)
}

func TestHTTPClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		message  string
		sentinel error
	}{
		{"unauthorized", http.StatusUnauthorized, "Could not validate credentials", ErrUnauthorized},
		{"unavailable", http.StatusServiceUnavailable, "down", ErrUnavailable},
		{"bad request", http.StatusBadRequest, "Username already registered", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeBody(w, tt.status, map[string]any{"error": tt.message, "status_code": tt.status})
			})

			_, err := c.Login(context.Background(), "alice", "pw")
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
		})
	}
}

func TestHTTPClient_ServerDown(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c, err := NewHTTPClient(url, time.Second)
	require.NoError(t, err)

	err = c.Ping(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}
