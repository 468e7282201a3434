package webhook

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	client := NewClient("1111", "abcd", nil)

	assert.Equal(t, "1111", client.ID())
	assert.Equal(t, "abcd", client.Token())
	assert.Equal(t, DefaultRootURL+"/1111/abcd", client.URL())
	assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
}

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("1111", "abcd", nil)
	client.rootURL = server.URL
	return client
}

func TestClient_Send_OKReturnsBody(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"42"}`))
	})

	body, err := client.Send(context.Background(), http.MethodGet, "", nil)

	require.NoError(t, err)
	assert.Equal(t, `{"id":"42"}`, body)
}

func TestClient_Send_SetsContentType(t *testing.T) {
	var gotContentType string

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte("{}"))
	})

	_, err := client.Send(context.Background(), http.MethodPost, "?wait=true", []byte("{}"))

	require.NoError(t, err)
	assert.Equal(t, "application/json", gotContentType)
}

func TestClient_Send_NoContent(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	_, err := client.Send(context.Background(), http.MethodDelete, "", nil)

	assert.ErrorIs(t, err, ErrNoContent)
}

func TestClient_Send_BadStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{name: "bad request", status: http.StatusBadRequest},
		{name: "unauthorized", status: http.StatusUnauthorized},
		{name: "not found", status: http.StatusNotFound},
		{name: "rate limited", status: http.StatusTooManyRequests},
		{name: "server error", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			_, err := client.Send(context.Background(), http.MethodGet, "", nil)

			var badStatus *BadStatusError
			require.ErrorAs(t, err, &badStatus)
			assert.Equal(t, tt.status, badStatus.Code)
		})
	}
}

func TestClient_Send_TransportFailure(t *testing.T) {
	client := NewClient("1111", "abcd", nil)
	// Nothing is listening here.
	client.rootURL = "http://127.0.0.1:1"

	_, err := client.Send(context.Background(), http.MethodGet, "", nil)

	var unknown *UnknownError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "request to API", unknown.Reason)
}

func TestClient_Send_InvalidBodyEncoding(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte{0xff, 0xfe, 0xfd})
	})

	_, err := client.Send(context.Background(), http.MethodGet, "", nil)

	var unknown *UnknownError
	require.ErrorAs(t, err, &unknown)
}

func TestClient_Send_ContextCancellation(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Send(ctx, http.MethodGet, "", nil)

	var unknown *UnknownError
	require.ErrorAs(t, err, &unknown)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "bad status",
			err:  &BadStatusError{Code: 404},
			want: "bad status: 404",
		},
		{
			name: "no content",
			err:  ErrNoContent,
			want: "no content",
		},
		{
			name: "unknown without cause",
			err:  &UnknownError{Reason: "request to API"},
			want: "unknown: request to API",
		},
		{
			name: "bad parse",
			err:  &ParseError{Context: "create response"},
			want: "bad parse: create response",
		},
		{
			name: "too big",
			err:  &TooBigError{Field: "content", Size: 2001, Max: 2000},
			want: "content exceeded max character count, 2001 of 2000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}
