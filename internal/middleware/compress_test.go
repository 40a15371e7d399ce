package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestDecompressMiddleware(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, _ = gz.Write([]byte(`{"quantity":2}`))
	_ = gz.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Encoding", "gzip")
	rr := httptest.NewRecorder()

	var body string
	handler := DecompressMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		body = string(data)
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, `{"quantity":2}`, body)
}

func TestDecompressMiddlewareRejects(t *testing.T) {
	tests := []struct {
		name     string
		encoding string
		body     string
		status   int
	}{
		{"broken gzip", "gzip", "not gzip", http.StatusBadRequest},
		{"unknown encoding", "br", "whatever", http.StatusUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req.Header.Set("Content-Encoding", tt.encoding)
			rr := httptest.NewRecorder()

			called := false
			DecompressMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			})).ServeHTTP(rr, req)

			require.Equal(t, tt.status, rr.Code)
			require.False(t, called)
		})
	}
}

func TestCompressMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	rr := httptest.NewRecorder()

	handler := CompressMiddleware(zaptest.NewLogger(t).Sugar())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"grandTotal":3056250}`))
	}))

	handler.ServeHTTP(rr, req)

	resp := rr.Result()
	defer resp.Body.Close()

	require.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))
	require.Equal(t, "Accept-Encoding", resp.Header.Get("Vary"))

	gr, err := gzip.NewReader(resp.Body)
	require.NoError(t, err)
	defer gr.Close()

	data, err := io.ReadAll(gr)
	require.NoError(t, err)
	require.Equal(t, `{"grandTotal":3056250}`, string(data))
}

func TestCompressMiddlewareSkipsEmptyAndBinary(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		body    string
	}{
		{
			name: "no content",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusNoContent)
			},
		},
		{
			name: "image",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "image/png")
				_, _ = w.Write([]byte("png"))
			},
			body: "png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Accept-Encoding", "gzip")
			rr := httptest.NewRecorder()

			CompressMiddleware(zaptest.NewLogger(t).Sugar())(tt.handler).ServeHTTP(rr, req)

			require.Empty(t, rr.Header().Get("Content-Encoding"))
			require.Equal(t, tt.body, rr.Body.String())
		})
	}
}

func TestCompressMiddlewareWithoutAcceptEncoding(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	handler := CompressMiddleware(zaptest.NewLogger(t).Sugar())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("plain response"))
	}))

	handler.ServeHTTP(rr, req)

	require.Empty(t, rr.Header().Get("Content-Encoding"))
	require.Equal(t, "plain response", rr.Body.String())
}
