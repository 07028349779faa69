package netx

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutPresigned_OK(t *testing.T) {
	var (
		method, ct string
		body       []byte
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		ct = r.Header.Get("Content-Type")
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	err := PutPresigned(context.Background(), ts.Client(), ts.URL+"/resumes/u1/x.pdf?X-Amz-Signature=abc", []byte("%PDF"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "application/pdf", ct)
	assert.Equal(t, []byte("%PDF"), body)
}

func TestPutPresigned_Non2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("SignatureDoesNotMatch"))
	}))
	defer ts.Close()

	err := PutPresigned(context.Background(), ts.Client(), ts.URL, []byte("x"), "application/pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "SignatureDoesNotMatch")
}

func TestPutPresigned_NetworkError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	err := PutPresigned(context.Background(), http.DefaultClient, url, []byte("x"), "application/pdf")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "upload failed")
}
