package test_utils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type Response struct {
	Code int
	Body []byte
}

type RequestOptions struct {
	Method         string
	Path           string
	AuthHeader     string
	Body           any
	ExpectedStatus int
}

func MakeRequest(t *testing.T, router *gin.Engine, opts RequestOptions) *Response {
	t.Helper()

	var bodyReader *bytes.Reader
	if opts.Body != nil {
		payload, err := json.Marshal(opts.Body)
		require.NoError(t, err)
		bodyReader = bytes.NewReader(payload)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(opts.Method, opts.Path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	if opts.AuthHeader != "" {
		req.Header.Set("Authorization", opts.AuthHeader)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(
		t,
		opts.ExpectedStatus,
		w.Code,
		"unexpected status for %s %s: %s", opts.Method, opts.Path, w.Body.String(),
	)

	return &Response{
		Code: w.Code,
		Body: w.Body.Bytes(),
	}
}

func MakeGetRequest(
	t *testing.T,
	router *gin.Engine,
	path, authHeader string,
	expectedStatus int,
) *Response {
	t.Helper()

	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodGet,
		Path:           path,
		AuthHeader:     authHeader,
		ExpectedStatus: expectedStatus,
	})
}

func MakeGetRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	path, authHeader string,
	expectedStatus int,
	out any,
) {
	t.Helper()

	resp := MakeGetRequest(t, router, path, authHeader, expectedStatus)
	require.NoError(t, json.Unmarshal(resp.Body, out))
}

func MakePostRequest(
	t *testing.T,
	router *gin.Engine,
	path, authHeader string,
	body any,
	expectedStatus int,
) *Response {
	t.Helper()

	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodPost,
		Path:           path,
		AuthHeader:     authHeader,
		Body:           body,
		ExpectedStatus: expectedStatus,
	})
}

func MakePostRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	path, authHeader string,
	body any,
	expectedStatus int,
	out any,
) {
	t.Helper()

	resp := MakePostRequest(t, router, path, authHeader, body, expectedStatus)
	require.NoError(t, json.Unmarshal(resp.Body, out))
}

func MakePutRequest(
	t *testing.T,
	router *gin.Engine,
	path, authHeader string,
	body any,
	expectedStatus int,
) *Response {
	t.Helper()

	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodPut,
		Path:           path,
		AuthHeader:     authHeader,
		Body:           body,
		ExpectedStatus: expectedStatus,
	})
}

func MakePutRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	path, authHeader string,
	body any,
	expectedStatus int,
	out any,
) {
	t.Helper()

	resp := MakePutRequest(t, router, path, authHeader, body, expectedStatus)
	require.NoError(t, json.Unmarshal(resp.Body, out))
}

func MakeDeleteRequest(
	t *testing.T,
	router *gin.Engine,
	path, authHeader string,
	expectedStatus int,
) *Response {
	t.Helper()

	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodDelete,
		Path:           path,
		AuthHeader:     authHeader,
		ExpectedStatus: expectedStatus,
	})
}
