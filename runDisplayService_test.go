package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gotest.tools/assert"
)

func apiCall(t *testing.T, rt runtimeConfig, method, path string) (int, apiResponse) {
	router := newRouter(newAPIHandler(rt))
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var ar apiResponse
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &ar))
	return w.Code, ar
}

func TestDisplayServiceStatus(t *testing.T) {
	rt, _, _ := testRuntime(t, nil)
	rt.display.PrintHex(0xa1)

	code, ar := apiCall(t, rt, "GET", "/api/status")
	assert.Equal(t, code, http.StatusOK)
	assert.Equal(t, ar.Response, "OK")
	assert.Equal(t, ar.Display, "  A1")
	assert.DeepEqual(t, ar.Digits, []digitStatus{
		{Pin: 21, Char: "1"},
		{Pin: 20, Char: "A"},
		{Pin: 16, Char: " "},
		{Pin: 12, Char: " "},
	})
}

func TestDisplayServiceContent(t *testing.T) {
	rt, clock, _ := testRuntime(t, nil)
	startContent(rt)
	clock.BlockUntil(1)

	tests := []struct {
		path string
		want string
	}{
		{"/api/dec/-42", "- 42."},
		{"/api/dec/7", "   7."},
		{"/api/hex/C0fE", "C0FE"},
		{"/api/text/-1.5", " -1.5"},
		{"/api/clear", "    "},
	}
	for _, tc := range tests {
		code, ar := apiCall(t, rt, "POST", tc.path)
		assert.Equal(t, code, http.StatusOK, tc.path)
		assert.Equal(t, ar.Display, tc.want, tc.path)
	}

	testQuit(rt)
}

func TestDisplayServiceErrors(t *testing.T) {
	rt, clock, _ := testRuntime(t, nil)
	startContent(rt)
	clock.BlockUntil(1)

	code, ar := apiCall(t, rt, "POST", "/api/text/hello")
	assert.Equal(t, code, http.StatusBadRequest)
	assert.Equal(t, ar.Response, "BAD")
	assert.ErrorContains(t, errorOf(ar), "invalid character")

	code, ar = apiCall(t, rt, "POST", "/api/text/12345")
	assert.Equal(t, code, http.StatusBadRequest)
	assert.ErrorContains(t, errorOf(ar), "too many characters")

	// too big for an int64
	code, _ = apiCall(t, rt, "POST", "/api/dec/99999999999999999999")
	assert.Equal(t, code, http.StatusBadRequest)

	code, ar = apiCall(t, rt, "POST", "/api/hex/xyz")
	assert.Equal(t, code, http.StatusNotFound)
	assert.ErrorContains(t, errorOf(ar), "no such endpoint")

	// the display still shows the start text
	code, ar = apiCall(t, rt, "GET", "/api/status")
	assert.Equal(t, code, http.StatusOK)
	assert.Equal(t, ar.Display, "8.8.8.8.")

	testQuit(rt)
}

func TestDisplayServiceAfterQuit(t *testing.T) {
	rt, _, _ := testRuntime(t, nil)
	testQuit(rt)

	code, ar := apiCall(t, rt, "POST", "/api/dec/1")
	assert.Equal(t, code, http.StatusServiceUnavailable)
	assert.Equal(t, ar.Error, "shutting down")
}

func TestDisplayServiceDisabled(t *testing.T) {
	rt, _, _ := testRuntime(t, nil)
	// no listen address in the test config
	startDisplayService(rt)
	wg.Wait()
}

type apiErr string

func (e apiErr) Error() string { return string(e) }

func errorOf(ar apiResponse) error {
	if ar.Error == "" {
		return nil
	}
	return apiErr(ar.Error)
}
