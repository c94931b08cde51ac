package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"

	v1 "github.com/finance-tracker/backend/internal/controllers/v1"
	"github.com/finance-tracker/backend/internal/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DefaultAPIURL is used when the controller configuration has no API URL.
const DefaultAPIURL = "http://example.com/api"

// Request is a helper method to simplify making a HTTP request for tests.
//
// The body can be nil, a string, anything that marshals to JSON or a
// *bytes.Buffer, e.g. for multipart forms.
func Request(t *testing.T, co v1.Controller, method, reqURL string, body any, headers ...map[string]string) httptest.ResponseRecorder {
	var byteBuffer *bytes.Buffer

	switch {
	case body == nil:
		byteBuffer = new(bytes.Buffer)
	case reflect.TypeOf(body).Kind() == reflect.String:
		byteBuffer = bytes.NewBufferString(body.(string))
	case reflect.TypeOf(body) == reflect.TypeOf(&bytes.Buffer{}):
		byteBuffer = body.(*bytes.Buffer)
	default:
		byteStr, err := json.Marshal(body)
		if err != nil {
			assert.Fail(t, "Request body could not be marshalled from struct input", err)
		}
		byteBuffer = bytes.NewBuffer(byteStr)
	}

	apiURL := co.Config.Server.APIURL
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	baseURL, err := url.Parse(apiURL)
	if err != nil {
		assert.FailNow(t, "the API URL must be a valid URL")
	}

	r, teardown, err := router.Config(baseURL, co.Config)
	if err != nil {
		assert.FailNow(t, "Router could not be initialized", err)
	}
	defer teardown()

	router.AttachRoutes(co, r.Group(baseURL.Path))

	recorder := httptest.NewRecorder()
	req, _ := http.NewRequest(method, reqURL, byteBuffer)

	if _, ok := body.(*bytes.Buffer); !ok && body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for _, headerMap := range headers {
		for header, value := range headerMap {
			req.Header.Set(header, value)
		}
	}

	r.ServeHTTP(recorder, req)

	return *recorder
}

// Authorization returns the header for requests authenticated with token.
func Authorization(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// DecodeResponse decodes an HTTP response into a target struct.
func DecodeResponse(t *testing.T, r *httptest.ResponseRecorder, target any) {
	err := json.Unmarshal(r.Body.Bytes(), &target)
	if err != nil {
		assert.FailNow(t, "Parsing error", "Unable to parse response from server %q into %v, '%v', Request ID: %s", r.Body, reflect.TypeOf(target), err, r.Result().Header.Get("x-request-id"))
	}
}

// AssertHTTPStatus verifies that the HTTP response status is correct
func AssertHTTPStatus(t *testing.T, r *httptest.ResponseRecorder, expectedStatus ...int) {
	require.Contains(t, expectedStatus, r.Code, "HTTP status is wrong. Request ID: '%s' Response body: %s", r.Result().Header.Get("x-request-id"), r.Body.String())
}
