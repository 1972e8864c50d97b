package errors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortalErrorFormatting(t *testing.T) {
	err := New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", "/etc/docportal.yaml")
	assert.Equal(t, "config (fatal): configuration file not found", err.Error())
	assert.Equal(t, "/etc/docportal.yaml", err.Context["path"])
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(cause, CategoryStore, SeverityError, "preference write failed")
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
}

func TestCategoryHelpers(t *testing.T) {
	err := PageNotFound("v3", "solid", "guide/intro")
	assert.True(t, IsCategory(err, CategoryNotFound))
	assert.False(t, IsCategory(err, CategoryRender))
	assert.Equal(t, CategoryNotFound, GetCategory(err))
	assert.Equal(t, CategoryInternal, GetCategory(errors.New("plain")))
}

func TestHTTPAdapterStatusCodes(t *testing.T) {
	a := NewHTTPErrorAdapter(nil)
	cases := []struct {
		err    error
		status int
	}{
		{nil, http.StatusOK},
		{ValidationFailed("frameworks", "duplicate name"), http.StatusBadRequest},
		{UnknownVersion("v99"), http.StatusNotFound},
		{RenderFailed("intro", errors.New("bad markdown")), http.StatusUnprocessableEntity},
		{StoreError("get", errors.New("locked")), http.StatusBadGateway},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, a.StatusCodeFor(tc.err))
	}
}

func TestHTTPAdapterWritesJSON(t *testing.T) {
	a := NewHTTPErrorAdapter(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/docs/v99/react/intro", nil)

	a.WriteErrorResponse(rec, req, UnknownVersion("v99"))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t,
		`{"error":"unknown documentation version","code":"not_found","details":{"version":"v99"}}`,
		rec.Body.String())
}
