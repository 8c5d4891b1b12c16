package utils

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "imagify-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendJSONResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	SendJSONResponse(rec, http.StatusOK, map[string]interface{}{"success": true})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestSendJSONResponseEncodingFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	SendJSONResponse(rec, http.StatusOK, map[string]float64{"bad": math.NaN()})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
}

func TestDecodeJSONBody(t *testing.T) {
	var dst struct {
		UserID string `json:"userId"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"userId":"u1"}`))
	require.NoError(t, DecodeJSONBody(req, &dst))
	assert.Equal(t, "u1", dst.UserID)

	for _, body := range []string{"", "{", "[1,2"} {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		err := DecodeJSONBody(req, &dst)
		require.Error(t, err, "body %q", body)
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrBadRequest))
		assert.Equal(t, http.StatusBadRequest, apperrors.GetStatusCode(err))
		assert.Equal(t, "invalid JSON format", apperrors.GetMessage(err))
	}

	var appErr *apperrors.AppError
	err := DecodeJSONBody(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"userId":7}`)), &dst)
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Details, "cannot unmarshal number")
}
