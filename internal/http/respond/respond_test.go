package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, "created", map[string]string{"token": "t"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Code    int               `json:"code"`
		Message string            `json:"message"`
		Data    map[string]string `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, http.StatusCreated, body.Code)
	assert.Equal(t, "created", body.Message)
	assert.Equal(t, "t", body.Data["token"])
}

func TestError_OmitsData(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusNotFound, "book not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"code":404,"message":"book not found"}`, rec.Body.String())
}

func TestFail(t *testing.T) {
	base := errors.New("record not found")

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"status error", NewStatusError(http.StatusNotFound, "book not found", base), http.StatusNotFound, `{"code":404,"message":"book not found"}`},
		{"wrapped status error", fmt.Errorf("find: %w", NewStatusError(http.StatusConflict, "taken", nil)), http.StatusConflict, `{"code":409,"message":"taken"}`},
		{"plain error", base, http.StatusInternalServerError, `{"code":500,"message":"internal server error"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Fail(rec, tc.err)
			assert.Equal(t, tc.wantCode, rec.Code)
			assert.JSONEq(t, tc.wantBody, rec.Body.String())
		})
	}
}

func TestStatusError_Unwrap(t *testing.T) {
	base := errors.New("boom")
	err := NewStatusError(http.StatusBadGateway, "upstream failed", base)

	assert.ErrorIs(t, err, base)
	assert.Equal(t, "upstream failed: boom", err.Error())
	assert.Equal(t, "bare", NewStatusError(http.StatusTeapot, "bare", nil).Error())
}
