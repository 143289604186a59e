package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", apperror.ErrInvalidStatus, http.StatusBadRequest, apperror.CodeValidation},
		{"not found", apperror.ErrOrderNotFound, http.StatusNotFound, apperror.CodeNotFound},
		{"forbidden", apperror.ErrForbidden, http.StatusForbidden, apperror.CodeForbidden},
		{"insufficient stock", apperror.ErrInsufficientStock, http.StatusConflict, apperror.CodeInsufficientStock},
		{"number exhausted", apperror.ErrOrderNumberExhausted, http.StatusServiceUnavailable, apperror.CodeOrderNumberExhausted},
		{"delivery failed", apperror.ErrDeliveryFailed, http.StatusInternalServerError, apperror.CodeDeliveryFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/orders/42", nil)
			rec := httptest.NewRecorder()

			Error(rec, req, tt.err)

			assert.Equal(t, tt.status, rec.Code)

			var resp apperror.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestErrorHidesInternals(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/orders/42", nil)
	rec := httptest.NewRecorder()

	Error(rec, req, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp apperror.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, apperror.CodeInternalError, resp.Error)
	assert.NotContains(t, resp.Message, "pq:")
}

func TestJSONNilPayload(t *testing.T) {
	rec := httptest.NewRecorder()

	JSON(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}
