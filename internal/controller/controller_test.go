package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/qams/internal/dto"
	"github.com/lshigami/qams/internal/model"
	"github.com/lshigami/qams/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantStatus   int
		wantExpected []string
		wantMessage  string
	}{
		{name: "forbidden", err: fmt.Errorf("moderator may not paper.update: %w", service.ErrForbidden), wantStatus: http.StatusForbidden},
		{name: "not found", err: fmt.Errorf("paper 7: %w", service.ErrNotFound), wantStatus: http.StatusNotFound},
		{
			name:         "invalid paper state",
			err:          &service.InvalidPaperStateError{Actual: model.PaperStatusDraft, Expected: []model.PaperStatus{model.PaperStatusSubmitted}},
			wantStatus:   http.StatusBadRequest,
			wantExpected: []string{"submitted"},
		},
		{name: "duplicate claim", err: service.ErrDuplicateClaim, wantStatus: http.StatusConflict},
		{name: "already exists", err: fmt.Errorf("email x: %w", service.ErrAlreadyExists), wantStatus: http.StatusConflict},
		{name: "validation", err: service.ErrValidation, wantStatus: http.StatusBadRequest},
		{name: "credentials", err: service.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized},
		{
			name:        "transaction error hides cause",
			err:         &service.TransactionError{Op: "claim paper", Err: errors.New("connection reset")},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Internal server error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			RespondError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantExpected, body.Expected)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, body.Message)
			}
		})
	}
}

func TestParseIDParam(t *testing.T) {
	for _, tc := range []struct {
		raw    string
		wantOK bool
	}{
		{"12", true},
		{"0", false},
		{"-3", false},
		{"abc", false},
	} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "paper_id", Value: tc.raw}}

		id, ok := ParseIDParam(c, "paper_id")
		assert.Equal(t, tc.wantOK, ok, tc.raw)
		if ok {
			assert.Equal(t, uint(12), id)
		} else {
			assert.Equal(t, http.StatusBadRequest, w.Code)
		}
	}
}
