package types

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUintParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		param    string
		expected uint
		ok       bool
	}{
		{name: "valid id", param: "42", expected: 42, ok: true},
		{name: "zero", param: "0", expected: 0, ok: true},
		{name: "negative", param: "-1", ok: false},
		{name: "not a number", param: "abc", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Params = gin.Params{{Key: "id", Value: tt.param}}

			value, ok := ParseUintParam(c, "id")

			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, value)
			} else {
				assert.Equal(t, http.StatusBadRequest, w.Code)
			}
		})
	}
}

func TestBindJSONOrError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	type payload struct {
		Name string `json:"name" binding:"required"`
	}

	t.Run("valid body", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("POST", "/", bytes.NewReader([]byte(`{"name":"draft"}`)))
		c.Request.Header.Set("Content-Type", "application/json")

		var target payload
		ok := BindJSONOrError(c, &target)

		assert.True(t, ok)
		assert.Equal(t, "draft", target.Name)
	})

	t.Run("missing required field", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("POST", "/", bytes.NewReader([]byte(`{}`)))
		c.Request.Header.Set("Content-Type", "application/json")

		var target payload
		ok := BindJSONOrError(c, &target)

		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSendHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		send           func(c *gin.Context)
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "bad request",
			send:           func(c *gin.Context) { SendBadRequest(c, "missing field") },
			expectedStatus: http.StatusBadRequest,
			expectedError:  "missing field",
		},
		{
			name:           "not found",
			send:           func(c *gin.Context) { SendNotFound(c, "no such transcript") },
			expectedStatus: http.StatusNotFound,
			expectedError:  "no such transcript",
		},
		{
			name:           "conflict",
			send:           func(c *gin.Context) { SendConflict(c, "job is running") },
			expectedStatus: http.StatusConflict,
			expectedError:  "job is running",
		},
		{
			name:           "internal error",
			send:           func(c *gin.Context) { SendInternalError(c, "boom") },
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			tt.send(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedError, resp.Error)
		})
	}
}
