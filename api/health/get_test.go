package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scribeworks/scribe-api/api/types"
	"github.com/scribeworks/scribe-api/internal/database"
)

func TestGet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name             string
		setupDeps        func() *types.Dependencies
		expectedDBStatus string
	}{
		{
			name: "healthy with database",
			setupDeps: func() *types.Dependencies {
				db, err := database.Initialize(":memory:", false)
				require.NoError(t, err)
				return &types.Dependencies{DB: db}
			},
			expectedDBStatus: "healthy",
		},
		{
			name: "no database configured",
			setupDeps: func() *types.Dependencies {
				return &types.Dependencies{}
			},
			expectedDBStatus: "not configured",
		},
		{
			name: "unhealthy with closed database",
			setupDeps: func() *types.Dependencies {
				db, err := database.Initialize(":memory:", false)
				require.NoError(t, err)

				sqlDB, err := db.DB.DB()
				require.NoError(t, err)
				require.NoError(t, sqlDB.Close())

				return &types.Dependencies{DB: db}
			},
			expectedDBStatus: "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			deps := tt.setupDeps()
			handler := Get(deps)

			handler(c)

			// Process being up means 200; only the database block varies
			assert.Equal(t, http.StatusOK, w.Code)

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

			assert.Equal(t, "ok", response["status"])
			assert.NotEmpty(t, response["timestamp"])

			dbStatus, ok := response["database"].(map[string]interface{})
			require.True(t, ok, "database block missing")
			assert.Equal(t, tt.expectedDBStatus, dbStatus["status"])

			// Cleanup
			if deps.DB != nil && deps.DB.DB != nil {
				if sqlDB, err := deps.DB.DB.DB(); err == nil {
					sqlDB.Close()
				}
			}
		})
	}
}

func TestDatabaseStatus(t *testing.T) {
	t.Run("nil database", func(t *testing.T) {
		status := databaseStatus(&types.Dependencies{})
		assert.Equal(t, "not configured", status["status"])
	})

	t.Run("healthy database", func(t *testing.T) {
		db, err := database.Initialize(":memory:", false)
		require.NoError(t, err)
		defer db.Close()

		status := databaseStatus(&types.Dependencies{DB: db})
		assert.Equal(t, "healthy", status["status"])
	})
}
