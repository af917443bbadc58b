package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/schooldata/internal/database"
	"github.com/palemoky/schooldata/internal/gateway"
	"github.com/palemoky/schooldata/internal/testutil"
)

// setupQueryTestRouter creates a router over a seeded in-memory database
func setupQueryTestRouter(t *testing.T) (*gin.Engine, *database.Repository) {
	t.Helper()

	db, repo := testutil.SetupTestDB(t)
	testutil.SeedFixture(t, repo)

	h := NewQueryHandler(gateway.New(db))
	router := testutil.SetupTestGin()
	router.POST("/query", h.Query)
	router.GET("/tables", h.ListTables)
	router.GET("/tables/:name", h.DescribeTable)
	router.POST("/tools/:name", h.CallTool)
	return router, repo
}

func do(t *testing.T, router *gin.Engine, method, path, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func TestQuery(t *testing.T) {
	router, repo := setupQueryTestRouter(t)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedCode   string
		checkData      func(*testing.T, any)
	}{
		{
			name:           "select",
			body:           `{"query": "SELECT id, klasse FROM schueler ORDER BY id"}`,
			expectedStatus: http.StatusOK,
			checkData: func(t *testing.T, data any) {
				rows := data.([]any)
				require.Len(t, rows, 3)
				assert.Equal(t, "10a", rows[0].(map[string]any)["klasse"])
			},
		},
		{
			name:           "empty result",
			body:           `{"query": "SELECT * FROM noten WHERE note > 6"}`,
			expectedStatus: http.StatusOK,
			checkData: func(t *testing.T, data any) {
				assert.Equal(t, []any{}, data)
			},
		},
		{
			name:           "delete is rejected",
			body:           `{"query": "DELETE FROM schueler"}`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "READ_ONLY",
		},
		{
			name:           "unknown table",
			body:           `{"query": "SELECT * FROM nope"}`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "QUERY_FAILED",
		},
		{
			name:           "missing query",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_REQUEST",
		},
		{
			name:           "malformed body",
			body:           `{"query":`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := do(t, router, http.MethodPost, "/query", tt.body)
			assert.Equal(t, tt.expectedStatus, status)

			if tt.expectedCode != "" {
				e := resp["error"].(map[string]any)
				assert.Equal(t, tt.expectedCode, e["code"])
			}
			if tt.checkData != nil {
				tt.checkData(t, resp["data"])
			}
		})
	}

	count, err := repo.CountRows(database.TableStudents)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count, "rejected statements leave the data alone")
}

func TestListTablesHandler(t *testing.T) {
	router, _ := setupQueryTestRouter(t)

	status, resp := do(t, router, http.MethodGet, "/tables", "")
	assert.Equal(t, http.StatusOK, status)
	assert.ElementsMatch(t, []any{"schueler", "lehrer", "kurse", "noten"}, resp["data"])
}

func TestDescribeTableHandler(t *testing.T) {
	router, _ := setupQueryTestRouter(t)

	status, resp := do(t, router, http.MethodGet, "/tables/kurse", "")
	assert.Equal(t, http.StatusOK, status)
	columns := resp["data"].([]any)
	require.Len(t, columns, 4)
	assert.Equal(t, "lehrer_id", columns[3].(map[string]any)["name"])

	status, resp = do(t, router, http.MethodGet, "/tables/nonexistent", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", resp["error"].(map[string]any)["code"])
}

func TestCallToolHandler(t *testing.T) {
	router, _ := setupQueryTestRouter(t)

	tests := []struct {
		name           string
		path           string
		body           string
		expectedStatus int
		wantText       string
		wantIsError    bool
	}{
		{
			name:           "describe unknown table",
			path:           "/tools/describe_table",
			body:           `{"table_name": "nonexistent"}`,
			expectedStatus: http.StatusOK,
			wantText:       "[]",
		},
		{
			name:           "rejected query is a tool error",
			path:           "/tools/query_database",
			body:           `{"query": "DROP TABLE noten"}`,
			expectedStatus: http.StatusOK,
			wantText:       "Error: only SELECT queries are allowed",
			wantIsError:    true,
		},
		{
			name:           "unknown tool",
			path:           "/tools/drop_all",
			body:           `{}`,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "bad arguments",
			path:           "/tools/query_database",
			body:           `{"query": 1}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := do(t, router, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.expectedStatus, status)

			if status == http.StatusOK {
				data := resp["data"].(map[string]any)
				assert.Equal(t, tt.wantText, data["text"])
				assert.Equal(t, tt.wantIsError, data["is_error"])
			}
		})
	}
}
