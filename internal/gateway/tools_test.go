package gateway

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTools(t *testing.T) {
	gw, _ := setupGateway(t)

	list := gw.Tools()
	require.Len(t, list, 3)

	names := make([]string, len(list))
	for i, tool := range list {
		names[i] = tool.Name
		assert.NotEmpty(t, tool.Description)
		assert.Equal(t, "object", tool.InputSchema["type"])
	}
	assert.Equal(t, []string{ToolQueryDatabase, ToolListTables, ToolDescribeTable}, names)
	assert.Equal(t, []string{"query"}, list[0].InputSchema["required"])
	assert.Equal(t, []string{"table_name"}, list[2].InputSchema["required"])
}

func TestCall(t *testing.T) {
	gw, _ := setupGateway(t)
	ctx := context.Background()

	tests := []struct {
		name        string
		tool        string
		args        string
		wantText    string
		wantIsError bool
	}{
		{
			name:        "rejected write",
			tool:        ToolQueryDatabase,
			args:        `{"query": "DELETE FROM schueler"}`,
			wantText:    "Error: only SELECT queries are allowed",
			wantIsError: true,
		},
		{
			name:     "select",
			tool:     ToolQueryDatabase,
			args:     `{"query": "SELECT COUNT(*) AS n FROM schueler"}`,
			wantText: "[\n  {\n    \"n\": 3\n  }\n]",
		},
		{
			name:        "missing query",
			tool:        ToolQueryDatabase,
			args:        `{}`,
			wantText:    "Error: only SELECT queries are allowed",
			wantIsError: true,
		},
		{
			name:     "unknown table",
			tool:     ToolDescribeTable,
			args:     `{"table_name": "nonexistent"}`,
			wantText: "[]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isError, err := gw.Call(ctx, tt.tool, json.RawMessage(tt.args))
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantIsError, isError)
		})
	}
}

func TestCallListTablesWithoutArguments(t *testing.T) {
	gw, _ := setupGateway(t)

	text, isError, err := gw.Call(context.Background(), ToolListTables, nil)
	require.NoError(t, err)
	assert.False(t, isError)
	assert.Len(t, decode(t, text), 4)
}

func TestCallUnknownTool(t *testing.T) {
	gw, _ := setupGateway(t)

	_, _, err := gw.Call(context.Background(), "drop_database", nil)
	assert.ErrorIs(t, err, ErrUnknownTool)
}

func TestCallInvalidArguments(t *testing.T) {
	gw, _ := setupGateway(t)

	_, _, err := gw.Call(context.Background(), ToolQueryDatabase, json.RawMessage(`{"query": 5}`))
	assert.Error(t, err)
}
