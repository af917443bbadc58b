package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/schooldata/internal/database"
	"github.com/palemoky/schooldata/internal/gateway"
	"github.com/palemoky/schooldata/internal/testutil"
)

func setupServer(t *testing.T) (*Server, *database.Repository) {
	t.Helper()
	db, repo := testutil.SetupTestDB(t)
	testutil.SeedFixture(t, repo)
	return NewServer(gateway.New(db), "schule-test", "0.0.0"), repo
}

type rawResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type toolResult struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	IsError bool `json:"isError"`
}

// handle sends one message and decodes the reply
func handle(t *testing.T, s *Server, msg string) rawResponse {
	t.Helper()

	reply := s.Handle(context.Background(), []byte(msg))
	require.NotNil(t, reply, "expected a reply to %s", msg)

	data, err := json.Marshal(reply)
	require.NoError(t, err)

	var r rawResponse
	require.NoError(t, json.Unmarshal(data, &r), string(data))
	return r
}

func callTool(t *testing.T, s *Server, name, args string) toolResult {
	t.Helper()

	r := handle(t, s, `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"`+name+`","arguments":`+args+`}}`)
	require.Nil(t, r.Error)

	var res toolResult
	require.NoError(t, json.Unmarshal(r.Result, &res))
	require.Len(t, res.Content, 1)
	assert.Equal(t, "text", res.Content[0].Type)
	return res
}

func TestInitialize(t *testing.T) {
	s, _ := setupServer(t)

	r := handle(t, s, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"1"}}}`)
	require.Nil(t, r.Error)
	assert.Equal(t, "1", string(r.ID))

	var init struct {
		ProtocolVersion string         `json:"protocolVersion"`
		Capabilities    map[string]any `json:"capabilities"`
		ServerInfo      struct {
			Name    string `json:"name"`
			Version string `json:"version"`
		} `json:"serverInfo"`
	}
	require.NoError(t, json.Unmarshal(r.Result, &init))
	assert.Equal(t, "2025-03-26", init.ProtocolVersion)
	assert.Equal(t, "schule-test", init.ServerInfo.Name)
	assert.Equal(t, "0.0.0", init.ServerInfo.Version)
	assert.Contains(t, init.Capabilities, "tools")
}

func TestToolsList(t *testing.T) {
	s, _ := setupServer(t)

	r := handle(t, s, `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)
	require.Nil(t, r.Error)

	var result struct {
		Tools []struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			InputSchema struct {
				Type       string         `json:"type"`
				Properties map[string]any `json:"properties"`
				Required   []string       `json:"required"`
			} `json:"inputSchema"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(r.Result, &result))
	require.Len(t, result.Tools, 3)

	byName := make(map[string][]string)
	for _, tool := range result.Tools {
		assert.Equal(t, "object", tool.InputSchema.Type)
		assert.NotEmpty(t, tool.Description)
		byName[tool.Name] = tool.InputSchema.Required
	}
	assert.Equal(t, map[string][]string{
		gateway.ToolQueryDatabase: {"query"},
		gateway.ToolListTables:    nil,
		gateway.ToolDescribeTable: {"table_name"},
	}, byName)
}

func TestToolsCall(t *testing.T) {
	s, repo := setupServer(t)

	tests := []struct {
		name      string
		tool      string
		args      string
		wantError bool
		check     func(t *testing.T, text string)
	}{
		{
			name: "select",
			tool: gateway.ToolQueryDatabase,
			args: `{"query":"SELECT id FROM schueler ORDER BY id LIMIT 1"}`,
			check: func(t *testing.T, text string) {
				assert.JSONEq(t, `[{"id": 1}]`, text)
			},
		},
		{
			name:      "write rejected",
			tool:      gateway.ToolQueryDatabase,
			args:      `{"query":"DELETE FROM schueler"}`,
			wantError: true,
			check: func(t *testing.T, text string) {
				assert.Equal(t, "Error: only SELECT queries are allowed", text)
			},
		},
		{
			name:      "chained statements rejected",
			tool:      gateway.ToolQueryDatabase,
			args:      `{"query":"SELECT 1; DELETE FROM schueler"}`,
			wantError: true,
			check: func(t *testing.T, text string) {
				assert.Equal(t, "Error: you can only execute one statement at a time", text)
			},
		},
		{
			name:      "bad arguments",
			tool:      gateway.ToolQueryDatabase,
			args:      `{"query":5}`,
			wantError: true,
			check: func(t *testing.T, text string) {
				assert.Contains(t, text, "Error: ")
			},
		},
		{
			name: "list tables without arguments",
			tool: gateway.ToolListTables,
			args: `null`,
			check: func(t *testing.T, text string) {
				assert.Contains(t, text, `"schueler"`)
			},
		},
		{
			name: "unknown table describes as empty",
			tool: gateway.ToolDescribeTable,
			args: `{"table_name":"nonexistent"}`,
			check: func(t *testing.T, text string) {
				assert.Equal(t, "[]", text)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, s, tt.tool, tt.args)
			assert.Equal(t, tt.wantError, res.IsError)
			tt.check(t, res.Content[0].Text)
		})
	}

	count, err := repo.CountRows(database.TableStudents)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestHandleErrors(t *testing.T) {
	s, _ := setupServer(t)

	tests := []struct {
		name string
		msg  string
		code int
	}{
		{"parse error", `{not json`, -32700},
		{"unknown method", `{"jsonrpc":"2.0","id":1,"method":"resources/list"}`, -32601},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := handle(t, s, tt.msg)
			require.NotNil(t, r.Error)
			assert.Equal(t, tt.code, r.Error.Code)
		})
	}

	r := handle(t, s, `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"drop_table","arguments":{}}}`)
	assert.NotNil(t, r.Error, "unregistered tool")
}

func TestHandleNotificationGetsNoReply(t *testing.T) {
	s, _ := setupServer(t)
	assert.Nil(t, s.Handle(context.Background(), []byte(`{"jsonrpc":"2.0","method":"notifications/initialized"}`)))
}

func TestServeOverPipes(t *testing.T) {
	s, _ := setupServer(t)

	inR, inW := io.Pipe()
	outR, outW := io.Pipe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, inR, outW) }()

	replies := bufio.NewScanner(outR)
	send := func(msg string) rawResponse {
		t.Helper()
		_, err := io.WriteString(inW, msg+"\n")
		require.NoError(t, err)
		require.True(t, replies.Scan(), "no reply to %s", msg)

		var r rawResponse
		require.NoError(t, json.Unmarshal(replies.Bytes(), &r), replies.Text())
		return r
	}

	r := send(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"1"}}}`)
	assert.Equal(t, "1", string(r.ID))
	assert.Nil(t, r.Error)

	// the notification is swallowed, the next reply belongs to the call
	_, err := io.WriteString(inW, `{"jsonrpc":"2.0","method":"notifications/initialized"}`+"\n")
	require.NoError(t, err)

	r = send(`{"jsonrpc":"2.0","id":"q","method":"tools/call","params":{"name":"query_database","arguments":{"query":"SELECT COUNT(*) AS n FROM noten"}}}`)
	assert.Equal(t, `"q"`, string(r.ID))
	var res toolResult
	require.NoError(t, json.Unmarshal(r.Result, &res))
	assert.JSONEq(t, `[{"n": 4}]`, res.Content[0].Text)

	cancel()
	_ = inW.Close()
	go func() {
		// drain anything written after cancellation
		_, _ = io.Copy(io.Discard, outR)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not stop after cancel")
	}
}
