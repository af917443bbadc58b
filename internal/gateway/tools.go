package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/palemoky/schooldata/internal/database"
)

const (
	ToolQueryDatabase = "query_database"
	ToolListTables    = "list_tables"
	ToolDescribeTable = "describe_table"
)

// ErrUnknownTool is returned by Call for a name not in Tools
var ErrUnknownTool = errors.New("unknown tool")

// Tool describes one callable operation
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

func objectSchema(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

var tools = []Tool{
	{
		Name:        ToolQueryDatabase,
		Description: "Run a read-only SQL SELECT query against the school database (e.g. 'SELECT * FROM schueler') and return the rows as JSON.",
		InputSchema: objectSchema(map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The SQL SELECT statement to execute",
			},
		}, "query"),
	},
	{
		Name:        ToolListTables,
		Description: "List all tables in the school database.",
		InputSchema: objectSchema(map[string]any{}),
	},
	{
		Name:        ToolDescribeTable,
		Description: "Show the columns of a table: name, declared type, NOT NULL flag, default and primary key flag.",
		InputSchema: objectSchema(map[string]any{
			"table_name": map[string]any{
				"type":        "string",
				"description": "Name of the table to describe",
			},
		}, "table_name"),
	},
}

// Tools returns the tool table
func (g *Gateway) Tools() []Tool {
	out := make([]Tool, len(tools))
	copy(out, tools)
	return out
}

type queryArgs struct {
	Query string `json:"query"`
}

type describeArgs struct {
	TableName string `json:"table_name"`
}

// Call dispatches a tool by name. The text result carries both successes and
// gateway failures; isError marks the latter. err is reserved for unknown tools
// and arguments that cannot be decoded.
func (g *Gateway) Call(ctx context.Context, name string, args json.RawMessage) (text string, isError bool, err error) {
	switch name {
	case ToolQueryDatabase:
		var a queryArgs
		if err := decodeArgs(args, &a); err != nil {
			return "", false, err
		}
		rows, qerr := g.Query(ctx, a.Query)
		return renderResult(rows, qerr)

	case ToolListTables:
		rows, qerr := g.Tables(ctx)
		return renderResult(rows, qerr)

	case ToolDescribeTable:
		var a describeArgs
		if err := decodeArgs(args, &a); err != nil {
			return "", false, err
		}
		rows, qerr := g.Columns(ctx, a.TableName)
		return renderResult(rows, qerr)

	default:
		return "", false, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
}

func renderResult(rows []database.Row, err error) (string, bool, error) {
	if err != nil {
		return ErrorText(err), true, nil
	}
	text, err := FormatRows(rows)
	if err != nil {
		return ErrorText(err), true, nil
	}
	return text, false, nil
}

func decodeArgs(raw json.RawMessage, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}
