// Package mcp serves the gateway tools over the Model Context Protocol on stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/palemoky/schooldata/internal/gateway"
	"github.com/palemoky/schooldata/internal/logger"
)

// ToolService is what the server exposes. *gateway.Gateway satisfies it.
type ToolService interface {
	Tools() []gateway.Tool
	Call(ctx context.Context, name string, args json.RawMessage) (text string, isError bool, err error)
}

// Server registers every gateway tool on an MCP server
type Server struct {
	mcp *server.MCPServer
	log *zap.Logger
}

// NewServer creates a tool server named name. Tool schemas come from the
// gateway's tool table unchanged.
func NewServer(tools ToolService, name, version string) *Server {
	s := &Server{
		mcp: server.NewMCPServer(name, version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
		log: logger.Named("mcp"),
	}

	for _, tool := range tools.Tools() {
		schema, err := json.Marshal(tool.InputSchema)
		if err != nil {
			// the tool table is static; a broken schema is a programming error
			panic(fmt.Sprintf("mcp: schema of tool %s: %v", tool.Name, err))
		}
		s.mcp.AddTool(
			mcpgo.NewToolWithRawSchema(tool.Name, tool.Description, schema),
			s.handler(tools, tool.Name),
		)
	}
	return s
}

// handler adapts ToolService.Call. Every failure, including undecodable
// arguments, is reported as tool output so the client sees "Error: ...".
func (s *Server) handler(tools ToolService, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		start := time.Now()

		args, err := json.Marshal(req.Params.Arguments)
		if err != nil {
			return mcpgo.NewToolResultError(gateway.ErrorText(err)), nil
		}

		text, isError, err := tools.Call(ctx, name, args)
		if err != nil {
			text, isError = gateway.ErrorText(err), true
		}

		s.log.Debug("Tool called",
			zap.String("tool", name),
			zap.Bool("is_error", isError),
			zap.Duration("duration", time.Since(start)))

		if isError {
			return mcpgo.NewToolResultError(text), nil
		}
		return mcpgo.NewToolResultText(text), nil
	}
}

// Serve speaks newline-delimited JSON-RPC on r and w until r is exhausted
// or ctx is cancelled. Only protocol messages are written to w; the
// transport's own errors go to the logger.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(zap.NewStdLog(s.log))

	s.log.Info("Serving tools on stdio")
	return stdio.Listen(ctx, r, w)
}

// Handle processes one raw JSON-RPC message. Notifications yield nil.
func (s *Server) Handle(ctx context.Context, raw []byte) mcpgo.JSONRPCMessage {
	return s.mcp.HandleMessage(ctx, raw)
}
