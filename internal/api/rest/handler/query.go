package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/palemoky/schooldata/internal/database"
	apperrors "github.com/palemoky/schooldata/internal/errors"
	"github.com/palemoky/schooldata/internal/gateway"
)

// Gateway is the query surface behind the HTTP handlers. *gateway.Gateway satisfies it.
type Gateway interface {
	Query(ctx context.Context, sql string) ([]database.Row, error)
	Tables(ctx context.Context) ([]database.Row, error)
	Columns(ctx context.Context, table string) ([]database.Row, error)
	Call(ctx context.Context, name string, args json.RawMessage) (string, bool, error)
}

// QueryHandler exposes the gateway over HTTP
type QueryHandler struct {
	gw Gateway
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(gw Gateway) *QueryHandler {
	return &QueryHandler{gw: gw}
}

type queryRequest struct {
	Query string `json:"query" binding:"required"`
}

// Query runs a read-only SELECT statement from the request body
func (h *QueryHandler) Query(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.InvalidRequest("body must be {\"query\": \"SELECT ...\"}"))
		return
	}

	rows, err := h.gw.Query(c.Request.Context(), req.Query)
	if err != nil {
		respondError(c, gatewayError(err))
		return
	}

	respondOK(c, rows)
}

// ListTables lists the user tables
func (h *QueryHandler) ListTables(c *gin.Context) {
	rows, err := h.gw.Tables(c.Request.Context())
	if err != nil {
		respondError(c, gatewayError(err))
		return
	}

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		if name, ok := row.Get("name"); ok {
			if s, ok := name.(string); ok {
				names = append(names, s)
			}
		}
	}
	respondOK(c, names)
}

// DescribeTable returns the columns of one table
func (h *QueryHandler) DescribeTable(c *gin.Context) {
	table := c.Param("name")

	rows, err := h.gw.Columns(c.Request.Context(), table)
	if err != nil {
		respondError(c, gatewayError(err))
		return
	}
	if len(rows) == 0 {
		respondError(c, apperrors.NotFound("table "+table))
		return
	}

	respondOK(c, rows)
}

// CallTool invokes a tool by name with the raw request body as arguments
func (h *QueryHandler) CallTool(c *gin.Context) {
	name := c.Param("name")

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, apperrors.InvalidRequest("failed to read request body"))
		return
	}

	text, isError, err := h.gw.Call(c.Request.Context(), name, json.RawMessage(body))
	if err != nil {
		if errors.Is(err, gateway.ErrUnknownTool) {
			respondError(c, apperrors.NotFound("tool "+name))
			return
		}
		respondError(c, apperrors.InvalidRequest(err.Error()))
		return
	}

	respondOK(c, gin.H{
		"text":     text,
		"is_error": isError,
	})
}

// gatewayError maps gateway failures onto API errors
func gatewayError(err error) *apperrors.APIError {
	var qe *gateway.QueryError
	switch {
	case errors.Is(err, gateway.ErrReadOnly):
		return apperrors.ErrReadOnly
	case errors.As(err, &qe):
		return apperrors.QueryFailed(qe)
	default:
		return apperrors.Internal("")
	}
}
