package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"

	"github.com/phrazzld/quill-api/internal/api/shared"
	"github.com/phrazzld/quill-api/internal/graph"
	"github.com/phrazzld/quill-api/internal/platform/logger"
)

// GraphQLRequest represents the GraphQL-over-HTTP request body
type GraphQLRequest struct {
	Query         string                 `json:"query" validate:"required"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// GraphQLHandler serves POST and GET /graphql. A GET without a query
// serves the playground page instead.
type GraphQLHandler struct {
	schema     graphql.Schema
	playground bool
}

// NewGraphQLHandler creates a new GraphQLHandler
func NewGraphQLHandler(schema graphql.Schema, playground bool) *GraphQLHandler {
	return &GraphQLHandler{schema: schema, playground: playground}
}

// ServeHTTP implements http.Handler
func (h *GraphQLHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handlePost(w, r)
	case http.MethodGet:
		h.handleGet(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed", nil)
	}
}

func (h *GraphQLHandler) handlePost(w http.ResponseWriter, r *http.Request) {
	var req GraphQLRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Query is required", err)
		return
	}

	h.execute(w, r, req)
}

func (h *GraphQLHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	req := GraphQLRequest{
		Query:         params.Get("query"),
		OperationName: params.Get("operationName"),
	}

	if req.Query == "" {
		if h.playground {
			servePlayground(w, r)
			return
		}
		shared.RespondWithError(w, r, http.StatusBadRequest, "Query is required", nil)
		return
	}

	if raw := params.Get("variables"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid variables", err)
			return
		}
	}

	if isMutation(req.Query, req.OperationName) {
		w.Header().Set("Allow", "POST")
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Mutations require POST", nil)
		return
	}

	h.execute(w, r, req)
}

func (h *GraphQLHandler) execute(w http.ResponseWriter, r *http.Request, req GraphQLRequest) {
	result := graph.Execute(r.Context(), h.schema, graph.Request{
		Query:         req.Query,
		OperationName: req.OperationName,
		Variables:     req.Variables,
	})

	if result.HasErrors() {
		logger.FromContext(r.Context()).Debug("graphql request completed with errors",
			slog.Int("error_count", len(result.Errors)),
			slog.String("operation", req.OperationName))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// isMutation reports whether the operation that would run is a mutation.
// Unparseable documents return false and fail later in execution.
func isMutation(query, operationName string) bool {
	doc, err := parser.Parse(parser.ParseParams{Source: query})
	if err != nil {
		return false
	}

	for _, def := range doc.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		if operationName != "" && (op.Name == nil || op.Name.Value != operationName) {
			continue
		}
		if op.Operation == ast.OperationTypeMutation {
			return true
		}
	}
	return false
}
