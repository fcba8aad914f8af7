package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"travelbook/internal/bookings/service"
	apperrors "travelbook/pkg/errors"
	httputil "travelbook/pkg/http"
	"travelbook/pkg/logger"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
	"github.com/julienschmidt/httprouter"
)

const Path = "/graphql"

// Request is the standard GraphQL-over-HTTP request body.
type Request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
	OperationName string         `json:"operationName,omitempty"`
}

type GraphQLHandler struct {
	service service.BookingService
	schema  graphql.Schema
	log     *logger.Logger
}

func NewGraphQLHandler(service service.BookingService, log *logger.Logger) (*GraphQLHandler, error) {
	h := &GraphQLHandler{
		service: service,
		log:     log,
	}

	schema, err := h.buildSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to build graphql schema: %w", err)
	}
	h.schema = schema

	return h, nil
}

func (h *GraphQLHandler) Post(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, "Post", apperrors.BadRequest("Invalid request body"))
		return
	}
	h.execute(w, r, req, "Post")
}

func (h *GraphQLHandler) Get(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	req := Request{
		Query:         query.Get("query"),
		OperationName: query.Get("operationName"),
	}
	if raw := query.Get("variables"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
			h.writeError(w, "Get", apperrors.BadRequest("Invalid variables parameter"))
			return
		}
	}
	h.execute(w, r, req, "Get")
}

func (h *GraphQLHandler) execute(w http.ResponseWriter, r *http.Request, req Request, handlerName string) {
	if req.Query == "" {
		h.writeError(w, handlerName, apperrors.BadRequest("Query must not be empty"))
		return
	}

	result := h.Execute(r.Context(), req)

	if err := httputil.WriteJSON(w, http.StatusOK, result); err != nil {
		h.log.Error("failed to write JSON response", "handler", handlerName, "operation", "WriteJSON", "error", err)
	}
}

func (h *GraphQLHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "operation", "WriteError", "error", writeErr)
	}
}

func (h *GraphQLHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST(Path, h.Post)
	router.GET(Path, h.Get)
}

// graphqlError is what resolvers hand to the executor: the public message and
// the code, with any internal cause left behind.
type graphqlError struct {
	message    string
	extensions map[string]any
}

func (e *graphqlError) Error() string {
	return e.message
}

func (e *graphqlError) Extensions() map[string]any {
	return e.extensions
}

func publicError(err error) error {
	appErr := apperrors.AsAppError(err)
	message := appErr.Message
	if appErr.Code == apperrors.CodeInternal {
		message = "Internal server error"
	}
	return &graphqlError{message: message, extensions: appErr.Extensions()}
}

// tagRequestErrors marks errors raised before any resolver ran (syntax,
// unknown fields, missing or null required arguments) as validation errors.
func tagRequestErrors(result *graphql.Result) {
	if result.Data != nil {
		return
	}
	for i := range result.Errors {
		if result.Errors[i].Extensions == nil {
			result.Errors[i].Extensions = map[string]any{"code": apperrors.CodeValidation}
		}
	}
}

var _ gqlerrors.ExtendedError = (*graphqlError)(nil)
