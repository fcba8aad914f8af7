package handler

import (
	"context"

	"github.com/graphql-go/graphql"
)

// Execute runs a request against the booking schema. The HTTP layer and
// in-process callers share it.
func (h *GraphQLHandler) Execute(ctx context.Context, req Request) *graphql.Result {
	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})
	tagRequestErrors(result)

	if result.HasErrors() {
		h.log.Debug("GraphQL request completed with errors",
			"operation", req.OperationName,
			"errors", len(result.Errors),
		)
	}
	return result
}
