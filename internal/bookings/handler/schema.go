package handler

import (
	"travelbook/pkg/model"

	"github.com/graphql-go/graphql"
)

var bookingType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Booking",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"email":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"destination": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"date":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"travelers":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
	},
})

func (h *GraphQLHandler) buildSchema() (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"getBookings": &graphql.Field{
				Type:    graphql.NewList(bookingType),
				Resolve: h.resolveGetBookings,
			},
			"getBooking": &graphql.Field{
				Type: bookingType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: h.resolveGetBooking,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"addBooking": &graphql.Field{
				Type: bookingType,
				Args: graphql.FieldConfigArgument{
					"name":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"destination": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"date":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"travelers":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: h.resolveAddBooking,
			},
			"deleteBooking": &graphql.Field{
				Type: bookingType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: h.resolveDeleteBooking,
			},
			"updateBooking": &graphql.Field{
				Type: bookingType,
				Args: graphql.FieldConfigArgument{
					"id":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"name":        &graphql.ArgumentConfig{Type: graphql.String},
					"email":       &graphql.ArgumentConfig{Type: graphql.String},
					"destination": &graphql.ArgumentConfig{Type: graphql.String},
					"date":        &graphql.ArgumentConfig{Type: graphql.String},
					"travelers":   &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: h.resolveUpdateBooking,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}

func (h *GraphQLHandler) resolveGetBookings(p graphql.ResolveParams) (any, error) {
	bookings, err := h.service.GetAll(p.Context)
	if err != nil {
		return nil, publicError(err)
	}
	return bookings, nil
}

func (h *GraphQLHandler) resolveGetBooking(p graphql.ResolveParams) (any, error) {
	booking, err := h.service.GetByID(p.Context, stringArg(p.Args, "id"))
	if err != nil {
		return nil, publicError(err)
	}
	return booking, nil
}

func (h *GraphQLHandler) resolveAddBooking(p graphql.ResolveParams) (any, error) {
	booking := &model.Booking{
		Name:        stringArg(p.Args, "name"),
		Email:       stringArg(p.Args, "email"),
		Destination: stringArg(p.Args, "destination"),
		Date:        stringArg(p.Args, "date"),
		Travelers:   intArg(p.Args, "travelers"),
	}
	if err := h.service.Create(p.Context, booking); err != nil {
		return nil, publicError(err)
	}
	return booking, nil
}

func (h *GraphQLHandler) resolveDeleteBooking(p graphql.ResolveParams) (any, error) {
	booking, err := h.service.Delete(p.Context, stringArg(p.Args, "id"))
	if err != nil {
		return nil, publicError(err)
	}
	return booking, nil
}

func (h *GraphQLHandler) resolveUpdateBooking(p graphql.ResolveParams) (any, error) {
	update := &model.BookingUpdate{
		Name:        optionalStringArg(p.Args, "name"),
		Email:       optionalStringArg(p.Args, "email"),
		Destination: optionalStringArg(p.Args, "destination"),
		Date:        optionalStringArg(p.Args, "date"),
		Travelers:   optionalIntArg(p.Args, "travelers"),
	}
	booking, err := h.service.Update(p.Context, stringArg(p.Args, "id"), update)
	if err != nil {
		return nil, publicError(err)
	}
	return booking, nil
}

func stringArg(args map[string]any, name string) string {
	s, _ := args[name].(string)
	return s
}

func intArg(args map[string]any, name string) int {
	n, _ := args[name].(int)
	return n
}

// optionalStringArg returns nil for an argument that was omitted or null.
func optionalStringArg(args map[string]any, name string) *string {
	s, ok := args[name].(string)
	if !ok {
		return nil
	}
	return &s
}

func optionalIntArg(args map[string]any, name string) *int {
	n, ok := args[name].(int)
	if !ok {
		return nil
	}
	return &n
}
