package graph

import (
	"context"
	_ "embed"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

//go:embed schema.graphqls
var schemaSource string

var parsedSchema = gqlparser.MustLoadSchema(&ast.Source{
	Name:  "schema.graphqls",
	Input: schemaSource,
})

// FieldFunc resolves a root field from its coerced arguments. The result
// is projected onto the selection set through its JSON form, so returned
// models carry json tags named after the GraphQL fields.
type FieldFunc func(ctx context.Context, args map[string]any) (any, error)

// NewSchema binds the root fields of the checkout schema to r.
func NewSchema(r *Resolver) graphql.ExecutableSchema {
	q := &queryResolver{r}
	m := &mutationResolver{r}
	return NewExecutableSchema(parsedSchema, q.fields(), m.fields())
}

// NewExecutableSchema serves schema with the given root field resolvers.
// Query root fields run in document order, mutations one after another.
func NewExecutableSchema(schema *ast.Schema, queries, mutations map[string]FieldFunc) graphql.ExecutableSchema {
	return &executableSchema{
		schema:    schema,
		queries:   queries,
		mutations: mutations,
	}
}

type executableSchema struct {
	schema    *ast.Schema
	queries   map[string]FieldFunc
	mutations map[string]FieldFunc
}

func (e *executableSchema) Schema() *ast.Schema {
	return e.schema
}

func (e *executableSchema) Complexity(
	ctx context.Context,
	typeName, field string,
	childComplexity int,
	rawArgs map[string]any,
) (int, bool) {
	return 0, false
}

func (e *executableSchema) Exec(ctx context.Context) graphql.ResponseHandler {
	opCtx := graphql.GetOperationContext(ctx)

	var (
		root  *ast.Definition
		roots map[string]FieldFunc
	)
	switch opCtx.Operation.Operation {
	case ast.Query:
		root, roots = e.schema.Query, e.queries
	case ast.Mutation:
		root, roots = e.schema.Mutation, e.mutations
	default:
		return graphql.OneShot(graphql.ErrorResponse(ctx, "unsupported GraphQL operation"))
	}

	first := true
	return func(ctx context.Context) *graphql.Response {
		if !first {
			return nil
		}
		first = false

		ex := &execution{
			opCtx:  opCtx,
			schema: e.schema,
			roots:  roots,
		}
		return &graphql.Response{Data: ex.run(ctx, root)}
	}
}
