package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"checkout-be/internal/checkout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

const testSchema = `
type Item {
  id: ID!
  name: String!
  note: String
  tags: [String!]!
}

type Query {
  item(id: ID!): Item
  items: [Item!]!
  strict: Item!
  boom: String
}

type Mutation {
  rename(id: ID!, name: String!): Item
}
`

type testItem struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Note *string  `json:"note"`
	Tags []string `json:"tags"`
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "test.graphqls", Input: testSchema})
	require.NoError(t, err)

	items := map[string]*testItem{
		"1": {ID: "1", Name: "first", Tags: []string{"a"}},
		"2": {ID: "2", Name: "second", Tags: []string{}},
	}

	queries := map[string]FieldFunc{
		"item": func(_ context.Context, args map[string]any) (any, error) {
			item, ok := items[args["id"].(string)]
			if !ok {
				return nil, checkout.ErrCheckoutNotFound
			}
			return item, nil
		},
		"items": func(context.Context, map[string]any) (any, error) {
			return []*testItem{items["1"], items["2"]}, nil
		},
		"strict": func(context.Context, map[string]any) (any, error) {
			return (*testItem)(nil), nil
		},
		"boom": func(context.Context, map[string]any) (any, error) {
			panic("boom")
		},
	}
	mutations := map[string]FieldFunc{
		"rename": func(_ context.Context, args map[string]any) (any, error) {
			item := items[args["id"].(string)]
			item.Name = args["name"].(string)
			return item, nil
		},
	}

	return NewServer(NewExecutableSchema(schema, queries, mutations))
}

type gqlRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

func postRaw(t *testing.T, h http.Handler, req gqlRequest) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(req)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func execJSON(t *testing.T, h http.Handler, req gqlRequest) map[string]any {
	t.Helper()
	return decodeBody(t, postRaw(t, h, req))
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func firstError(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()

	errs, ok := resp["errors"].([]any)
	require.True(t, ok, "expected errors in %v", resp)
	require.NotEmpty(t, errs)
	return errs[0].(map[string]any)
}

func TestExecutor_Query(t *testing.T) {
	e := newTestServer(t)

	t.Run("Success_SelectsRequestedFields", func(t *testing.T) {
		resp := execJSON(t, e, gqlRequest{Query: `{ item(id: "1") { id name } }`})

		assert.Nil(t, resp["errors"])
		assert.Equal(t, map[string]any{
			"item": map[string]any{"id": "1", "name": "first"},
		}, resp["data"])
	})

	t.Run("Success_KeepsSelectionOrder", func(t *testing.T) {
		w := postRaw(t, e, gqlRequest{Query: `{ item(id: "1") { name id __typename } }`})

		assert.JSONEq(t, `{"data":{"item":{"name":"first","id":"1","__typename":"Item"}}}`, w.Body.String())
		assert.Contains(t, w.Body.String(), `{"name":"first","id":"1","__typename":"Item"}`)
	})

	t.Run("Success_AliasesAndVariables", func(t *testing.T) {
		resp := execJSON(t, e, gqlRequest{
			Query:     `query Q($id: ID!) { a: item(id: $id) { name } b: item(id: "2") { label: name } }`,
			Variables: map[string]any{"id": "1"},
		})

		assert.Equal(t, map[string]any{
			"a": map[string]any{"name": "first"},
			"b": map[string]any{"label": "second"},
		}, resp["data"])
	})

	t.Run("Success_FragmentsAndDirectives", func(t *testing.T) {
		resp := execJSON(t, e, gqlRequest{
			Query: `
				query Q($withTags: Boolean!) {
					items {
						...ItemFields
						tags @include(if: $withTags)
						note @skip(if: true)
					}
				}
				fragment ItemFields on Item { id ... on Item { name } }
			`,
			Variables: map[string]any{"withTags": false},
		})

		assert.Nil(t, resp["errors"])
		assert.Equal(t, map[string]any{
			"items": []any{
				map[string]any{"id": "1", "name": "first"},
				map[string]any{"id": "2", "name": "second"},
			},
		}, resp["data"])
	})

	t.Run("Success_NullableFieldIsNull", func(t *testing.T) {
		resp := execJSON(t, e, gqlRequest{Query: `{ item(id: "1") { note } }`})

		assert.Equal(t, map[string]any{"item": map[string]any{"note": nil}}, resp["data"])
	})

	t.Run("Error_NullableRootFieldGetsNullAndError", func(t *testing.T) {
		resp := execJSON(t, e, gqlRequest{Query: `{ item(id: "9") { id } items { id } }`})

		data := resp["data"].(map[string]any)
		assert.Nil(t, data["item"])
		assert.Len(t, data["items"], 2)

		gqlErr := firstError(t, resp)
		assert.Equal(t, "checkout not found", gqlErr["message"])
		assert.Equal(t, []any{"item"}, gqlErr["path"])
		assert.Equal(t, map[string]any{"code": codeNotFound}, gqlErr["extensions"])
	})

	t.Run("Error_NonNullNullPropagatesToData", func(t *testing.T) {
		resp := execJSON(t, e, gqlRequest{Query: `{ strict { id } }`})

		assert.Nil(t, resp["data"])
		gqlErr := firstError(t, resp)
		assert.Equal(t, errNullValue.Error(), gqlErr["message"])
		assert.Equal(t, []any{"strict"}, gqlErr["path"])
	})

	t.Run("Error_PanicBecomesInternalError", func(t *testing.T) {
		resp := execJSON(t, e, gqlRequest{Query: `{ boom }`})

		assert.Equal(t, map[string]any{"boom": nil}, resp["data"])
		gqlErr := firstError(t, resp)
		assert.Equal(t, errInternal.Error(), gqlErr["message"])
		assert.Equal(t, map[string]any{"code": codeInternal}, gqlErr["extensions"])
	})

	t.Run("Error_ValidationFailure", func(t *testing.T) {
		resp := execJSON(t, e, gqlRequest{Query: `{ item(id: "1") { unknown } }`})

		assert.Nil(t, resp["data"])
		assert.NotEmpty(t, firstError(t, resp)["message"])
	})

	t.Run("Error_MissingVariable", func(t *testing.T) {
		resp := execJSON(t, e, gqlRequest{Query: `query Q($id: ID!) { item(id: $id) { id } }`})

		assert.Nil(t, resp["data"])
		assert.NotEmpty(t, firstError(t, resp)["message"])
	})
}

func TestExecutor_Operations(t *testing.T) {
	e := newTestServer(t)

	t.Run("Success_Mutation", func(t *testing.T) {
		resp := execJSON(t, e, gqlRequest{Query: `mutation { rename(id: "2", name: "renamed") { name } }`})

		assert.Equal(t, map[string]any{"rename": map[string]any{"name": "renamed"}}, resp["data"])
	})

	t.Run("Success_PicksNamedOperation", func(t *testing.T) {
		resp := execJSON(t, e, gqlRequest{
			Query:         `query A { item(id: "1") { id } } query B { items { id } }`,
			OperationName: "A",
		})

		assert.Equal(t, map[string]any{"item": map[string]any{"id": "1"}}, resp["data"])
	})

	t.Run("Error_AmbiguousOperation", func(t *testing.T) {
		resp := execJSON(t, e, gqlRequest{Query: `query A { items { id } } query B { items { id } }`})

		assert.Nil(t, resp["data"])
		assert.NotEmpty(t, firstError(t, resp)["message"])
	})

	t.Run("Error_UnknownOperation", func(t *testing.T) {
		resp := execJSON(t, e, gqlRequest{Query: `query A { items { id } }`, OperationName: "C"})

		assert.Contains(t, firstError(t, resp)["message"], "not found")
	})
}

func TestExecutor_Introspection(t *testing.T) {
	e := newTestServer(t)

	t.Run("Success_Type", func(t *testing.T) {
		resp := execJSON(t, e, gqlRequest{Query: `{
			__type(name: "Item") {
				kind
				name
				fields { name type { kind name ofType { kind name } } }
			}
		}`})

		require.Nil(t, resp["errors"])
		typ := resp["data"].(map[string]any)["__type"].(map[string]any)
		assert.Equal(t, "OBJECT", typ["kind"])
		assert.Equal(t, "Item", typ["name"])

		fields := typ["fields"].([]any)
		require.Len(t, fields, 4)

		id := fields[0].(map[string]any)
		assert.Equal(t, "id", id["name"])
		assert.Equal(t, map[string]any{
			"kind":   "NON_NULL",
			"name":   nil,
			"ofType": map[string]any{"kind": "SCALAR", "name": "ID"},
		}, id["type"])
	})

	t.Run("Success_UnknownTypeIsNull", func(t *testing.T) {
		resp := execJSON(t, e, gqlRequest{Query: `{ __type(name: "Nope") { name } }`})

		assert.Equal(t, map[string]any{"__type": nil}, resp["data"])
	})

	t.Run("Success_Schema", func(t *testing.T) {
		resp := execJSON(t, e, gqlRequest{Query: `{
			__schema {
				queryType { name }
				mutationType { name }
				subscriptionType { name }
				types { name }
				directives { name }
			}
		}`})

		require.Nil(t, resp["errors"])
		schema := resp["data"].(map[string]any)["__schema"].(map[string]any)
		assert.Equal(t, map[string]any{"name": "Query"}, schema["queryType"])
		assert.Equal(t, map[string]any{"name": "Mutation"}, schema["mutationType"])
		assert.Nil(t, schema["subscriptionType"])

		var typeNames []string
		for _, tp := range schema["types"].([]any) {
			typeNames = append(typeNames, tp.(map[string]any)["name"].(string))
		}
		assert.Contains(t, typeNames, "Item")
		assert.Contains(t, typeNames, "__Schema")

		var directiveNames []string
		for _, d := range schema["directives"].([]any) {
			directiveNames = append(directiveNames, d.(map[string]any)["name"].(string))
		}
		assert.Contains(t, directiveNames, "skip")
		assert.Contains(t, directiveNames, "include")
	})
}

func TestPresentError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"NotFound", checkout.ErrCheckoutNotFound, codeNotFound},
		{"Forbidden", checkout.ErrForbidden, codeForbidden},
		{"BadInput", checkout.ErrInvalidCheckoutID, codeBadUserInput},
		{"Internal", checkout.ErrFailedUpdateCheckout, codeInternal},
		{"Wrapped", errors.Join(errors.New("ctx"), checkout.ErrForbidden), codeForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gqlErr := presentError(context.Background(), tt.err)
			assert.Equal(t, tt.code, gqlErr.Extensions["code"])
			assert.ErrorIs(t, gqlErr, tt.err)
		})
	}

	t.Run("UnknownHasNoCode", func(t *testing.T) {
		gqlErr := presentError(context.Background(), errors.New("plain"))
		assert.Equal(t, "plain", gqlErr.Message)
		assert.Nil(t, gqlErr.Extensions)
	})
}
