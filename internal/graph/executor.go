package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/introspection"
	"github.com/vektah/gqlparser/v2/ast"
)

// execution projects root resolver results onto the selection set of one
// operation. Errors go to the response context through graphql.AddError,
// which tags them with the path of the field context they were raised in.
type execution struct {
	opCtx  *graphql.OperationContext
	schema *ast.Schema
	roots  map[string]FieldFunc
}

// run returns the encoded data. A null in a non-null root field nulls the
// whole response.
func (ex *execution) run(ctx context.Context, root *ast.Definition) json.RawMessage {
	data, ok := ex.executeRoot(ctx, root)
	if !ok {
		return json.RawMessage("null")
	}

	raw, err := json.Marshal(data)
	if err != nil {
		graphql.AddError(ctx, fmt.Errorf("encode response: %w", err))
		return json.RawMessage("null")
	}
	return raw
}

func (ex *execution) executeRoot(ctx context.Context, root *ast.Definition) (any, bool) {
	out := newOrderedMap()

	for _, field := range graphql.CollectFields(ex.opCtx, ex.opCtx.Operation.SelectionSet, implementors(root)) {
		if field.Name == "__typename" {
			out.set(field.Alias, root.Name)
			continue
		}

		args := field.ArgumentMap(ex.opCtx.Variables)
		ctx := graphql.WithFieldContext(ctx, &graphql.FieldContext{
			Object:     root.Name,
			Field:      field,
			Args:       args,
			IsResolver: true,
		})

		value, err := ex.resolveRoot(ctx, field, args)
		if err != nil {
			graphql.AddError(ctx, err)
			if field.Definition.Type.NonNull {
				return nil, false
			}
			out.set(field.Alias, nil)
			continue
		}

		completed, ok := ex.completeValue(ctx, field.Definition.Type, field, value)
		if !ok {
			return nil, false
		}
		out.set(field.Alias, completed)
	}

	return out, true
}

func (ex *execution) resolveRoot(ctx context.Context, field graphql.CollectedField, args map[string]any) (value any, err error) {
	switch field.Name {
	case "__schema":
		if ex.opCtx.DisableIntrospection {
			return nil, errIntrospectionDisabled
		}
		return introspection.WrapSchema(ex.schema), nil
	case "__type":
		if ex.opCtx.DisableIntrospection {
			return nil, errIntrospectionDisabled
		}
		name, _ := args["name"].(string)
		def := ex.schema.Types[name]
		if def == nil {
			return nil, nil
		}
		return introspection.WrapTypeFromDef(ex.schema, def), nil
	}

	fn, ok := ex.roots[field.Name]
	if !ok {
		return nil, fmt.Errorf("no resolver for field %s", field.Name)
	}

	defer func() {
		if r := recover(); r != nil {
			value, err = nil, ex.opCtx.Recover(ctx, r)
		}
	}()

	res, err := fn(ctx, args)
	if err != nil {
		return nil, err
	}
	return toGeneric(res)
}

func (ex *execution) completeValue(
	ctx context.Context,
	typ *ast.Type,
	field graphql.CollectedField,
	value any,
) (any, bool) {

	if value == nil {
		if typ.NonNull {
			graphql.AddError(ctx, errNullValue)
			return nil, false
		}
		return nil, true
	}

	completed, ok := ex.completeNonNull(ctx, typ, field, value)
	if !ok && !typ.NonNull {
		return nil, true
	}
	return completed, ok
}

func (ex *execution) completeNonNull(
	ctx context.Context,
	typ *ast.Type,
	field graphql.CollectedField,
	value any,
) (any, bool) {

	if typ.Elem != nil {
		items, ok := value.([]any)
		if !ok {
			graphql.AddError(ctx, fmt.Errorf("expected a list, got %T", value))
			return nil, false
		}

		out := make([]any, len(items))
		for i, item := range items {
			idx := i
			itemCtx := graphql.WithFieldContext(ctx, &graphql.FieldContext{Index: &idx})

			v, ok := ex.completeValue(itemCtx, typ.Elem, field, item)
			if !ok {
				return nil, false
			}
			out[i] = v
		}
		return out, true
	}

	def := ex.schema.Types[typ.NamedType]
	if def == nil || def.IsLeafType() {
		return value, true
	}

	return ex.executeSelectionSet(ctx, def, field.Selections, value)
}

func (ex *execution) executeSelectionSet(
	ctx context.Context,
	def *ast.Definition,
	set ast.SelectionSet,
	parent any,
) (any, bool) {

	out := newOrderedMap()

	for _, field := range graphql.CollectFields(ex.opCtx, set, implementors(def)) {
		if field.Name == "__typename" {
			out.set(field.Alias, def.Name)
			continue
		}

		ctx := graphql.WithFieldContext(ctx, &graphql.FieldContext{
			Object: def.Name,
			Field:  field,
		})

		value, err := ex.fieldValue(field, parent)
		if err != nil {
			graphql.AddError(ctx, err)
			if field.Definition.Type.NonNull {
				return nil, false
			}
			out.set(field.Alias, nil)
			continue
		}

		completed, ok := ex.completeValue(ctx, field.Definition.Type, field, value)
		if !ok {
			return nil, false
		}
		out.set(field.Alias, completed)
	}

	return out, true
}

func (ex *execution) fieldValue(field graphql.CollectedField, parent any) (any, error) {
	if m, ok := parent.(map[string]any); ok {
		return m[field.Name], nil
	}
	if v, ok := introspectionField(parent, field.Name, field.ArgumentMap(ex.opCtx.Variables)); ok {
		return v, nil
	}
	return nil, fmt.Errorf("cannot select %s on %T", field.Name, parent)
}

func implementors(def *ast.Definition) []string {
	return append([]string{def.Name}, def.Interfaces...)
}

// toGeneric turns a resolver result into maps, slices and scalars.
func toGeneric(v any) (any, error) {
	switch v.(type) {
	case nil, string, bool:
		return v, nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return out, nil
}

// orderedMap keeps response keys in selection order.
type orderedMap struct {
	keys   []string
	values map[string]any
}

func newOrderedMap() *orderedMap {
	return &orderedMap{values: map[string]any{}}
}

func (m *orderedMap) set(key string, v any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

func (m *orderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
