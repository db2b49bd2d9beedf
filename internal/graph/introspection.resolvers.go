package graph

import (
	"github.com/99designs/gqlgen/graphql/introspection"
)

// introspectionField reads a field of the gqlgen introspection types. It
// reports false when obj is not one of them.
func introspectionField(obj any, name string, args map[string]any) (any, bool) {
	switch o := obj.(type) {
	case *introspection.Schema:
		return schemaField(o, name), true
	case *introspection.Type:
		return typeField(o, name, args), true
	case *introspection.Field:
		switch name {
		case "name":
			return o.Name, true
		case "description":
			return optString(o.Description()), true
		case "args":
			return argList(o.Args), true
		case "type":
			return optType(o.Type), true
		case "isDeprecated":
			return o.IsDeprecated(), true
		case "deprecationReason":
			return optString(o.DeprecationReason()), true
		}
		return nil, true
	case *introspection.InputValue:
		switch name {
		case "name":
			return o.Name, true
		case "description":
			return optString(o.Description()), true
		case "type":
			return optType(o.Type), true
		case "defaultValue":
			return optString(o.DefaultValue), true
		case "isDeprecated":
			return o.IsDeprecated(), true
		case "deprecationReason":
			return optString(o.DeprecationReason()), true
		}
		return nil, true
	case *introspection.EnumValue:
		switch name {
		case "name":
			return o.Name, true
		case "description":
			return optString(o.Description()), true
		case "isDeprecated":
			return o.IsDeprecated(), true
		case "deprecationReason":
			return optString(o.DeprecationReason()), true
		}
		return nil, true
	case *introspection.Directive:
		switch name {
		case "name":
			return o.Name, true
		case "description":
			return optString(o.Description()), true
		case "locations":
			return stringList(o.Locations), true
		case "args":
			return argList(o.Args), true
		case "isRepeatable":
			return o.IsRepeatable, true
		}
		return nil, true
	}
	return nil, false
}

func schemaField(s *introspection.Schema, name string) any {
	switch name {
	case "description":
		return optString(s.Description())
	case "types":
		return types(s.Types())
	case "queryType":
		return optType(s.QueryType())
	case "mutationType":
		return optType(s.MutationType())
	case "subscriptionType":
		return optType(s.SubscriptionType())
	case "directives":
		ds := s.Directives()
		out := make([]any, len(ds))
		for i := range ds {
			out[i] = &ds[i]
		}
		return out
	}
	return nil
}

func typeField(t *introspection.Type, name string, args map[string]any) any {
	includeDeprecated, _ := args["includeDeprecated"].(bool)

	switch name {
	case "kind":
		return t.Kind()
	case "name":
		return optString(t.Name())
	case "description":
		return optString(t.Description())
	case "specifiedByURL":
		return optString(t.SpecifiedByURL())
	case "fields":
		fs := t.Fields(includeDeprecated)
		if fs == nil {
			return nil
		}
		out := make([]any, len(fs))
		for i := range fs {
			out[i] = &fs[i]
		}
		return out
	case "interfaces":
		return types(t.Interfaces())
	case "possibleTypes":
		return types(t.PossibleTypes())
	case "enumValues":
		vs := t.EnumValues(includeDeprecated)
		if vs == nil {
			return nil
		}
		out := make([]any, len(vs))
		for i := range vs {
			out[i] = &vs[i]
		}
		return out
	case "inputFields":
		return inputValues(t.InputFields())
	case "ofType":
		return optType(t.OfType())
	}
	return nil
}

func types(ts []introspection.Type) any {
	if ts == nil {
		return nil
	}
	out := make([]any, len(ts))
	for i := range ts {
		out[i] = &ts[i]
	}
	return out
}

// inputValues keeps nil as null, for inputFields of non-input types.
func inputValues(vs []introspection.InputValue) any {
	if vs == nil {
		return nil
	}
	return argList(vs)
}

func argList(vs []introspection.InputValue) []any {
	out := make([]any, len(vs))
	for i := range vs {
		out[i] = &vs[i]
	}
	return out
}

func stringList(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// optType and optString keep typed nil pointers out of the result tree.
func optType(t *introspection.Type) any {
	if t == nil {
		return nil
	}
	return t
}

func optString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
