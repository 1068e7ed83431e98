package logging

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"unicode"
)

// maxChainDepth caps the unwrap walk in errorChain so cyclic or absurdly
// deep wrapping cannot stall a log call.
const maxChainDepth = 50

// stackTracer is satisfied by error types that carry a captured stack.
type stackTracer interface {
	Stack() string
}

// IsErrorLike reports whether v carries error semantics: any non-nil Go
// error, or a map or struct exposing a non-empty string message. The loose
// shape check mirrors how panic values and decoded JSON errors arrive at a
// log call site.
func IsErrorLike(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.(error); ok {
		return !isNilValue(v)
	}
	switch typed := v.(type) {
	case map[string]any:
		return hasMessage(typed["message"])
	case Fields:
		return hasMessage(typed["message"])
	case map[string]string:
		return typed["message"] != emptyString
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return false
	}
	field := rv.FieldByName("Message")
	return field.IsValid() && field.Kind() == reflect.String && field.String() != emptyString
}

// SerializeError converts any value into a loggable map. Errors and
// error-like values yield at least "type" and "message" plus their extra
// exported fields; anything else is stringified under an "error" key so a
// bad argument still leaves a trace instead of aborting the log call.
func SerializeError(v any) map[string]any {
	if !IsErrorLike(v) {
		return map[string]any{"error": stringify(v)}
	}
	if err, ok := v.(error); ok {
		return serializeGoError(err)
	}
	switch typed := v.(type) {
	case map[string]any:
		return serializeErrorMap(typed)
	case Fields:
		return serializeErrorMap(typed)
	case map[string]string:
		converted := make(map[string]any, len(typed))
		for key, val := range typed {
			converted[key] = val
		}
		return serializeErrorMap(converted)
	}
	return serializeErrorStruct(v)
}

func serializeGoError(err error) map[string]any {
	out := make(map[string]any, 6)
	out["type"] = errorTypeName(err)
	out["message"] = err.Error()
	if stack := errorStack(err); stack != emptyString {
		out["stack"] = stack
	}
	appendOwnFields(reflect.ValueOf(err), out)
	if chain, root := errorChain(err); len(chain) > 1 {
		out["chain"] = chain
		out["root"] = root
	}
	return out
}

func serializeErrorMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m)+1)
	if name, ok := m["name"].(string); ok && name != emptyString {
		out["type"] = name
	} else {
		out["type"] = "error"
	}
	out["message"] = m["message"]
	if stack, ok := m["stack"].(string); ok && stack != emptyString {
		out["stack"] = stack
	}
	for key, val := range m {
		switch key {
		case "name", "message", "stack":
			continue
		}
		out[key] = val
	}
	return out
}

func serializeErrorStruct(v any) map[string]any {
	rv := reflect.Indirect(reflect.ValueOf(v))
	out := make(map[string]any, rv.NumField()+1)
	out["type"] = structTypeName(rv.Type())
	out["message"] = rv.FieldByName("Message").String()
	appendOwnFields(rv, out)
	return out
}

// appendOwnFields copies the exported fields of a struct error into out,
// skipping the canonical name/message/stack slots which are already set.
// Embedded structs are flattened the same way field promotion would.
func appendOwnFields(rv reflect.Value, out map[string]any) {
	rv = reflect.Indirect(rv)
	if rv.Kind() != reflect.Struct {
		return
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		value := rv.Field(i)
		if field.Anonymous {
			appendOwnFields(value, out)
			continue
		}
		key := fieldKey(field)
		if strings.EqualFold(key, "name") || strings.EqualFold(key, "message") || strings.EqualFold(key, "stack") {
			if strings.EqualFold(key, "stack") {
				if stack, ok := value.Interface().(string); ok && stack != emptyString {
					out["stack"] = stack
				}
			}
			continue
		}
		out[key] = ownFieldValue(value)
	}
}

// fieldKey resolves the output key for a struct field: the json tag when one
// is present, otherwise the field name in lower camel case.
func fieldKey(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag != emptyString {
		name, _, _ := strings.Cut(tag, ",")
		if name != emptyString && name != "-" {
			return name
		}
	}
	return lowerCamel(field.Name)
}

func lowerCamel(name string) string {
	if name == emptyString {
		return name
	}
	runes := []rune(name)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

func ownFieldValue(value reflect.Value) any {
	if !value.CanInterface() {
		return nil
	}
	raw := value.Interface()
	if err, ok := raw.(error); ok && !isNilValue(err) {
		return err.Error()
	}
	return raw
}

// errorStack extracts a captured stack from err, either through the
// stackTracer interface anywhere in the unwrap chain or from an exported
// Stack string field on the concrete type.
func errorStack(err error) string {
	var st stackTracer
	if errors.As(err, &st) {
		return st.Stack()
	}
	rv := reflect.Indirect(reflect.ValueOf(err))
	if rv.Kind() == reflect.Struct {
		field := rv.FieldByName("Stack")
		if field.IsValid() && field.Kind() == reflect.String {
			return field.String()
		}
	}
	return emptyString
}

// errorChain walks the Unwrap chain collecting each message in order from
// outermost to root cause. Repeated messages stop the walk, guarding against
// cyclic wrapping.
func errorChain(err error) (chain []string, root string) {
	seen := make(map[string]struct{}, 8)
	for err != nil && len(chain) < maxChainDepth {
		msg := err.Error()
		if _, dup := seen[msg]; dup {
			break
		}
		seen[msg] = struct{}{}
		chain = append(chain, msg)
		err = errors.Unwrap(err)
	}
	if len(chain) > 0 {
		root = chain[len(chain)-1]
	}
	return chain, root
}

func errorTypeName(err error) string {
	t := reflect.TypeOf(err)
	if t == nil {
		return "error"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return structTypeName(t)
}

func structTypeName(t reflect.Type) string {
	if name := t.Name(); name != emptyString {
		return name
	}
	return t.String()
}

// ExtractQueryParams parses the query portion of rawURL into a flat map.
// Repeated parameters keep the last value. Unparseable input yields an
// empty map.
func ExtractQueryParams(rawURL string) map[string]string {
	params := make(map[string]string)
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return params
	}
	for key, values := range parsed.Query() {
		if len(values) == 0 {
			continue
		}
		params[key] = values[len(values)-1]
	}
	return params
}

func hasMessage(v any) bool {
	msg, ok := v.(string)
	return ok && msg != emptyString
}

func stringify(v any) string {
	switch typed := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return typed
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprintf("%v", typed)
	}
}

func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
