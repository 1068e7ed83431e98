package logging

import (
	"fmt"
	"reflect"
	"sort"
)

// Maximum recursion depth to prevent stack overflow
const maxDumpDepth = 10

// maxDumpElements caps how many slice or array elements are logged.
const maxDumpElements = 10

// Dump logs the contents of v through l at debug level, one entry per
// scalar. Structs log their exported fields, maps and slices log their
// elements, basic types log their values. Pointers are followed with cycle
// detection, so self-referential structures terminate.
func Dump(l Logger, v any) {
	if l == nil {
		return
	}
	if v == nil {
		l.DebugWith().Msg("Dump: <nil>")
		return
	}
	dumpValue(l, v, emptyString, make(map[uintptr]bool), 0)
}

// dumpValue walks one value, emitting a debug line per scalar it reaches.
func dumpValue(l Logger, v any, prefix string, visited map[uintptr]bool, depth int) {
	if depth > maxDumpDepth {
		l.DebugWith().Msgf("%s: <max depth reached>", prefix)
		return
	}
	if v == nil {
		l.DebugWith().Msgf("%s: <nil>", prefix)
		return
	}

	val := reflect.ValueOf(v)

	// Unwrap interface and pointer layers before dispatching on kind.
	// Pointer identity feeds the visited set, which is what terminates
	// self-referential structures. Cycles through maps and slices are not
	// tracked by address; the depth guard bounds those instead.
	for val.Kind() == reflect.Interface || val.Kind() == reflect.Pointer {
		if val.IsNil() {
			l.DebugWith().Msgf("%s: <nil>", prefix)
			return
		}
		if val.Kind() == reflect.Pointer {
			addr := val.Pointer()
			if visited[addr] {
				l.DebugWith().Msgf("%s: <circular reference>", prefix)
				return
			}
			visited[addr] = true
		}
		val = val.Elem()
	}

	switch val.Kind() {
	case reflect.Struct:
		dumpStruct(l, val, prefix, visited, depth)
	case reflect.Map:
		dumpMap(l, val, prefix, visited, depth)
	case reflect.Slice, reflect.Array:
		dumpSequence(l, val, prefix, visited, depth)
	default:
		if val.CanInterface() {
			l.DebugWith().Msgf("%s: %v", prefix, val.Interface())
		} else {
			l.DebugWith().Msgf("%s: %v", prefix, v)
		}
	}
}

func dumpStruct(l Logger, val reflect.Value, prefix string, visited map[uintptr]bool, depth int) {
	typ := val.Type()
	if prefix == emptyString {
		l.DebugWith().Msgf("Struct: %s", typ.Name())
	} else {
		l.DebugWith().Msgf("%s: %s {", prefix, typ.Name())
	}

	for i := 0; i < val.NumField(); i++ {
		fv := val.Field(i)
		if !fv.CanInterface() {
			// unexported
			continue
		}
		name := typ.Field(i).Name
		if prefix != emptyString {
			name = prefix + "." + name
		}
		dumpValue(l, fv.Interface(), name, visited, depth+1)
	}

	if prefix != emptyString {
		l.DebugWith().Msgf("%s: }", prefix)
	}
}

func dumpMap(l Logger, val reflect.Value, prefix string, visited map[uintptr]bool, depth int) {
	typ := val.Type()
	l.DebugWith().Msgf("%s: map[%s]%s (len: %d) {",
		prefix, typ.Key().String(), typ.Elem().String(), val.Len())

	// Entries are emitted in sorted key order so consecutive dumps of the
	// same map line up.
	keys := val.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})
	for _, k := range keys {
		entry := fmt.Sprintf("%s[%v]", prefix, k.Interface())
		dumpValue(l, val.MapIndex(k).Interface(), entry, visited, depth+1)
	}

	l.DebugWith().Msgf("%s: }", prefix)
}

func dumpSequence(l Logger, val reflect.Value, prefix string, visited map[uintptr]bool, depth int) {
	l.DebugWith().Msgf("%s: %s (len: %d, cap: %d) {",
		prefix, val.Type().String(), val.Len(), val.Cap())

	n := val.Len()
	if n > maxDumpElements {
		n = maxDumpElements
	}
	for i := 0; i < n; i++ {
		entry := fmt.Sprintf("%s[%d]", prefix, i)
		elem := val.Index(i)
		if !elem.CanInterface() {
			elem = reflect.New(elem.Type()).Elem()
		}
		dumpValue(l, elem.Interface(), entry, visited, depth+1)
	}
	if val.Len() > maxDumpElements {
		l.DebugWith().Msgf("%s: ... (%d more elements)", prefix, val.Len()-maxDumpElements)
	}

	l.DebugWith().Msgf("%s: }", prefix)
}
