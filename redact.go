package logging

import "strings"

// redactSet holds lower-cased field names whose values must never reach the
// output. Matching is case-insensitive so "APIKey", "apikey" and "ApiKey"
// all hit the same entry.
type redactSet map[string]struct{}

func newRedactSet(paths []string) redactSet {
	if len(paths) == 0 {
		return nil
	}
	set := make(redactSet, len(paths))
	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == emptyString {
			continue
		}
		set[strings.ToLower(path)] = struct{}{}
	}
	return set
}

func (s redactSet) match(key string) bool {
	if len(s) == 0 {
		return false
	}
	_, found := s[strings.ToLower(key)]
	return found
}

// RedactHeaders returns a copy of headers with the value of every key whose
// lower-cased form appears in denylist replaced by RedactedValue. Keys are
// normalized to lower case in the result. The input map is never modified.
func RedactHeaders(headers map[string]string, denylist []string) map[string]string {
	out := make(map[string]string, len(headers))
	deny := newRedactSet(denylist)
	for key, value := range headers {
		lower := strings.ToLower(key)
		if deny.match(lower) {
			out[lower] = RedactedValue
			continue
		}
		out[lower] = value
	}
	return out
}

// redactor rewrites matching fields at any nesting depth, either masking the
// value or dropping the key entirely.
type redactor struct {
	set    redactSet
	remove bool
}

func (r redactor) active() bool { return len(r.set) > 0 }

func (r redactor) match(key string) bool { return r.set.match(key) }

// maskValue applies the redactor to nested containers. Map and slice values
// are rebuilt so the caller's data is left untouched; scalars pass through.
func (r redactor) maskValue(value any) any {
	if !r.active() {
		return value
	}
	switch typed := value.(type) {
	case Fields:
		return Fields(r.maskMap(typed))
	case map[string]any:
		return r.maskMap(typed)
	case map[string]string:
		masked := make(map[string]string, len(typed))
		for key, val := range typed {
			if r.match(key) {
				if !r.remove {
					masked[key] = RedactedValue
				}
				continue
			}
			masked[key] = val
		}
		return masked
	case []any:
		masked := make([]any, len(typed))
		for i, item := range typed {
			masked[i] = r.maskValue(item)
		}
		return masked
	default:
		return value
	}
}

func (r redactor) maskMap(m map[string]any) map[string]any {
	masked := make(map[string]any, len(m))
	for key, val := range m {
		if r.match(key) {
			if !r.remove {
				masked[key] = RedactedValue
			}
			continue
		}
		masked[key] = r.maskValue(val)
	}
	return masked
}
