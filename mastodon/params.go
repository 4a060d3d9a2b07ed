package mastodon

import (
	"encoding"
	"fmt"
	"net/url"
	"reflect"
)

// Flexibly parses an input map to URL query params (strings).
//
// Slice values are encoded with the Rails array convention Mastodon expects: the key gets a "[]" suffix and one value per element (eg, "exclude_types[]=follow&exclude_types[]=poll"). Nil and empty-string values are skipped, so optional params can be passed unconditionally.
func ParseParams(raw map[string]any) (url.Values, error) {
	out := make(url.Values)
	for k, v := range raw {
		if v == nil {
			continue
		}
		if s, ok := formatParam(v); ok {
			if s != "" {
				out.Set(k, s)
			}
			continue
		}
		ref := reflect.ValueOf(v)
		if ref.Kind() != reflect.Slice {
			return nil, fmt.Errorf("can't marshal query param '%s' with type: %T", k, v)
		}
		for i := 0; i < ref.Len(); i++ {
			s, ok := formatParam(ref.Index(i).Interface())
			if !ok {
				return nil, fmt.Errorf("can't marshal query param '%s' with type: %T", k, v)
			}
			out.Add(k+"[]", s)
		}
	}
	return out, nil
}

func formatParam(v any) (string, bool) {
	switch v := v.(type) {
	case bool, int, uint, int8, int16, int32, int64, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v), true
	case encoding.TextMarshaler:
		b, err := v.MarshalText()
		if err != nil {
			return "", false
		}
		return string(b), true
	}
	// covers string and named string types (eg, NotificationType)
	ref := reflect.ValueOf(v)
	if ref.Kind() == reflect.String {
		return ref.String(), true
	}
	return "", false
}
