package registry

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexisbeaulieu97/pagesmith/internal/domain/page"
	pserrors "github.com/alexisbeaulieu97/pagesmith/pkg/errors"
)

// DecodeProps converts a loosely typed property map (from YAML or a form) into
// the typed record for t. Keys use the json field names.
func DecodeProps(t page.ComponentType, values map[string]any) (page.Props, error) {
	if _, ok := Lookup(t); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	data, err := json.Marshal(normalize(values))
	if err != nil {
		return nil, pserrors.NewValidationError(string(t), "props are not representable as JSON", err)
	}
	props, err := page.DecodeProps(t, data)
	if err != nil {
		return nil, pserrors.NewValidationError(string(t), err.Error(), err)
	}
	return props, nil
}

// MergeProps overlays values onto a copy of base. Nested objects are merged
// key by key; lists are replaced.
func MergeProps(base page.Props, values map[string]any) (page.Props, error) {
	doc, err := toDocument(base)
	if err != nil {
		return nil, err
	}
	mergeInto(doc, normalize(values).(map[string]any))
	return DecodeProps(base.Type(), doc)
}

// ApplyValues sets dotted paths (for example "socialLinks.github" or
// "skills.0.level") on a copy of props. Values are coerced to the kind of the
// field they replace; JSON literals are accepted for lists and objects.
func ApplyValues(props page.Props, values map[string]string) (page.Props, error) {
	if props == nil {
		return nil, pserrors.NewValidationError("props", "props are required", nil)
	}
	doc, err := toDocument(props)
	if err != nil {
		return nil, err
	}

	for path, raw := range values {
		if err := setPath(doc, strings.Split(path, "."), raw); err != nil {
			return nil, pserrors.NewValidationError(path, err.Error(), err)
		}
	}

	return DecodeProps(props.Type(), doc)
}

func toDocument(props page.Props) (map[string]any, error) {
	data, err := json.Marshal(props)
	if err != nil {
		return nil, fmt.Errorf("encode props: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode props: %w", err)
	}
	return doc, nil
}

func setPath(node any, path []string, raw string) error {
	key := path[0]
	last := len(path) == 1

	switch n := node.(type) {
	case map[string]any:
		if last {
			n[key] = coerce(n[key], raw)
			return nil
		}
		child, ok := n[key]
		if !ok || child == nil {
			child = map[string]any{}
			n[key] = child
		}
		return setPath(child, path[1:], raw)
	case []any:
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 || idx >= len(n) {
			return fmt.Errorf("index %q out of range", key)
		}
		if last {
			n[idx] = coerce(n[idx], raw)
			return nil
		}
		return setPath(n[idx], path[1:], raw)
	default:
		return fmt.Errorf("cannot descend into %q", key)
	}
}

// coerce parses raw according to the kind of the value it replaces.
func coerce(current any, raw string) any {
	switch current.(type) {
	case string:
		return raw
	case bool:
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	case float64:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	}

	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err == nil {
		if _, isString := decoded.(string); isString || current != nil {
			return decoded
		}
		switch decoded.(type) {
		case []any, map[string]any, bool:
			return decoded
		}
	}
	return raw
}

func mergeInto(dst, src map[string]any) {
	for k, v := range src {
		srcMap, srcIsMap := v.(map[string]any)
		dstMap, dstIsMap := dst[k].(map[string]any)
		if srcIsMap && dstIsMap {
			mergeInto(dstMap, srcMap)
			continue
		}
		dst[k] = v
	}
}

// normalize converts YAML-style map[any]any trees into JSON-friendly maps.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalize(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	case nil:
		return map[string]any(nil)
	default:
		return val
	}
}
