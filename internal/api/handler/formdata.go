package handler

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// decodeForm binds bracket-nested multipart form values onto a JSON-tagged
// request struct whose leaf fields are strings. Keys like "budget[min]"
// become nested objects, repeated keys become arrays, matching how browser
// clients encode structured fields alongside file parts. Typed conversion
// happens in the request mappers, where the expected type is known.
func decodeForm(values url.Values, dst any) error {
	root := map[string]any{}
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		if err := assignFormValue(root, key, vals); err != nil {
			return err
		}
	}

	raw, err := json.Marshal(root)
	if err != nil {
		return fmt.Errorf("encode form values: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("bind form values: %w", err)
	}
	return nil
}

func assignFormValue(root map[string]any, key string, vals []string) error {
	path := splitFormKey(key)
	node := root
	for i, part := range path {
		if i == len(path)-1 {
			switch existing := node[part].(type) {
			case nil:
				if len(vals) == 1 {
					node[part] = vals[0]
				} else {
					node[part] = vals
				}
			case string:
				// Indexed repetition ("requirements[0]", "requirements[1]")
				// arrives as separate keys collapsing onto one path.
				node[part] = append([]string{existing}, vals...)
			case []string:
				node[part] = append(existing, vals...)
			default:
				return fmt.Errorf("form key %q conflicts with a nested value", key)
			}
			return nil
		}
		next, ok := node[part].(map[string]any)
		if !ok {
			if _, exists := node[part]; exists {
				return fmt.Errorf("form key %q conflicts with a scalar value", key)
			}
			next = map[string]any{}
			node[part] = next
		}
		node = next
	}
	return nil
}

// splitFormKey turns "timeline[start_date]" into ["timeline", "start_date"].
// Index segments like "requirements[0]" are dropped so indexed repetition
// collapses onto the same key; repeated values then arrive as an array.
func splitFormKey(key string) []string {
	cleaned := strings.ReplaceAll(key, "]", "")
	parts := strings.Split(cleaned, "[")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" && !isIndex(p) {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{key}
	}
	return out
}

func isIndex(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}
