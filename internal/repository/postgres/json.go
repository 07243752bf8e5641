package postgres

import "encoding/json"

// decodeObject unmarshals a jsonb column into a map, treating NULL, arrays and scalars as empty.
func decodeObject(raw []byte) map[string]any {
	out := map[string]any{}
	if len(raw) == 0 {
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return map[string]any{}
	}
	return out
}

// decodeStringMap keeps only the string values of a jsonb object.
func decodeStringMap(raw []byte) map[string]string {
	obj := decodeObject(raw)
	out := make(map[string]string, len(obj))
	for k, v := range obj {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
