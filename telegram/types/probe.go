package types

import (
	"bytes"
	"encoding/json"

	"github.com/tidwall/gjson"
)

// lookup returns the value stored under key when it is present and not null.
func lookup(data []byte, key string) (gjson.Result, bool) {
	v := gjson.GetBytes(data, key)
	if !v.Exists() || v.Type == gjson.Null {
		return v, false
	}
	return v, true
}

func decodeValue[T any](v gjson.Result) (T, error) {
	var out T
	err := json.Unmarshal([]byte(v.Raw), &out)
	return out, err
}

func present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func cloneRaw(data []byte) json.RawMessage {
	return append(json.RawMessage(nil), data...)
}
