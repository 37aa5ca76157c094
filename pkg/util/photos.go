package util

import (
	"bytes"
	"encoding/json"
)

// DecodePhotoList reads a stored photo column. It accepts a JSON list of
// URLs or the same list encoded once more as a JSON string. Anything else
// decodes to nil.
func DecodePhotoList(raw []byte) []string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return nil
	}
	if err := json.Unmarshal([]byte(encoded), &list); err != nil {
		return nil
	}
	return list
}
