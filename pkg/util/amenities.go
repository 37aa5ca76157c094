package util

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

var (
	// amenitySeparator matches the delimiters used by older listing forms.
	amenitySeparator = regexp.MustCompile(`[,;]`)
	// multiSpacePattern matches multiple consecutive whitespace characters
	multiSpacePattern = regexp.MustCompile(`\s+`)
)

// NormalizeAmenities turns a stored amenities column into a clean list.
// The column may hold a JSON list, a JSON string with comma or semicolon
// separated values, or a bare delimited string. The result is never nil.
func NormalizeAmenities(raw []byte) []string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []string{}
	}

	var list []interface{}
	if err := json.Unmarshal(raw, &list); err == nil {
		return cleanAmenityList(amenityStrings(list))
	}

	var joined string
	if err := json.Unmarshal(raw, &joined); err == nil {
		return SplitAmenities(joined)
	}
	return SplitAmenities(string(raw))
}

// SplitAmenities splits a delimited amenities string.
func SplitAmenities(s string) []string {
	return cleanAmenityList(amenitySeparator.Split(s, -1))
}

// amenityStrings keeps the scalar items of a decoded JSON list as text.
func amenityStrings(list []interface{}) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case float64:
			out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
		case bool:
			out = append(out, strconv.FormatBool(v))
		}
	}
	return out
}

func cleanAmenityList(list []string) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		a = strings.TrimSpace(multiSpacePattern.ReplaceAllString(a, " "))
		if a == "" {
			continue
		}
		out = append(out, a)
	}
	return out
}
