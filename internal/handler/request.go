package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

// requestFields flattens the request body into field name → string value,
// accepting both form-encoded and JSON bodies (the API has always taken
// either). JSON numbers and booleans are stringified, since every consumer
// of these fields parses from strings anyway. A malformed body yields an
// empty map — missing-field validation downstream produces the right
// message.
func requestFields(r *http.Request) map[string]string {
	fields := map[string]string{}

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		var raw map[string]any
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			return fields
		}
		for k, v := range raw {
			switch val := v.(type) {
			case string:
				fields[k] = val
			case float64:
				fields[k] = strconv.FormatFloat(val, 'f', -1, 64)
			case bool:
				fields[k] = strconv.FormatBool(val)
			}
		}
		return fields
	}

	if err := r.ParseForm(); err != nil {
		return fields
	}
	for k, vs := range r.PostForm {
		if len(vs) > 0 {
			fields[k] = vs[0]
		}
	}
	return fields
}
