package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// sessionName is the cookie session used for anonymous checkout state.
const sessionName = "session"

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// coerceQuantity turns whatever the client sent into an integer quantity.
// Missing and non-numeric values become zero, which clamps to the minimum.
func coerceQuantity(v any) int {
	switch value := v.(type) {
	case float64:
		return int(value)
	case int:
		return value
	case string:
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return 0
}
