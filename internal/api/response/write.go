package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes body as a JSON response with the given status. A nil
// body sends the status line and headers only.
func JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// NoContent writes a 204 No Content response. Cancel is the only
// endpoint with nothing to return.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
