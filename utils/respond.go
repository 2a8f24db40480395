// utils/respond.go
package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

// RespondJSON writes payload as the JSON response body with the given
// status code.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// RespondMessage writes a JSON body of the form {"message": ...}.
func RespondMessage(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"message": message})
}

// RespondStoreError answers a failed store operation with a 500. The
// underlying error is logged, not echoed to the client.
func RespondStoreError(w http.ResponseWriter, message string, err error) {
	log.Printf("%s: %v", message, err)
	RespondMessage(w, http.StatusInternalServerError, message)
}
