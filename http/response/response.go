package response

import (
	"encoding/json"
	"log"
	"net/http"
)

// SendJSON encodes and sends a JSON response
func SendJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// Error sends an error response as {"error": msg}
func Error(w http.ResponseWriter, statusCode int, msg string) {
	SendJSON(w, statusCode, map[string]string{"error": msg})
}
