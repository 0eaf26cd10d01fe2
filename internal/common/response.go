package common

import (
	"encoding/json"
	"log"
	"net/http"
)

// Envelope is the success body for routes that may carry no data.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, ErrorResponse{Message: message})
}

// RespondWithErr maps err to a status. Server-side failures get a generic
// message and are logged; client errors echo the error text.
func RespondWithErr(w http.ResponseWriter, err error) {
	code := HTTPStatusFromError(err)
	if code >= http.StatusInternalServerError {
		log.Printf("ERROR: %v", err)
		RespondWithJSON(w, code, ErrorResponse{Message: "internal server error", Error: err.Error()})
		return
	}
	RespondWithJSON(w, code, ErrorResponse{Message: err.Error()})
}

func RespondWithData(w http.ResponseWriter, code int, message string, data interface{}) {
	RespondWithJSON(w, code, dataEnvelope{Success: true, Message: message, Data: data})
}

// dataEnvelope keeps "data" even when it is null, so clients can tell a
// missing document apart from a missing field.
type dataEnvelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success": false, "message": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
