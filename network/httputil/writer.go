// Package httputil contains shared helpers for writing JSON API responses.
package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "httputil")

type jsonEnvelope struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Pagination interface{} `json:"pagination,omitempty"`
}

// WriteJson writes data wrapped in the success envelope with a 200 status.
func WriteJson(w http.ResponseWriter, data interface{}) {
	writeEnvelope(w, &jsonEnvelope{Success: true, Data: data})
}

// WriteJsonPaginated writes data together with pagination metadata.
func WriteJsonPaginated(w http.ResponseWriter, data, pagination interface{}) {
	writeEnvelope(w, &jsonEnvelope{Success: true, Data: data, Pagination: pagination})
}

func writeEnvelope(w http.ResponseWriter, env *jsonEnvelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.WithError(err).Error("Could not write response message")
	}
}

// WriteError writes the error by manipulating headers and the body of the final response.
func WriteError(w http.ResponseWriter, errJson *DefaultJsonError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(errJson.Code)
	if err := json.NewEncoder(w).Encode(errJson); err != nil {
		log.WithError(err).Error("Could not write error message")
	}
}
