// Package response
package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"slices"

	"actiowatch/internal/logger"
)

type ResponseWriter interface {
	Write(w http.ResponseWriter, status int, data *Response)
	WriteError(w http.ResponseWriter, status int, message string)
	WriteValidationError(w http.ResponseWriter, errors map[string]string)
}

type Response struct {
	Message string             `json:"message,omitempty"`
	Data    any                `json:"data,omitempty"`
	Meta    any                `json:"meta,omitempty"`
	Errors  *map[string]string `json:"errors,omitempty"`
}

type JSONWriter struct {
	log logger.Logger
}

func NewJSONWriter(log logger.Logger) ResponseWriter {
	return &JSONWriter{log: log}
}

func (j *JSONWriter) Write(w http.ResponseWriter, status int, data *Response) {
	w.Header().Set("Content-Type", "application/json")

	if data == nil {
		w.WriteHeader(status)
		return
	}

	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		j.log.Error("failed to encode json response", "error", err)
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		j.log.Error("failed to write json response", "error", err)
	}
}

func (j *JSONWriter) WriteError(w http.ResponseWriter, status int, message string) {
	j.Write(w, status, &Response{Message: message})
}

func (j *JSONWriter) WriteValidationError(w http.ResponseWriter, errors map[string]string) {
	keys := slices.Sorted(maps.Keys(errors))

	mainMessage := errors[keys[0]]
	remaining := len(errors) - 1

	var finalMessage string
	switch remaining {
	case 0:
		finalMessage = mainMessage
	case 1:
		finalMessage = fmt.Sprintf("%s (and 1 more error)", mainMessage)
	default:
		finalMessage = fmt.Sprintf("%s (and %d more errors)", mainMessage, remaining)
	}

	j.Write(w, http.StatusUnprocessableEntity, &Response{
		Message: finalMessage,
		Errors:  &errors,
	})
}
