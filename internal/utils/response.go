package utils

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the JSON envelope for every error the trivia API returns.
type ErrorBody struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

var errorMessages = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusNotFound:            "resource not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "unprocessable",
	http.StatusInternalServerError: "internal server error",
}

func ErrorResponse(status int) ErrorBody {
	msg, ok := errorMessages[status]
	if !ok {
		msg = http.StatusText(status)
	}
	return ErrorBody{Success: false, Error: status, Message: msg}
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int) {
	WriteJSON(w, status, ErrorResponse(status))
}
