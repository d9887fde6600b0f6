package web

import (
	"encoding/json"
	"net/http"
)

type responseBody struct {
	Data  any          `json:"data,omitempty"`
	Error *errorDetail `json:"error,omitempty"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errorBody(code, message string) responseBody {
	return responseBody{Error: &errorDetail{Code: code, Message: message}}
}

func renderJSON(w http.ResponseWriter, status int, v any) {
	body, isEnvelope := v.(responseBody)
	if !isEnvelope {
		body = responseBody{Data: v}
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
