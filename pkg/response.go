package pkg

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

var ContentType = struct {
	JSON string
	Text string
	CSV  string
}{
	JSON: "application/json",
	Text: "text/plain",
	CSV:  "text/csv",
}

// ApiResponse is the envelope for every API response of the service.
type ApiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func WriteResponse(w http.ResponseWriter, contentType, message string, statusCode int) {
	WriteResponseBytes(w, contentType, []byte(message), statusCode)
}

func WriteResponseBytes(w http.ResponseWriter, contentType string, message []byte, statusCode int) {
	if contentType != "" {
		w.Header().Add("Content-Type", contentType)
	}

	w.WriteHeader(statusCode)

	if _, err := w.Write(message); err != nil {
		log.Errorf("failed to write response [%s]: %s", message, err)
	}
}

func WriteResponseBytesOK(w http.ResponseWriter, contentType string, message []byte) {
	WriteResponseBytes(w, contentType, message, http.StatusOK)
}

func WriteTextResponseOK(w http.ResponseWriter, message string) {
	WriteResponse(w, ContentType.Text, message, http.StatusOK)
}

func WriteJSONResponseOK(w http.ResponseWriter, message string) {
	WriteResponse(w, ContentType.JSON, message, http.StatusOK)
}

// SendAPIOKResp writes the given data wrapped in the success envelope.
func SendAPIOKResp(w http.ResponseWriter, data interface{}, statusCode int) {
	respJson, err := json.Marshal(ApiResponse{
		Success: true,
		Data:    data,
	})
	if err != nil {
		log.Errorf("failed to marshal api response: %s", err)
		SendAPIErrResp(w, "internal server error", http.StatusInternalServerError)
		return
	}
	WriteResponseBytes(w, ContentType.JSON, respJson, statusCode)
}

// SendAPIErrResp writes the given error message wrapped in the failure envelope.
func SendAPIErrResp(w http.ResponseWriter, errMessage string, statusCode int) {
	respJson, err := json.Marshal(ApiResponse{
		Success: false,
		Error:   errMessage,
	})
	if err != nil {
		log.Errorf("failed to marshal api error response: %s", err)
		http.Error(w, errMessage, statusCode)
		return
	}
	WriteResponseBytes(w, ContentType.JSON, respJson, statusCode)
}
