package httpapi

import (
	"encoding/json"
	"net/http"
)

// errorResponse 错误响应
type errorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// writeJSONError 写入统一格式的 JSON 错误
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: status})
}

// writeJSON 写入 JSON 响应
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("编码响应失败", "err", err)
	}
}
