package response

import "net/http"

// ErrorBody 所有失败响应的形状：{"error": "..."}
type ErrorBody struct {
	Error string `json:"error"`
}

// Error 空 msg 时用状态码默认文案
func Error(status int, msg string) ErrorBody {
	if msg == "" {
		msg = StatusMsgMap[status]
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return ErrorBody{Error: msg}
}
