package response

import "net/http"

// 对外统一的错误文案（按 HTTP 状态）
const (
	MsgBadRequest         = "Bad request"
	MsgInvalidCredentials = "Invalid credentials"
	MsgUnauthorized       = "Unauthorized"
	MsgForbidden          = "Forbidden"
	MsgNotFound           = "Not found"
	MsgTooLarge           = "Request body too large"
	MsgServerError        = "Internal server error"
	MsgBusy               = "Server busy"
	MsgTimeout            = "Request timeout"
)

// StatusMsgMap 状态码 → 默认文案
var StatusMsgMap = map[int]string{
	http.StatusBadRequest:            MsgBadRequest,
	http.StatusUnauthorized:          MsgUnauthorized,
	http.StatusForbidden:             MsgForbidden,
	http.StatusNotFound:              MsgNotFound,
	http.StatusRequestEntityTooLarge: MsgTooLarge,
	http.StatusInternalServerError:   MsgServerError,
	http.StatusServiceUnavailable:    MsgBusy,
	http.StatusGatewayTimeout:        MsgTimeout,
}
