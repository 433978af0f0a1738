package response

// 业务错误码直接基于 HTTP 语义
const (
	CodeOK           = 0
	CodeBadRequest   = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeConflict     = 409
	CodeServerError  = 500
)

var CodeMsgMap = map[int]string{
	CodeOK:           "OK",
	CodeBadRequest:   "Bad Request",
	CodeUnauthorized: "Unauthorized",
	CodeForbidden:    "Forbidden",
	CodeNotFound:     "Not Found",
	CodeConflict:     "Conflict",
	CodeServerError:  "Internal Server Error",
}

// 沿用旧控制台的提示语，前端按文案展示
const (
	MsgQuerySuccess   = "query success"
	MsgQueryFailed    = "query failed"
	MsgDetailSuccess  = "detail success"
	MsgCreateSuccess  = "create success"
	MsgUpdateSuccess  = "update success"
	MsgDeleteSuccess  = "delete success"
	MsgLoginError     = "login required"
	MsgPasswordDenied = "modify password denied"
)
