package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kochabx/ecsig/errors"
)

const (
	defaultSuccessMessage = "success"
	successCode           = http.StatusOK

	// 非结构化错误不向调用方暴露细节
	internalMessage = "internal server error"
)

// Response 统一响应结构
type Response struct {
	Code int    `json:"code"`           // 业务状态码，错误时为 errors.Error 的 Code
	Msg  string `json:"msg,omitempty"`  // 响应消息
	Data any    `json:"data,omitempty"` // 响应数据，错误时为错误元数据
}

// OK 写入成功响应
//
// 示例：
//
//	response.OK(c, gin.H{"format": "asn1hex"})
//	// 输出: {"code":200,"msg":"success","data":{"format":"asn1hex"}}
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, &Response{
		Code: successCode,
		Msg:  defaultSuccessMessage,
		Data: data,
	})
}

// Error 写入错误响应并中止后续处理
//
// *errors.Error 按 HTTPStatus() 映射 HTTP 状态码，元数据放入 data；
// 其他错误一律返回 500，消息不透出。
func Error(c *gin.Context, err error) {
	status, body := fromError(err)
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, body)
}

func fromError(err error) (int, *Response) {
	var e *errors.Error
	if err == nil || !errors.As(err, &e) {
		return http.StatusInternalServerError, &Response{
			Code: http.StatusInternalServerError,
			Msg:  internalMessage,
		}
	}

	resp := &Response{
		Code: e.Code,
		Msg:  e.Message,
	}
	if md := e.GetMetadata(); md != nil {
		resp.Data = md
	}
	return e.HTTPStatus(), resp
}
