package api

import (
	"github.com/go-playground/validator/v10"

	"github.com/kochabx/ecsig/core/crypto/ecsig"
	kvalidator "github.com/kochabx/ecsig/core/validator"
)

// ConvertRequest 格式转换请求
type ConvertRequest struct {
	Input string `json:"input" validate:"required"`
	From  string `json:"from" validate:"omitempty,sigformat"`
	To    string `json:"to" validate:"required,sigformat"`
}

// ConvertResponse 格式转换结果，From 为实际识别的输入格式
type ConvertResponse struct {
	Output string       `json:"output"`
	From   ecsig.Format `json:"from"`
	To     ecsig.Format `json:"to"`
}

// DetectRequest 格式识别请求
type DetectRequest struct {
	Input string `json:"input" validate:"required"`
}

// DetectResponse 格式识别结果
type DetectResponse struct {
	Format ecsig.Format `json:"format"`
}

// InspectRequest 签名解析请求
type InspectRequest struct {
	Input string `json:"input" validate:"required"`
	From  string `json:"from" validate:"omitempty,sigformat"`
}

// BatchRequest 批量转换请求
type BatchRequest struct {
	Items []BatchItem `json:"items" validate:"required,min=1,max=1000,dive"`
	To    string      `json:"to" validate:"required,sigformat"`
}

// BatchItem 批量转换中的单条输入
type BatchItem struct {
	Input string `json:"input" validate:"required"`
	From  string `json:"from" validate:"omitempty,sigformat"`
}

// BatchResponse 批量转换结果，顺序与请求一致
type BatchResponse struct {
	To      ecsig.Format  `json:"to"`
	Results []BatchResult `json:"results"`
}

// BatchResult 单条转换结果，失败时 Error 非空
type BatchResult struct {
	Index  int          `json:"index"`
	From   ecsig.Format `json:"from"`
	Output string       `json:"output,omitempty"`
	Error  *ItemError   `json:"error,omitempty"`
}

// ItemError 单条转换的错误信息
type ItemError struct {
	Code     int               `json:"code"`
	Msg      string            `json:"msg"`
	Metadata map[string]string `json:"data,omitempty"`
}

// FormatRule 校验签名格式名称
var FormatRule = kvalidator.Rule{
	Tag: "sigformat",
	Fn: func(fl validator.FieldLevel) bool {
		_, err := ecsig.ParseFormat(fl.Field().String())
		return err == nil
	},
	Message: map[string]string{
		"en": "{0} must be one of auto, asn1hex, p1363hex, jws, json",
		"zh": "{0}必须是auto、asn1hex、p1363hex、jws、json之一",
	},
}

// parseFormat 解析已通过校验的格式名称
func parseFormat(name string) ecsig.Format {
	f, _ := ecsig.ParseFormat(name)
	return f
}
