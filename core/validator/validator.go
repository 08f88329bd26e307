package validator

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
)

// Validator 定义校验器接口
type Validator interface {
	// Struct 校验结构体
	Struct(s any) error
	// StructCtx 带上下文校验结构体
	StructCtx(ctx context.Context, s any) error
	// Engine 获取底层的 validator 实例
	Engine() *validator.Validate
}

// Rule 自定义校验规则
type Rule struct {
	Tag     string
	Fn      validator.Func
	Message map[string]string // 语言 -> 消息模板，{0} 为字段名
}

// Option 校验器选项
type Option func(*validatorImpl)

// WithLang 设置错误消息的语言，支持 en 与 zh
func WithLang(lang string) Option {
	return func(v *validatorImpl) {
		v.lang = lang
	}
}

// WithRule 注册自定义校验规则
func WithRule(rule Rule) Option {
	return func(v *validatorImpl) {
		v.rules = append(v.rules, rule)
	}
}

// Validate 全局校验器实例
var Validate Validator = New()

type validatorImpl struct {
	validate    *validator.Validate
	translators map[string]ut.Translator
	lang        string
	rules       []Rule
}

// New 创建新的校验器实例，字段名取自 json 标签
func New(opts ...Option) Validator {
	v := &validatorImpl{
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		translators: make(map[string]ut.Translator, 2),
		lang:        "en",
	}

	for _, opt := range opts {
		opt(v)
	}

	v.validate.RegisterTagNameFunc(jsonName)

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale, zh.New())
	if trans, ok := uni.GetTranslator("en"); ok {
		_ = en_translations.RegisterDefaultTranslations(v.validate, trans)
		v.translators["en"] = trans
	}
	if trans, ok := uni.GetTranslator("zh"); ok {
		_ = zh_translations.RegisterDefaultTranslations(v.validate, trans)
		v.translators["zh"] = trans
	}

	for _, rule := range v.rules {
		_ = v.validate.RegisterValidation(rule.Tag, rule.Fn)
		for lang, msg := range rule.Message {
			trans, ok := v.translators[lang]
			if !ok {
				continue
			}
			_ = v.validate.RegisterTranslation(rule.Tag, trans, registerMessage(rule.Tag, msg), translateMessage(rule.Tag))
		}
	}

	return v
}

// Struct 校验结构体
func (v *validatorImpl) Struct(s any) error {
	return v.StructCtx(context.Background(), s)
}

// StructCtx 带上下文校验结构体
func (v *validatorImpl) StructCtx(ctx context.Context, s any) error {
	if s == nil {
		return errors.New("validation target cannot be nil")
	}
	return v.translate(v.validate.StructCtx(ctx, s))
}

// Engine 获取底层的 validator 实例
func (v *validatorImpl) Engine() *validator.Validate {
	return v.validate
}

// translate 将 validator.ValidationErrors 转换为带翻译消息的 ValidationErrors
func (v *validatorImpl) translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	trans, ok := v.translators[v.lang]
	if !ok {
		trans = v.translators["en"]
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Value:   fe.Value(),
			Message: fe.Translate(trans),
		})
	}
	return &ValidationErrors{Fields: fields}
}

func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}

func registerMessage(tag, msg string) validator.RegisterTranslationsFunc {
	return func(trans ut.Translator) error {
		return trans.Add(tag, msg, true)
	}
}

func translateMessage(tag string) validator.TranslationFunc {
	return func(trans ut.Translator, fe validator.FieldError) string {
		msg, err := trans.T(tag, fe.Field())
		if err != nil {
			return fe.Error()
		}
		return msg
	}
}
