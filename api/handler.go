package api

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"

	"github.com/kochabx/ecsig/core/crypto/ecsig"
	kvalidator "github.com/kochabx/ecsig/core/validator"
	"github.com/kochabx/ecsig/errors"
	"github.com/kochabx/ecsig/transport/http/metrics"
	"github.com/kochabx/ecsig/transport/http/response"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	opConvert = "convert"
	opDetect  = "detect"
	opInspect = "inspect"
	opBatch   = "batch"
)

var (
	// ErrMalformedBody 请求体不是合法 JSON
	ErrMalformedBody = errors.BadRequest("malformed request body")
	// ErrInvalidRequest 请求参数未通过校验
	ErrInvalidRequest = errors.BadRequest("invalid request")
	// ErrBodyTooLarge 请求体超过上限
	ErrBodyTooLarge = errors.RequestEntityTooLarge("request body too large")
)

// Handler 签名转换接口
type Handler struct {
	converter        *ecsig.Converter
	validate         kvalidator.Validator
	recorder         metrics.Recorder
	batchConcurrency int
}

// Option Handler 选项
type Option func(*Handler)

// WithConverter 设置转换器
func WithConverter(c *ecsig.Converter) Option {
	return func(h *Handler) {
		if c != nil {
			h.converter = c
		}
	}
}

// WithRecorder 设置指标记录器
func WithRecorder(r metrics.Recorder) Option {
	return func(h *Handler) {
		if r != nil {
			h.recorder = r
		}
	}
}

// WithBatchConcurrency 设置批量转换并发数
func WithBatchConcurrency(n int) Option {
	return func(h *Handler) {
		h.batchConcurrency = n
	}
}

// WithLang 设置校验消息语言
func WithLang(lang string) Option {
	return func(h *Handler) {
		h.validate = kvalidator.New(kvalidator.WithLang(lang), kvalidator.WithRule(FormatRule))
	}
}

// NewHandler 创建签名转换接口
func NewHandler(opts ...Option) *Handler {
	h := &Handler{
		converter: ecsig.NewConverter(),
		validate:  kvalidator.New(kvalidator.WithRule(FormatRule)),
		recorder:  metrics.Prom,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Convert POST /v1/signatures/convert
func (h *Handler) Convert(c *gin.Context) {
	var req ConvertRequest
	if err := h.bind(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	from, to := parseFormat(req.From), parseFormat(req.To)
	start := time.Now()

	resp, err := h.convert(req.Input, from, to)
	h.observe(opConvert, from, to, err, start)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, resp)
}

func (h *Handler) convert(input string, from, to ecsig.Format) (*ConvertResponse, error) {
	if !to.Concrete() {
		return nil, errors.BadRequest("output format must be concrete, got %s", to).
			WithMetadata(map[string]string{"field": "to"})
	}

	sig, resolved, err := h.converter.Decode(input, from)
	if err != nil {
		return nil, err
	}

	out, err := ecsig.Encode(sig, to)
	if err != nil {
		return nil, err
	}

	return &ConvertResponse{Output: out, From: resolved, To: to}, nil
}

// Detect POST /v1/signatures/detect
func (h *Handler) Detect(c *gin.Context) {
	var req DetectRequest
	if err := h.bind(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	start := time.Now()
	format, err := h.detect(req.Input)
	h.observe(opDetect, format, ecsig.FormatAuto, err, start)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, &DetectResponse{Format: format})
}

func (h *Handler) detect(input string) (ecsig.Format, error) {
	if limit := h.converter.MaxInputSize(); limit > 0 && len(input) > limit {
		return ecsig.FormatAuto, ecsig.ErrSizeLimit.WithMetadata(map[string]string{
			ecsig.MetaReason: "input exceeds configured limit",
		})
	}
	return ecsig.Detect(input)
}

// Inspect POST /v1/signatures/inspect
func (h *Handler) Inspect(c *gin.Context) {
	var req InspectRequest
	if err := h.bind(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	from := parseFormat(req.From)
	start := time.Now()

	report, err := h.converter.Inspect(req.Input, from)
	h.observe(opInspect, from, ecsig.FormatAuto, err, start)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, report)
}

// Batch POST /v1/signatures/batch
func (h *Handler) Batch(c *gin.Context) {
	var req BatchRequest
	if err := h.bind(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	to := parseFormat(req.To)
	items := make([]ecsig.BatchItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = ecsig.BatchItem{Input: item.Input, From: parseFormat(item.From)}
	}

	start := time.Now()
	results, err := h.converter.ConvertBatch(c.Request.Context(), items, to, ecsig.WithConcurrency(h.batchConcurrency))
	h.observe(opBatch, ecsig.FormatAuto, to, err, start)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := &BatchResponse{To: to, Results: make([]BatchResult, len(results))}
	for i, r := range results {
		resp.Results[i] = BatchResult{Index: r.Index, From: r.From, Output: r.Output}
		if r.Err != nil {
			e := errors.FromError(r.Err)
			resp.Results[i].Error = &ItemError{Code: e.Code, Msg: e.Message, Metadata: e.GetMetadata()}
		}
	}

	response.OK(c, resp)
}

// bind 读取并校验 JSON 请求体
func (h *Handler) bind(c *gin.Context, target any) error {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return ErrBodyTooLarge.WithMetadata(map[string]string{"limit": strconv.FormatInt(mbe.Limit, 10)})
		}
		return ErrMalformedBody.WithCause(err)
	}

	if err := json.Unmarshal(body, target); err != nil {
		return ErrMalformedBody.WithCause(err)
	}

	if err := h.validate.StructCtx(c.Request.Context(), target); err != nil {
		var ve *kvalidator.ValidationErrors
		if errors.As(err, &ve) {
			return ErrInvalidRequest.WithMetadata(ve.Metadata())
		}
		return ErrInvalidRequest.WithCause(err)
	}

	return nil
}

func (h *Handler) observe(op string, from, to ecsig.Format, err error, start time.Time) {
	code := 0
	if err != nil {
		code = errors.FromError(err).Code
	}
	h.recorder.ObserveConversion(op, from.String(), to.String(), metrics.Result(code), time.Since(start))
}
