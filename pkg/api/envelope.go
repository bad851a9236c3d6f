package api

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	clierrors "github.com/impactboard/admin-cli/pkg/errors"
	"github.com/impactboard/admin-cli/pkg/logger"
	"github.com/impactboard/admin-cli/pkg/metrics"
	"github.com/impactboard/admin-cli/pkg/util"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	outcomeSuccess   = "success"
	outcomeRejected  = "rejected"
	outcomeTransport = "transport_error"
)

// Pagination is the page metadata of a list response.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Result is what every service method resolves to. When Success is false,
// Data holds the operation's empty default and Message says why. Err keeps
// the categorized failure for callers that want a suggestion to print.
type Result[T any] struct {
	Success    bool                `json:"success"`
	Data       T                   `json:"data"`
	Message    string              `json:"message,omitempty"`
	Pagination *Pagination         `json:"pagination,omitempty"`
	Err        *clierrors.CLIError `json:"-"`
}

// envelope is a response after unwrapping but before decoding into a type.
type envelope struct {
	success    bool
	data       any
	message    string
	pagination *Pagination
	status     int
	err        *clierrors.CLIError
}

type sendFunc func(r *resty.Request) (*resty.Response, error)

// do sends one request and normalizes whatever comes back.
func do(ctx context.Context, c *resty.Client, service, op string, send sendFunc) envelope {
	if ctx == nil {
		ctx = context.Background()
	}
	resp, err := send(c.R().SetContext(ctx))
	env := normalize(resp, err)

	outcome := outcomeSuccess
	switch {
	case env.success:
	case env.err != nil && env.err.Type == clierrors.ErrorTypeBackendRejection:
		outcome = outcomeRejected
	default:
		outcome = outcomeTransport
	}
	metrics.APIRequestsTotal.WithLabelValues(service, op, outcome).Inc()
	logger.Debug("Service call", "service", service, "operation", op, "status", env.status, "outcome", outcome)
	return env
}

func normalize(resp *resty.Response, err error) envelope {
	if err != nil {
		ce := clierrors.CategorizeError(err)
		msg := ce.Message
		if msg == "" {
			msg = "Request failed"
		}
		return envelope{message: msg, err: ce}
	}
	if resp == nil {
		return envelope{message: "Request failed", err: clierrors.TransportError("Request failed", nil)}
	}

	env := envelope{status: resp.StatusCode()}

	var payload any
	parsed := false
	if body := bytes.TrimSpace(resp.Body()); len(body) > 0 {
		parsed = json.Unmarshal(body, &payload) == nil
	}

	if !resp.IsSuccess() {
		obj, _ := payload.(map[string]any)
		if msg := failureMessage(obj); parsed && msg != "" {
			env.message = msg
			env.err = clierrors.BackendRejection(msg, env.status)
			return env
		}
		env.err = clierrors.FromStatus(env.status, resp.Status())
		env.message = fmt.Sprintf("request failed: %s", resp.Status())
		return env
	}

	env.success = true
	env.data = payload

	outer, ok := payload.(map[string]any)
	if !ok {
		return env
	}
	wrapped := env.absorb(outer)
	if inner, ok := env.data.(map[string]any); ok && wrapped && looksLikeEnvelope(inner) {
		env.absorb(inner)
	}

	if !env.success {
		if env.message == "" {
			env.message = failureMessage(outer)
		}
		env.err = clierrors.BackendRejection(env.message, env.status)
	}
	return env
}

// absorb reads one envelope level. An explicit success:false at any level
// fails the call; message and pagination from deeper levels win. It reports
// whether obj wrapped its payload in a "data" key.
func (e *envelope) absorb(obj map[string]any) bool {
	if b, ok := obj["success"].(bool); ok && !b {
		e.success = false
	}
	if msg, ok := obj["message"].(string); ok && msg != "" {
		e.message = msg
	}
	if p, ok := obj["pagination"].(map[string]any); ok {
		e.pagination = parsePagination(p)
	}
	data, ok := obj["data"]
	if ok {
		e.data = data
	} else {
		e.data = obj
	}
	return ok
}

// looksLikeEnvelope tells a second wrapper level apart from a domain object
// that happens to have a "data" field.
func looksLikeEnvelope(obj map[string]any) bool {
	if _, ok := obj["success"].(bool); ok {
		return true
	}
	if _, ok := obj["data"]; !ok {
		return false
	}
	_, hasMsg := obj["message"]
	_, hasPage := obj["pagination"]
	if hasMsg || hasPage {
		return true
	}
	for k := range obj {
		if !envelopeKeys[k] {
			return false
		}
	}
	return true
}

var envelopeKeys = map[string]bool{"data": true, "success": true, "message": true, "pagination": true}

var (
	pageKeys       = []string{"page", "currentPage"}
	limitKeys      = []string{"limit", "pageSize", "perPage", "page_size"}
	totalKeys      = []string{"total", "totalItems", "totalCount", "total_count", "count"}
	totalPagesKeys = []string{"totalPages", "pages", "total_pages"}
)

func parsePagination(obj map[string]any) *Pagination {
	intOf := func(keys []string) int {
		if v, ok := util.First(obj, keys...); ok {
			if n, ok := util.AsInt(v); ok {
				return n
			}
		}
		return 0
	}
	return &Pagination{
		Page:       intOf(pageKeys),
		Limit:      intOf(limitKeys),
		Total:      intOf(totalKeys),
		TotalPages: intOf(totalPagesKeys),
	}
}

// inlinePagination picks pagination fields sitting next to a list, as in
// {"items": [...], "total": 42}. It returns nil when there are none.
func inlinePagination(obj map[string]any) *Pagination {
	if _, ok := util.First(obj, totalKeys...); !ok {
		if _, ok := util.First(obj, totalPagesKeys...); !ok {
			return nil
		}
	}
	return parsePagination(obj)
}

// fillTotalPages derives TotalPages as ceil(total/limit) when the backend
// left it out. limit comes from the request when the response has none.
func fillTotalPages(p *Pagination, limit int) *Pagination {
	if p == nil {
		return nil
	}
	if p.Limit <= 0 {
		p.Limit = limit
	}
	if p.TotalPages <= 0 && p.Limit > 0 {
		p.TotalPages = (p.Total + p.Limit - 1) / p.Limit
	}
	return p
}

// decodeInto re-encodes an untyped value into T. A nil value is not an
// anomaly; it yields the fallback.
func decodeInto[T any](data any, fallback T) (T, error) {
	if data == nil {
		return fallback, nil
	}
	if v, ok := data.(T); ok {
		return v, nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return fallback, err
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return fallback, err
	}
	return out, nil
}

func shapeAnomaly(service, op string, err error) {
	metrics.ShapeAnomaliesTotal.WithLabelValues(service, op).Inc()
	logger.Warn(clierrors.ShapeMismatch(op, err).Message, "service", service, "error", err)
}

// recoverResult turns a panic anywhere in a service call into a failed
// Result. It must be deferred directly.
func recoverResult[T any](res *Result[T], fallback T, service, op string) {
	r := recover()
	if r == nil {
		return
	}
	metrics.APIRequestsTotal.WithLabelValues(service, op, outcomeTransport).Inc()
	logger.Error("Service call panicked", "service", service, "operation", op, "panic", r)
	*res = Result[T]{
		Data:    fallback,
		Message: "Request failed",
		Err:     clierrors.TransportError("Request failed", fmt.Errorf("panic: %v", r)),
	}
}

// call performs a request whose data decodes into a single T.
func call[T any](ctx context.Context, c *resty.Client, service, op string, fallback T, send sendFunc) (res Result[T]) {
	defer recoverResult(&res, fallback, service, op)

	env := do(ctx, c, service, op, send)
	res = Result[T]{Success: env.success, Data: fallback, Message: env.message, Pagination: env.pagination, Err: env.err}
	if !env.success {
		res.Pagination = nil
		return res
	}
	v, err := decodeInto(env.data, fallback)
	if err != nil {
		shapeAnomaly(service, op, err)
	}
	res.Data = v
	return res
}

// callList performs a request whose data is a list of T, bare or nested
// under a known key. Elements that do not decode are skipped.
func callList[T any](ctx context.Context, c *resty.Client, service, op string, limit int, send sendFunc) (res Result[[]T]) {
	defer recoverResult(&res, []T{}, service, op)

	env := do(ctx, c, service, op, send)
	res = Result[[]T]{Success: env.success, Data: []T{}, Message: env.message, Err: env.err}
	if !env.success {
		return res
	}

	list, ok := extractList(env.data)
	if !ok && env.data != nil {
		shapeAnomaly(service, op, fmt.Errorf("no list in %T payload", env.data))
	}
	for _, e := range list {
		v, err := decodeInto[T](e, *new(T))
		if err != nil {
			shapeAnomaly(service, op, err)
			continue
		}
		res.Data = append(res.Data, v)
	}

	res.Pagination = listPagination(env, limit)
	return res
}

// listPagination takes the envelope's pagination, or failing that the
// pagination nested in or sitting next to the list.
func listPagination(env envelope, limit int) *Pagination {
	p := env.pagination
	if p == nil {
		if obj, ok := env.data.(map[string]any); ok {
			if nested, ok := obj["pagination"].(map[string]any); ok {
				p = parsePagination(nested)
			} else {
				p = inlinePagination(obj)
			}
		}
	}
	return fillTotalPages(p, limit)
}

var listKeys = []string{"items", "results", "docs", "rows", "data", "list"}

// extractList finds the list in data. Objects may nest it under a generic
// key or under a resource-named key like "posts" when that is the only list.
func extractList(data any) ([]any, bool) {
	switch t := data.(type) {
	case []any:
		return t, true
	case map[string]any:
		for _, k := range listKeys {
			if v, ok := t[k]; ok {
				return extractList(v)
			}
		}
		var found []any
		lists := 0
		for _, v := range t {
			if l, ok := v.([]any); ok {
				found = l
				lists++
			}
		}
		if lists == 1 {
			return found, true
		}
	}
	return nil, false
}
