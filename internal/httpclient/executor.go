package httpclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/haim4shekel213/apiforge/internal/collection"
	"github.com/haim4shekel213/apiforge/internal/telemetry"
)

// NetworkErrorText is the status text of every normalized transport failure.
const NetworkErrorText = "Network Error"

// Response is the executor's normalized result. Transport failures carry
// StatusCode 0 and an error payload in Data; HTTP error statuses (4xx/5xx)
// are ordinary completions. Responses are ephemeral and never persisted.
type Response struct {
	Seq        uint64
	StatusCode int
	StatusText string
	Headers    map[string]string
	Data       any
	Raw        []byte
	Duration   time.Duration
	Size       int64
}

func (r *Response) Failed() bool {
	return r.StatusCode == 0
}

// ExecuteInfo names the executed item for telemetry; both fields optional.
type ExecuteInfo struct {
	RequestName  string
	CollectionID string
}

// Execute performs the HTTP call described by req. It never fails outward:
// every transport-level error is captured into a status-0 response. Timing
// starts before request preparation so the reported duration covers header
// and body assembly as well as the wire round trip.
func (c *Client) Execute(
	ctx context.Context,
	req *collection.Request,
	info ExecuteInfo,
	opts Options,
) *Response {
	seq := nextSeq()
	start := time.Now()

	httpReq, err := c.prepareHTTPRequest(ctx, req)
	if err != nil {
		return errorResponse(seq, time.Since(start), err)
	}

	client, err := c.httpFactory(opts)
	if err != nil {
		return errorResponse(seq, time.Since(start), err)
	}

	spanCtx, span := c.telemetry.Start(httpReq.Context(), telemetry.RequestStart{
		RequestName:  info.RequestName,
		CollectionID: info.CollectionID,
		HTTPRequest:  httpReq,
	})
	httpReq = httpReq.WithContext(spanCtx)

	httpResp, err := client.Do(httpReq)
	if err != nil {
		span.End(telemetry.RequestResult{Err: err})
		return errorResponse(seq, time.Since(start), err)
	}
	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		span.End(telemetry.RequestResult{Err: err})
		return errorResponse(seq, time.Since(start), err)
	}
	duration := time.Since(start)
	span.End(telemetry.RequestResult{StatusCode: httpResp.StatusCode})

	return &Response{
		Seq:        seq,
		StatusCode: httpResp.StatusCode,
		StatusText: statusText(httpResp),
		Headers:    flattenHeaders(httpResp.Header),
		Data:       parseBody(body),
		Raw:        body,
		Duration:   duration,
		Size:       int64(len(body)),
	}
}

func (c *Client) prepareHTTPRequest(
	ctx context.Context,
	req *collection.Request,
) (*http.Request, error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}

	rawURL := strings.TrimSpace(req.URL.String())
	httpReq, err := http.NewRequestWithContext(ctx, method, rawURL, prepareBody(req, method))
	if err != nil {
		return nil, err
	}

	for _, h := range req.Headers {
		if h.Disabled {
			continue
		}
		httpReq.Header.Set(h.Key, h.Value)
	}

	if sendsBody(req, method) && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	applyAuth(httpReq, req.Auth)
	return httpReq, nil
}

// Only the raw body mode is executed; the other declared modes send nothing.
// GET never carries a body, even when one is configured.
func sendsBody(req *collection.Request, method string) bool {
	if method == http.MethodGet {
		return false
	}
	return req.Body != nil && req.Body.Mode == collection.BodyModeRaw && req.Body.Raw != ""
}

func prepareBody(req *collection.Request, method string) io.Reader {
	if !sendsBody(req, method) {
		return nil
	}
	return strings.NewReader(req.Body.Raw)
}

// Bearer is the only auth type that touches the outgoing headers; it
// overwrites any Authorization header from the header set.
func applyAuth(httpReq *http.Request, auth *collection.Auth) {
	if auth == nil || auth.Type != collection.AuthBearer || auth.Bearer == "" {
		return
	}
	httpReq.Header.Set("Authorization", "Bearer "+auth.Bearer)
}

func parseBody(body []byte) any {
	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return string(body)
	}
	return parsed
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for key := range h {
		out[key] = h.Get(key)
	}
	return out
}

func statusText(resp *http.Response) string {
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	_, text, _ := strings.Cut(resp.Status, " ")
	return text
}

func errorResponse(seq uint64, duration time.Duration, err error) *Response {
	return &Response{
		Seq:        seq,
		StatusCode: 0,
		StatusText: NetworkErrorText,
		Headers:    map[string]string{},
		Data:       map[string]any{"error": err.Error()},
		Duration:   duration,
		Size:       0,
	}
}
