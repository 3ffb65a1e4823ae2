package smoke

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"FileCollector/internal/infrastructure/logging"
)

// RequestIDHeader は各リクエストに付与する識別子のヘッダー名です
const RequestIDHeader = "X-Request-Id"

var rule = strings.Repeat("=", 60)

// Runner はプランのステップを1つずつ順番に実行します
type Runner struct {
	client *http.Client
	out    io.Writer
	logger logging.Logger
	newID  func() string
}

// NewRunner は新しい Runner を作成します
func NewRunner(client *http.Client, out io.Writer, logger logging.Logger) *Runner {
	if client == nil {
		client = http.DefaultClient
	}
	return &Runner{
		client: client,
		out:    out,
		logger: logger,
		newID:  func() string { return uuid.New().String() },
	}
}

// Run はプランを先頭から実行し、結果を表示します。
// 失敗したステップがあっても次のステップへ進みます
func (r *Runner) Run(ctx context.Context, plan *Plan) Summary {
	rc := newRunContext(plan.Variables)
	summary := Summary{Total: len(plan.Steps)}

	fmt.Fprintf(r.out, "%s\nPLAN: %s (%s)\n%s\n", rule, plan.Name, plan.BaseURL, rule)

	for i, step := range plan.Steps {
		fmt.Fprintf(r.out, "\n[Step %d/%d] %s\n", i+1, len(plan.Steps), step.Name)

		if step.SkipUnless != "" {
			if _, ok := rc.vars[step.SkipUnless]; !ok {
				fmt.Fprintf(r.out, "Skipped: %s is not set\n", step.SkipUnless)
				summary.Skipped++
				continue
			}
		}

		req, err := r.build(ctx, plan.BaseURL, step, rc)
		if err != nil {
			r.logger.Log(logging.LevelWarn, fmt.Sprintf("Step %s not sent", step.Name), err)
			rc.steps[step.Name] = &Response{Err: err}
			summary.Failed++
			continue
		}

		resp := r.execute(req)
		rc.steps[step.Name] = resp
		summary.Sent++
		if resp.Err != nil {
			r.logger.Log(logging.LevelWarn, fmt.Sprintf("Step %s failed", step.Name), resp.Err)
			summary.Failed++
			continue
		}

		r.extract(step, resp, rc)
	}

	fmt.Fprintf(r.out, "\n%s\nDONE: %d sent, %d failed, %d skipped\n%s\n",
		rule, summary.Sent, summary.Failed, summary.Skipped, rule)
	return summary
}

// build はステップからリクエストを組み立てます
func (r *Runner) build(ctx context.Context, baseURL string, step Step, rc *runContext) (*http.Request, error) {
	path, err := rc.substituteString(step.Path)
	if err != nil {
		return nil, fmt.Errorf("path: %w", err)
	}

	target, err := url.Parse(strings.TrimRight(baseURL, "/") + path)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}

	query, err := rc.substituteMap(step.Query)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(query) > 0 {
		q := target.Query()
		for k, v := range query {
			q.Set(k, v)
		}
		target.RawQuery = q.Encode()
	}

	headers, err := rc.substituteMap(step.Headers)
	if err != nil {
		return nil, fmt.Errorf("headers: %w", err)
	}

	var body io.Reader
	if step.Body != nil {
		substituted, err := rc.substituteValue(step.Body)
		if err != nil {
			return nil, fmt.Errorf("body: %w", err)
		}
		data, err := json.Marshal(substituted)
		if err != nil {
			return nil, fmt.Errorf("failed to encode body: %w", err)
		}
		body = bytes.NewReader(data)
		if _, ok := headers["Content-Type"]; !ok {
			headers["Content-Type"] = "application/json"
		}
	}

	req, err := http.NewRequestWithContext(ctx, step.Method, target.String(), body)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req.Header.Set(RequestIDHeader, r.newID())
	return req, nil
}

// execute はリクエストを送信し、レスポンスを表示します
func (r *Runner) execute(req *http.Request) *Response {
	requestID := req.Header.Get(RequestIDHeader)
	start := time.Now()

	fmt.Fprintf(r.out, "Request: %s %s\n", req.Method, req.URL.String())
	fmt.Fprintf(r.out, "Request ID: %s\n", requestID)

	resp, err := r.client.Do(req)
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return &Response{Err: err, Duration: time.Since(start), RequestID: requestID}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	result := &Response{
		StatusCode: resp.StatusCode,
		Duration:   time.Since(start),
		RequestID:  requestID,
	}
	if err != nil {
		result.Err = err
		fmt.Fprintf(r.out, "Error reading body: %v\n", err)
		return result
	}

	result.Body = decodeBody(data)

	fmt.Fprintf(r.out, "Status: %d %s\n", resp.StatusCode, http.StatusText(resp.StatusCode))
	fmt.Fprintf(r.out, "Duration: %.3fs\n", result.Duration.Seconds())
	fmt.Fprintln(r.out, "Response Body:")
	fmt.Fprintln(r.out, formatBody(result.Body))
	return result
}

// extract はステップの Extract に従って変数を設定します
func (r *Runner) extract(step Step, resp *Response, rc *runContext) {
	if len(step.Extract) == 0 {
		return
	}

	names := make([]string, 0, len(step.Extract))
	for name := range step.Extract {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value, err := ParseFieldPath(step.Extract[name]).Lookup(resp.Body)
		if err != nil {
			r.logger.Log(logging.LevelDebug, fmt.Sprintf("Could not extract %s from %s", name, step.Name), err)
			continue
		}
		rc.vars[name] = value
		fmt.Fprintf(r.out, "  %s = %v\n", name, value)
	}
}

// decodeBody は JSON として解釈できればデコードし、できなければ文字列のまま返します。
// 数値は json.Number のまま保持するため、ID をパスに埋め込んでも指数表記になりません
func decodeBody(data []byte) interface{} {
	if !json.Valid(data) {
		return string(data)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return string(data)
	}
	return v
}

func formatBody(body interface{}) string {
	switch body.(type) {
	case map[string]interface{}, []interface{}:
		if pretty, err := json.MarshalIndent(body, "", "  "); err == nil {
			return string(pretty)
		}
	}
	return fmt.Sprintf("%v", body)
}
