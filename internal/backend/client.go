package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/and161185/gas2door/internal/errs"
	"github.com/and161185/gas2door/internal/model"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Client talks to the gas2door backend. The bearer token is passed per call;
// the client itself holds no session.
type Client struct {
	baseURL string
	http    *http.Client
	region  model.Region
	logger  *zap.SugaredLogger
}

func NewClient(baseURL string, timeout time.Duration, region model.Region, logger *zap.SugaredLogger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		region:  region,
		logger:  logger,
	}
}

func (c *Client) do(ctx context.Context, method, path, token string, body any) (gjson.Result, error) {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return gjson.Result{}, fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%s: create request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return gjson.Result{}, &errs.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, &errs.TransportError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}
	c.logger.Debugf("backend %s status=%d duration=%s", op, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return gjson.Result{}, &errs.RejectedError{
			Op:      op,
			Status:  resp.StatusCode,
			Message: rejectionMessage(path, resp, raw),
		}
	}

	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(raw)) == 0 {
		return gjson.Result{}, nil
	}
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, &errs.ContractError{Op: op, Field: "body", Message: fmt.Sprintf("%s: response is not JSON", op)}
	}
	return gjson.ParseBytes(raw), nil
}

func rejectionMessage(path string, resp *http.Response, raw []byte) string {
	isJSON := strings.Contains(resp.Header.Get("Content-Type"), "application/json")

	if isJSON && gjson.ValidBytes(raw) {
		payload := gjson.ParseBytes(raw)
		if msg := firstString(payload, "message", "error", "error.message"); msg != "" {
			return msg
		}
	}

	text := strings.TrimSpace(string(raw))
	if !isJSON && strings.Contains(text, "<title>404") {
		return fmt.Sprintf("API route not found (HTTP %d) for %s; check the backend address", resp.StatusCode, path)
	}
	if !isJSON && text != "" {
		return text
	}
	return fmt.Sprintf("Request failed (%d)", resp.StatusCode)
}
