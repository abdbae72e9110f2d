package httpgw

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gw "github.com/tbeaudouin05/finsec-harness/api/services/finsec/gateway"
	"github.com/tbeaudouin05/finsec-harness/api/services/finsec/models"
)

// Endpoint labels reported to the Observer.
const (
	EndpointLogin     = "auth_login"
	EndpointAddBill   = "bills_add"
	EndpointAnalytics = "analytics_spending"
)

// maxBodyBytes caps how much of a response body is retained.
const maxBodyBytes = 1 << 20

// Observer receives one callback per completed request. status is 0 when err is set.
type Observer interface {
	ObserveRequest(endpoint string, status int, err error, elapsed time.Duration)
}

// Options tunes per-call deadlines and the underlying client.
type Options struct {
	LoginTimeout time.Duration
	WriteTimeout time.Duration
	ReadTimeout  time.Duration
	HTTPClient   *http.Client
	Observer     Observer
}

func (o Options) withDefaults() Options {
	if o.LoginTimeout <= 0 {
		o.LoginTimeout = 10 * time.Second
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 5 * time.Second
	}
	if o.ReadTimeout <= 0 {
		o.ReadTimeout = 10 * time.Second
	}
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{}
	}
	return o
}

// client is the net/http implementation of the gateway.
type client struct {
	base string
	opts Options
}

// New returns a FinsecGateway talking to the API rooted at baseURL (e.g. http://localhost:5000/api).
func New(baseURL string, opts Options) gw.FinsecGateway {
	return client{base: strings.TrimRight(baseURL, "/"), opts: opts.withDefaults()}
}

func (c client) Login(ctx context.Context, creds models.Credentials) (gw.Response, error) {
	return c.send(ctx, EndpointLogin, c.opts.LoginTimeout, http.MethodPost, c.base+"/auth/login", "", creds)
}

func (c client) AddBill(ctx context.Context, token models.AccessToken, bill models.BillRecord) (gw.Response, error) {
	return c.send(ctx, EndpointAddBill, c.opts.WriteTimeout, http.MethodPost, c.base+"/bills/add", token.BearerHeader(), bill)
}

func (c client) SpendingAnalytics(ctx context.Context, token models.AccessToken, q models.AnalyticsQuery) (gw.Response, error) {
	u := c.base + "/analytics/spending?" + url.Values{"period": {string(q.Period)}}.Encode()
	return c.send(ctx, EndpointAnalytics, c.opts.ReadTimeout, http.MethodGet, u, token.BearerHeader(), nil)
}

func (c client) send(ctx context.Context, endpoint string, timeout time.Duration, method, target, auth string, payload any) (resp gw.Response, err error) {
	start := time.Now()
	defer func() {
		if c.opts.Observer != nil {
			c.opts.Observer.ObserveRequest(endpoint, resp.StatusCode, err, time.Since(start))
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return gw.Response{}, fmt.Errorf("encode %s payload: %w", endpoint, err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return gw.Response{}, fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	httpResp, err := c.opts.HTTPClient.Do(req)
	if err != nil {
		return gw.Response{}, err
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodyBytes))
	if err != nil {
		return gw.Response{}, fmt.Errorf("read %s response: %w", endpoint, err)
	}
	return gw.Response{StatusCode: httpResp.StatusCode, Body: data}, nil
}
