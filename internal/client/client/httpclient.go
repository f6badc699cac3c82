package client

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

	"github.com/dmitrijs2005/calcapi/internal/common"
)

// Arithmetic operations accepted by Calculate.
const (
	OperationAdd      = "add"
	OperationSubtract = "subtract"
	OperationMultiply = "multiply"
)

type HTTPClient struct {
	baseURL     *url.URL
	httpClient  *http.Client
	accessToken string
}

// NewHTTPClient builds a client for the API rooted at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid server url %q: missing host", baseURL)
	}

	return &HTTPClient{
		baseURL:    u,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPClient) SetAccessToken(token string) {
	c.accessToken = token
}

func (c *HTTPClient) AccessToken() string {
	return c.accessToken
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register creates an account and keeps the returned token for later calls.
func (c *HTTPClient) Register(ctx context.Context, username, email, password string) (string, error) {
	body := map[string]string{"username": username, "email": email, "password": password}

	var resp tokenResponse
	if err := c.doJSON(ctx, http.MethodPost, "/register", body, &resp); err != nil {
		return "", err
	}

	c.accessToken = resp.AccessToken
	return resp.AccessToken, nil
}

// Login exchanges credentials for a token using the OAuth2 password form.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{"username": {username}, "password": {password}}

	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "/token", strings.NewReader(form.Encode()),
		"application/x-www-form-urlencoded", &resp)
	if err != nil {
		return "", err
	}

	c.accessToken = resp.AccessToken
	return resp.AccessToken, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, "", nil)
}

// Calculate runs add, subtract or multiply on the server.
func (c *HTTPClient) Calculate(ctx context.Context, operation string, num1, num2 float64) (*Result, error) {
	switch operation {
	case OperationAdd, OperationSubtract, OperationMultiply:
	default:
		return nil, fmt.Errorf("unknown operation %q", operation)
	}

	var res Result
	if err := c.doJSON(ctx, http.MethodPost, "/"+operation, map[string]float64{"num1": num1, "num2": num2}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Root(ctx context.Context, number float64) (*Result, error) {
	var res Result
	if err := c.doJSON(ctx, http.MethodPost, "/root", map[string]float64{"number": number}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) History(ctx context.Context) ([]Operation, error) {
	var ops []Operation
	if err := c.do(ctx, http.MethodGet, "/history", nil, "", &ops); err != nil {
		return nil, err
	}
	return ops, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}
	return c.do(ctx, method, path, bytes.NewReader(b), "application/json", out)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(path).String(), body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.accessToken != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	var body struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		apiErr.Message = body.Error
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %w", ErrUnauthorized, apiErr)
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: %w", ErrUnavailable, apiErr)
	}
	return apiErr
}
