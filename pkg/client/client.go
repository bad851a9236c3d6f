package client

import (
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/impactboard/admin-cli/pkg/config"
	"github.com/impactboard/admin-cli/pkg/logger"
	jsoniter "github.com/json-iterator/go"
)

const userAgent = "Impactboard-Admin/0.1.0"

var httpClient *resty.Client

// Options configures a transport client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	RetryCount int
	Token      string
}

// OptionsFromConfig reads transport settings from the loaded configuration.
func OptionsFromConfig() Options {
	return Options{
		BaseURL:    config.GetString("api.base_url"),
		Timeout:    config.GetSeconds("api.timeout"),
		RetryCount: config.GetInt("api.retry_count"),
	}
}

// New builds a resty client. Every request carries an X-Request-ID so backend
// logs can be correlated with the CLI log file.
func New(opts Options) *resty.Client {
	c := resty.New()
	c.JSONMarshal = jsoniter.ConfigCompatibleWithStandardLibrary.Marshal
	c.JSONUnmarshal = jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal
	c.SetBaseURL(opts.BaseURL)
	if opts.Timeout > 0 {
		c.SetTimeout(opts.Timeout)
	}
	c.SetRetryCount(opts.RetryCount)
	c.SetRetryWaitTime(250 * time.Millisecond)
	c.SetHeader("User-Agent", userAgent)
	c.SetHeader("Accept", "application/json")
	if opts.Token != "" {
		c.SetAuthToken(opts.Token)
	}

	c.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if req.Header.Get("X-Request-ID") == "" {
			req.SetHeader("X-Request-ID", uuid.NewString())
		}
		logger.Debug("HTTP Request", "method", req.Method, "url", req.URL, "request_id", req.Header.Get("X-Request-ID"))
		return nil
	})

	c.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		logger.Debug("HTTP Response", "status", resp.StatusCode(), "duration", resp.Time())
		return nil
	})

	return c
}

// Init initializes the shared HTTP client from configuration
func Init() {
	httpClient = New(OptionsFromConfig())
}

// GetClient returns the shared HTTP client
func GetClient() *resty.Client {
	if httpClient == nil {
		Init()
	}
	return httpClient
}

// SetAuthToken sets the bearer token on the shared client
func SetAuthToken(token string) {
	GetClient().SetAuthToken(token)
}

// ClearAuthToken clears the authorization token
func ClearAuthToken() {
	// Rebuild rather than unset: resty keeps the token on the client struct.
	Init()
}
