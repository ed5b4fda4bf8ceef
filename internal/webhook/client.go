// Package webhook is the transport to the externally hosted automation
// workflows. Each call is a single POST of a multipart form; the response is
// interpreted as JSON when it parses, raw text otherwise. There are no
// retries and no client-side timeout unless one is configured.
package webhook

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/aulalab/gradegate/internal/jsonutil"
)

type Client struct {
	http *http.Client
}

type Config struct {
	// Optional OAuth2 client-credentials protection for the webhook
	// endpoints. When TokenURL is empty the client is unauthenticated.
	TokenURL     string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

func New(cfg Config) *Client {
	var h *http.Client
	if cfg.TokenURL != "" {
		cc := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		h = cc.Client(context.Background())
	} else {
		h = &http.Client{}
	}
	if cfg.Timeout > 0 {
		h.Timeout = cfg.Timeout
	}
	return &Client{http: h}
}

// Post sends form to url and interprets the response body. On a success
// status it returns the parsed JSON value, or the raw body text when the
// body is not JSON. On a failure status it returns a *Error whose Details is
// the pretty-printed JSON body when possible, the raw text otherwise.
func (c *Client) Post(ctx context.Context, url string, form *Form) (any, error) {
	body, contentType, err := form.Close()
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	text := string(raw)

	if res.StatusCode/100 != 2 {
		details := text
		if v := jsonutil.ParseSafely(text); v != nil {
			details = jsonutil.Format(v)
		}
		reason := http.StatusText(res.StatusCode)
		if reason == "" {
			reason = "request failed"
		}
		return nil, &Error{
			Message: fmt.Sprintf("Error %d: %s", res.StatusCode, reason),
			Details: details,
		}
	}

	if v := jsonutil.ParseSafely(text); v != nil {
		return v, nil
	}
	return text, nil
}
