// Package salesforce holds the thin query layer over go-salesforce: a
// rate-limited client, SOQL guards, and 15/18-character ID handling.
package salesforce

import (
	"context"

	"github.com/k-capehart/go-salesforce/v3"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Client is the read-only surface the account fetcher needs. Results are
// unmarshalled into out, which must be a pointer to a slice of record structs.
type Client interface {
	Query(ctx context.Context, soql string, out any) error
}

// ClientOption configures the client at construction.
type ClientOption func(*sfClient)

// WithRateLimit throttles queries to rps per second, with a burst of
// int(rps) (minimum 1). Zero or negative rps leaves the client unthrottled.
func WithRateLimit(rps float64) ClientOption {
	return func(c *sfClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		}
	}
}

// sfClient adapts a *salesforce.Salesforce. go-salesforce/v3 methods take no
// context, so ctx here only governs the limiter wait before each call.
type sfClient struct {
	sf      *salesforce.Salesforce
	limiter *rate.Limiter
}

// NewClient wraps an authenticated go-salesforce instance.
func NewClient(sf *salesforce.Salesforce, opts ...ClientOption) Client {
	c := &sfClient{sf: sf}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *sfClient) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

func (c *sfClient) Query(ctx context.Context, soql string, out any) error {
	if err := c.wait(ctx); err != nil {
		return eris.Wrap(err, "sf: rate limit")
	}
	if err := c.sf.Query(soql, out); err != nil {
		return eris.Wrap(err, "sf: query")
	}
	return nil
}
