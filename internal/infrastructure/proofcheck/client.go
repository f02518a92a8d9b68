package proofcheck

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/openleague/openleague/internal/platform/logging"
	"github.com/openleague/openleague/internal/platform/resilience"
)

var errProofTransient = crerr.New("proof host transient failure")

type Config struct {
	Timeout        time.Duration
	UserAgent      string
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client probes proof artifacts with a HEAD request before a match
// report is accepted. It never downloads the artifact body.
type Client struct {
	httpClient     *fasthttp.Client
	timeout        time.Duration
	userAgent      string
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	logger         *logging.Logger
}

func NewClient(cfg Config, logger *logging.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		timeout:        timeout,
		userAgent:      strings.TrimSpace(cfg.UserAgent),
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		logger:         logger,
	}
}

func (c *Client) CheckProof(ctx context.Context, proofURL string) error {
	candidate, err := validateProofURL(proofURL)
	if err != nil {
		return err
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "proof check circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("proof host is temporarily unavailable: %w", err)
		}
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(candidate)
	req.Header.SetMethod(fasthttp.MethodHead)
	if c.userAgent != "" {
		req.Header.SetUserAgent(c.userAgent)
	}

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		callErr := fmt.Errorf("%w: head %s: %v", errProofTransient, redactProofURL(candidate), err)
		c.recordCircuitResult(callErr)
		return callErr
	}

	status := resp.StatusCode()
	switch {
	case status >= 200 && status < 400:
		c.logger.DebugContext(ctx, "proof artifact reachable", "url", redactProofURL(candidate), "status_code", status)
		c.recordCircuitResult(nil)
		return nil
	case status >= 500:
		callErr := fmt.Errorf("%w: head %s returned status %d", errProofTransient, redactProofURL(candidate), status)
		c.recordCircuitResult(callErr)
		return callErr
	default:
		// 4xx means the artifact itself is bad, not the host. Do not
		// trip the breaker for it.
		c.recordCircuitResult(nil)
		return crerr.Newf("proof artifact rejected with status %d at %s", status, redactProofURL(candidate))
	}
}

func (c *Client) recordCircuitResult(err error) {
	if !c.circuitEnabled {
		return
	}
	if err != nil && crerr.Is(err, errProofTransient) {
		c.breaker.RecordFailure()
		return
	}
	if err == nil {
		c.breaker.RecordSuccess()
	}
}

func validateProofURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("proof url is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse proof url %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("proof url %q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("proof url %q has empty host", candidate)
	}

	return candidate, nil
}

// redactProofURL strips query strings before the URL reaches logs or
// error messages, since proof links often carry signed tokens.
func redactProofURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(parsed.Scheme)
	_, _ = buf.WriteString("://")
	_, _ = buf.WriteString(parsed.Host)
	_, _ = buf.WriteString(parsed.Path)
	if parsed.RawQuery != "" {
		_, _ = buf.WriteString("?***")
	}

	return buf.String()
}
