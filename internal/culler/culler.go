// Package culler finds bookmarks and quick links whose URLs no longer
// resolve, so they can be sent to the trash in one sweep.
package culler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/nikbrunner/tabzero/internal/logger"
	"github.com/nikbrunner/tabzero/internal/model"
	"github.com/nikbrunner/tabzero/internal/search"
)

const (
	DefaultConcurrency = 8
	DefaultTimeout     = 10 * time.Second
)

// Status is the health of a URL.
type Status int

const (
	Healthy     Status = iota // 2xx or 3xx
	Dead                      // 404 or 410
	Unreachable               // network failure or any other status
)

func (s Status) String() string {
	switch s {
	case Healthy:
		return "healthy"
	case Dead:
		return "dead"
	default:
		return "unreachable"
	}
}

// Result is the outcome of checking one item.
type Result struct {
	Item       search.Item
	Status     Status
	StatusCode int    // 0 when no response arrived
	Reason     string // short description for unreachable items
}

// ProgressFunc is called after each check with the running count.
type ProgressFunc func(completed, total int)

// Params configures a Checker.
type Params struct {
	Client      *http.Client
	Concurrency int
	Timeout     time.Duration
	// ExcludeDomains report 404s as unreachable instead of dead, for
	// hosts that hide private pages behind a 404.
	ExcludeDomains []string
	Logger         logger.Logger
	OnProgress     ProgressFunc
}

// Checker checks URLs with a bounded worker pool.
type Checker struct {
	client      *http.Client
	concurrency int
	timeout     time.Duration
	exclude     map[string]bool
	log         logger.Logger
	onProgress  ProgressFunc
}

// New creates a Checker.
func New(p Params) *Checker {
	c := &Checker{
		client:      p.Client,
		concurrency: p.Concurrency,
		timeout:     p.Timeout,
		exclude:     make(map[string]bool, len(p.ExcludeDomains)),
		log:         p.Logger,
		onProgress:  p.OnProgress,
	}
	if c.client == nil {
		c.client = &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		}
	}
	if c.concurrency <= 0 {
		c.concurrency = DefaultConcurrency
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.log == nil {
		c.log = logger.NewNop()
	}
	for _, d := range p.ExcludeDomains {
		c.exclude[strings.ToLower(d)] = true
	}
	return c
}

// Check requests every item and returns results in input order. Items not
// reached before ctx ends are reported unreachable.
func (c *Checker) Check(ctx context.Context, items []search.Item) []Result {
	if len(items) == 0 {
		return nil
	}

	results := make([]Result, len(items))
	jobs := make(chan int, len(items))
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		completed int
	)

	for w := 0; w < min(c.concurrency, len(items)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = c.checkOne(ctx, items[i])

				if c.onProgress != nil {
					mu.Lock()
					completed++
					c.onProgress(completed, len(items))
					mu.Unlock()
				}
			}
		}()
	}

	for i := range items {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	dead := 0
	for _, r := range results {
		if r.Status == Dead {
			dead++
		}
	}
	c.log.Info("checked links",
		logger.Int("total", len(items)),
		logger.Int("dead", dead),
	)
	return results
}

func (c *Checker) checkOne(ctx context.Context, item search.Item) Result {
	result := Result{Item: item}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// HEAD first; some servers only answer GET.
	resp, err := c.do(ctx, http.MethodHead, item.URL)
	if err != nil || resp.StatusCode == http.StatusMethodNotAllowed {
		if resp != nil {
			resp.Body.Close()
		}
		resp, err = c.do(ctx, http.MethodGet, item.URL)
	}
	if err != nil {
		result.Status = Unreachable
		result.Reason = describe(err)
		c.log.Debug("link unreachable", logger.String("url", item.URL), logger.Error(err))
		return result
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		result.Status = Healthy
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		if c.excluded(item.URL) {
			result.Status = Unreachable
			result.Reason = "possibly private"
		} else {
			result.Status = Dead
		}
	default:
		result.Status = Unreachable
		result.Reason = http.StatusText(resp.StatusCode)
	}
	return result
}

func (c *Checker) do(ctx context.Context, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	return c.client.Do(req)
}

// excluded matches the host and its subdomains against the exclude list.
func (c *Checker) excluded(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	for domain := range c.exclude {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// describe shortens transport errors to a readable reason.
func describe(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	lower := strings.ToLower(err.Error())
	switch {
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case strings.Contains(lower, "timeout"):
		return "timeout"
	case strings.Contains(lower, "connection refused"):
		return "connection refused"
	case strings.Contains(lower, "certificate"), strings.Contains(lower, "tls:"):
		return "TLS error"
	case strings.Contains(lower, "network is unreachable"):
		return "network unreachable"
	default:
		return err.Error()
	}
}

// DeadItems filters results down to dead items.
func DeadItems(results []Result) []search.Item {
	var out []search.Item
	for _, r := range results {
		if r.Status == Dead {
			out = append(out, r.Item)
		}
	}
	return out
}
