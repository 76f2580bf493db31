// Package source loads equation text from a file, standard input or an
// http(s) URL and prepares it for parsing.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/tliron/commonlog"
)

const (
	DefaultTimeout  = 30 * time.Second
	DefaultMaxBytes = 1 << 20

	// Stdin is the source name that reads standard input.
	Stdin = "-"
)

var log = commonlog.GetLogger("eqsolve.source")

var (
	ErrNotFound = errors.New("file not found")
	ErrTooLarge = errors.New("input too large")
)

type Fetcher struct {
	httpClient *http.Client
	maxBytes   int64
	stdin      io.Reader
}

type Option func(*Fetcher)

func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.httpClient.Timeout = d
	}
}

func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBytes = n
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.httpClient = c
	}
}

func WithStdin(r io.Reader) Option {
	return func(f *Fetcher) {
		f.stdin = r
	}
}

func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		maxBytes:   DefaultMaxBytes,
		stdin:      os.Stdin,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// IsURL reports whether src names an http or https resource.
func IsURL(src string) bool {
	u, err := url.Parse(src)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Fetch returns the raw contents of src.
func (f *Fetcher) Fetch(ctx context.Context, src string) ([]byte, error) {
	switch {
	case src == Stdin:
		data, err := f.readLimited(f.stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	case IsURL(src):
		return f.fetchURL(ctx, src)
	default:
		return f.readFile(src)
	}
}

func (f *Fetcher) fetchURL(ctx context.Context, src string) ([]byte, error) {
	log.Debugf("fetching %s", src)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src, err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: HTTP %d", src, resp.StatusCode)
	}

	data, err := f.readLimited(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src, err)
	}
	return data, nil
}

func (f *Fetcher) readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	data, err := f.readLimited(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func (f *Fetcher) readLimited(r io.Reader) ([]byte, error) {
	if f.maxBytes <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, f.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, f.maxBytes)
	}
	return data, nil
}

// Load fetches src and prepares its lines.
func (f *Fetcher) Load(ctx context.Context, src string) (*Document, error) {
	data, err := f.Fetch(ctx, src)
	if err != nil {
		return nil, err
	}
	doc, err := Prepare(data)
	if err != nil {
		return nil, err
	}
	doc.Name = src
	return doc, nil
}

// DisplayName is how src is shown in messages and error positions.
func DisplayName(src string) string {
	if src == Stdin {
		return "<stdin>"
	}
	return strings.TrimSpace(src)
}
