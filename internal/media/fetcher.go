package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/julianstephens/fivemin/internal/clock"
	"github.com/julianstephens/fivemin/internal/constants"
	"github.com/julianstephens/fivemin/internal/logger"
	"github.com/julianstephens/fivemin/internal/models"
	"github.com/julianstephens/fivemin/internal/storage"
)

var (
	// ErrNotFound is returned for an empty reference or a 404 from the media host.
	ErrNotFound = errors.New("media not found")
	// ErrTooLarge is returned when a download exceeds the size cap.
	ErrTooLarge = errors.New("media exceeds size limit")
)

// maxMediaBytes caps a single download.
const maxMediaBytes = 16 << 20

// Source names the layer that satisfied a fetch.
type Source string

const (
	SourceMemory  Source = "memory"
	SourceDisk    Source = "disk"
	SourceNetwork Source = "network"
)

// Media is a fetched and validated demonstration.
type Media struct {
	Ref    string
	Data   []byte
	Frames int
	Loop   time.Duration
	Source Source
}

// StatusError is a non-2xx response from the media host.
type StatusError struct {
	Ref    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("media %s: unexpected status %d %s", e.Ref, e.Status, http.StatusText(e.Status))
}

func (e *StatusError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

func (e *StatusError) retryable() bool {
	return e.Status >= 500
}

// DiskCache is the persistent layer consulted after memory.
type DiskCache interface {
	GetMedia(ref string) (models.CachedMedia, error)
	PutMedia(models.CachedMedia) error
}

type Options struct {
	BaseURL    string
	Client     *http.Client
	Disk       DiskCache
	TTL        time.Duration
	MaxRetries int
	RetryDelay time.Duration
	Clock      clock.Clock
	// MaxBytes caps a download; zero means 16 MiB.
	MaxBytes   int64
}

// Fetcher loads media from memory, then disk, then the network. Concurrent
// requests for the same reference share one download.
type Fetcher struct {
	base       string
	client     *http.Client
	disk       DiskCache
	ttl        time.Duration
	maxRetries int
	retryDelay time.Duration
	clock      clock.Clock
	maxBytes   int64

	mu    sync.RWMutex
	mem   map[string]Media
	group singleflight.Group
}

func NewFetcher(opts Options) *Fetcher {
	if opts.BaseURL == "" {
		opts.BaseURL = constants.DefaultMediaBaseURL
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: constants.MediaFetchTimeout}
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = constants.MediaFetchMaxRetries
	}
	if opts.RetryDelay < 0 {
		opts.RetryDelay = 0
	}
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = maxMediaBytes
	}
	return &Fetcher{
		base:       strings.TrimRight(opts.BaseURL, "/"),
		client:     opts.Client,
		disk:       opts.Disk,
		ttl:        opts.TTL,
		maxRetries: opts.MaxRetries,
		retryDelay: opts.RetryDelay,
		clock:      opts.Clock,
		maxBytes:   opts.MaxBytes,
		mem:        make(map[string]Media),
	}
}

// URL returns the download location for ref.
func (f *Fetcher) URL(ref string) string {
	return f.base + "/" + url.PathEscape(ref) + "?alt=media"
}

// Cached reports whether ref is already held in memory.
func (f *Fetcher) Cached(ref string) (Media, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	m, ok := f.mem[ref]
	if ok {
		m.Source = SourceMemory
	}
	return m, ok
}

// Fetch returns the media for ref. Failures are not cached, so a later call retries.
func (f *Fetcher) Fetch(ctx context.Context, ref string) (Media, error) {
	if ref == "" {
		return Media{}, fmt.Errorf("empty reference: %w", ErrNotFound)
	}
	if m, ok := f.Cached(ref); ok {
		return m, nil
	}

	ch := f.group.DoChan(ref, func() (any, error) {
		if m, ok := f.Cached(ref); ok {
			return m, nil
		}
		return f.load(context.WithoutCancel(ctx), ref)
	})

	select {
	case <-ctx.Done():
		return Media{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Media{}, res.Err
		}
		return res.Val.(Media), nil
	}
}

func (f *Fetcher) load(ctx context.Context, ref string) (Media, error) {
	if m, ok := f.fromDisk(ref); ok {
		f.remember(m)
		return m, nil
	}

	data, contentType, err := f.download(ctx, ref)
	if err != nil {
		return Media{}, err
	}
	info, err := Decode(data)
	if err != nil {
		return Media{}, fmt.Errorf("media %s: %w", ref, err)
	}

	m := Media{Ref: ref, Data: data, Frames: info.Frames, Loop: info.Loop, Source: SourceNetwork}
	f.remember(m)

	if f.disk != nil {
		err := f.disk.PutMedia(models.CachedMedia{
			Ref:         ref,
			ContentType: contentType,
			Data:        data,
			FetchedAt:   f.clock.Now(),
		})
		if err != nil {
			logger.Warn("failed to write media cache", "ref", ref, "error", err)
		}
	}
	return m, nil
}

func (f *Fetcher) remember(m Media) {
	f.mu.Lock()
	f.mem[m.Ref] = m
	f.mu.Unlock()
}

func (f *Fetcher) fromDisk(ref string) (Media, bool) {
	if f.disk == nil {
		return Media{}, false
	}
	cached, err := f.disk.GetMedia(ref)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("failed to read media cache", "ref", ref, "error", err)
		}
		return Media{}, false
	}
	if cached.Expired(f.clock.Now(), f.ttl) {
		logger.Debug("media cache expired", "ref", ref, "fetched_at", cached.FetchedAt)
		return Media{}, false
	}
	info, err := Decode(cached.Data)
	if err != nil {
		logger.Warn("discarding unreadable cached media", "ref", ref, "error", err)
		return Media{}, false
	}
	logger.Debug("media cache hit", "ref", ref, "source", SourceDisk)
	return Media{Ref: ref, Data: cached.Data, Frames: info.Frames, Loop: info.Loop, Source: SourceDisk}, true
}

func (f *Fetcher) download(ctx context.Context, ref string) ([]byte, string, error) {
	var lastErr error
	for attempt := 1; attempt <= f.maxRetries; attempt++ {
		if attempt > 1 {
			logger.Debug("retrying media fetch", "ref", ref, "attempt", attempt, "error", lastErr)
			select {
			case <-ctx.Done():
				return nil, "", ctx.Err()
			case <-time.After(time.Duration(attempt-1) * f.retryDelay):
			}
		}

		data, contentType, err := f.get(ctx, ref)
		if err == nil {
			return data, contentType, nil
		}
		lastErr = err

		var statusErr *StatusError
		if errors.As(err, &statusErr) && !statusErr.retryable() {
			return nil, "", err
		}
		if errors.Is(err, ErrTooLarge) {
			return nil, "", err
		}
		if ctx.Err() != nil {
			return nil, "", ctx.Err()
		}
	}
	return nil, "", fmt.Errorf("fetching %s after %d attempts: %w", ref, f.maxRetries, lastErr)
}

func (f *Fetcher) get(ctx context.Context, ref string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL(ref), nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, "", &StatusError{Ref: ref, Status: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("reading media %s: %w", ref, err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, "", fmt.Errorf("media %s: %w (%d bytes)", ref, ErrTooLarge, f.maxBytes)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// Prefetch warms the caches for refs with at most concurrency downloads in
// flight. Empty and duplicate references are skipped. It returns how many
// references are now cached and every failure joined together.
func (f *Fetcher) Prefetch(ctx context.Context, refs []string, concurrency int) (int, error) {
	if concurrency <= 0 {
		concurrency = constants.MediaPrefetchWorkers
	}

	seen := make(map[string]struct{}, len(refs))
	var (
		mu   sync.Mutex
		ok   int
		errs []error
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		if _, dup := seen[ref]; dup {
			continue
		}
		seen[ref] = struct{}{}

		g.Go(func() error {
			_, err := f.Fetch(ctx, ref)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return nil
			}
			ok++
			return nil
		})
	}
	_ = g.Wait()

	return ok, errors.Join(errs...)
}
