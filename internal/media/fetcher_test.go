package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/julianstephens/fivemin/internal/clock"
	"github.com/julianstephens/fivemin/internal/models"
	"github.com/julianstephens/fivemin/internal/storage"
)

const testRef = "Exercises/Chest/Easy/push-ups_easy.gif"

func testGIF(t *testing.T, delays ...int) []byte {
	t.Helper()
	pal := color.Palette{color.Black, color.White}
	anim := &gif.GIF{}
	for _, d := range delays {
		anim.Image = append(anim.Image, image.NewPaletted(image.Rect(0, 0, 4, 4), pal))
		anim.Delay = append(anim.Delay, d)
	}
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		t.Fatalf("encoding gif: %v", err)
	}
	return buf.Bytes()
}

type memDisk struct {
	mu      sync.Mutex
	entries map[string]models.CachedMedia
	puts    int
}

func newMemDisk() *memDisk {
	return &memDisk{entries: make(map[string]models.CachedMedia)}
}

func (d *memDisk) GetMedia(ref string) (models.CachedMedia, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	m, ok := d.entries[ref]
	if !ok {
		return models.CachedMedia{}, storage.ErrNotFound
	}
	return m, nil
}

func (d *memDisk) PutMedia(m models.CachedMedia) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[m.Ref] = m
	d.puts++
	return nil
}

func TestDecode(t *testing.T) {
	t.Run("animated gif", func(t *testing.T) {
		info, err := Decode(testGIF(t, 10, 20, 0))
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if info.Frames != 3 {
			t.Errorf("Frames = %d, want 3", info.Frames)
		}
		// 100ms + 200ms + default 100ms
		if info.Loop != 400*time.Millisecond {
			t.Errorf("Loop = %v, want 400ms", info.Loop)
		}
	})

	t.Run("still png", func(t *testing.T) {
		var buf bytes.Buffer
		if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 3))); err != nil {
			t.Fatal(err)
		}
		info, err := Decode(buf.Bytes())
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if info.Frames != 1 || info.Loop != 0 || info.Width != 2 || info.Height != 3 {
			t.Errorf("unexpected info %+v", info)
		}
	})

	t.Run("truncated gif", func(t *testing.T) {
		data := testGIF(t, 10, 10, 10)
		if _, err := Decode(data[:len(data)-4]); !errors.Is(err, ErrInvalidMedia) {
			t.Errorf("expected ErrInvalidMedia for a cut-off gif, got %v", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := Decode([]byte("not an image")); !errors.Is(err, ErrInvalidMedia) {
			t.Errorf("expected ErrInvalidMedia, got %v", err)
		}
		if _, err := Decode(nil); !errors.Is(err, ErrInvalidMedia) {
			t.Errorf("expected ErrInvalidMedia for empty data, got %v", err)
		}
	})
}

func TestURLEscapesReference(t *testing.T) {
	f := NewFetcher(Options{BaseURL: "https://example.test/o/"})
	got := f.URL(testRef)
	want := "https://example.test/o/Exercises%2FChest%2FEasy%2Fpush-ups_easy.gif?alt=media"
	if got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}

func TestFetchLayers(t *testing.T) {
	body := testGIF(t, 5, 5)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Query().Get("alt") != "media" {
			t.Errorf("missing alt=media query: %s", r.URL)
		}
		w.Header().Set("Content-Type", "image/gif")
		w.Write(body)
	}))
	defer srv.Close()

	disk := newMemDisk()
	f := NewFetcher(Options{BaseURL: srv.URL, Disk: disk, TTL: time.Hour})
	ctx := context.Background()

	m, err := f.Fetch(ctx, testRef)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if m.Source != SourceNetwork || m.Frames != 2 {
		t.Errorf("first fetch = %s with %d frames, want network with 2", m.Source, m.Frames)
	}
	if disk.puts != 1 {
		t.Errorf("expected disk write, got %d", disk.puts)
	}

	m, err = f.Fetch(ctx, testRef)
	if err != nil {
		t.Fatalf("second Fetch: %v", err)
	}
	if m.Source != SourceMemory {
		t.Errorf("second fetch source = %s, want memory", m.Source)
	}

	fresh := NewFetcher(Options{BaseURL: srv.URL, Disk: disk, TTL: time.Hour})
	m, err = fresh.Fetch(ctx, testRef)
	if err != nil {
		t.Fatalf("disk Fetch: %v", err)
	}
	if m.Source != SourceDisk {
		t.Errorf("new fetcher source = %s, want disk", m.Source)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("expected 1 network request, got %d", got)
	}
}

func TestFetchExpiredDiskEntry(t *testing.T) {
	body := testGIF(t, 5)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write(body)
	}))
	defer srv.Close()

	now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	disk := newMemDisk()
	disk.entries[testRef] = models.CachedMedia{Ref: testRef, Data: body, FetchedAt: now.Add(-8 * 24 * time.Hour)}

	f := NewFetcher(Options{BaseURL: srv.URL, Disk: disk, TTL: 7 * 24 * time.Hour, Clock: clock.NewManual(now)})
	m, err := f.Fetch(context.Background(), testRef)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if m.Source != SourceNetwork || hits.Load() != 1 {
		t.Errorf("expected expired entry to be refetched, got source %s and %d hits", m.Source, hits.Load())
	}
	if !disk.entries[testRef].FetchedAt.Equal(now) {
		t.Errorf("expected refreshed timestamp %v, got %v", now, disk.entries[testRef].FetchedAt)
	}
}

func TestFetchRetries(t *testing.T) {
	body := testGIF(t, 5)

	tests := []struct {
		name      string
		statuses  []int
		wantHits  int32
		wantErr   bool
		wantNotFd bool
	}{
		{name: "recovers after server errors", statuses: []int{500, 503, 200}, wantHits: 3},
		{name: "gives up after three attempts", statuses: []int{500, 500, 500, 200}, wantHits: 3, wantErr: true},
		{name: "client error is not retried", statuses: []int{403, 200}, wantHits: 1, wantErr: true},
		{name: "not found", statuses: []int{404}, wantHits: 1, wantErr: true, wantNotFd: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := int(hits.Add(1)) - 1
				status := tt.statuses[min(n, len(tt.statuses)-1)]
				if status != http.StatusOK {
					w.WriteHeader(status)
					return
				}
				w.Write(body)
			}))
			defer srv.Close()

			f := NewFetcher(Options{BaseURL: srv.URL, RetryDelay: time.Millisecond})
			_, err := f.Fetch(context.Background(), testRef)
			if tt.wantErr != (err != nil) {
				t.Fatalf("Fetch error = %v, wantErr %v", err, tt.wantErr)
			}
			if got := hits.Load(); got != tt.wantHits {
				t.Errorf("requests = %d, want %d", got, tt.wantHits)
			}
			if tt.wantNotFd && !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestFetchFailureIsNotCached(t *testing.T) {
	body := testGIF(t, 5)
	var fail atomic.Bool
	fail.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Write(body)
	}))
	defer srv.Close()

	f := NewFetcher(Options{BaseURL: srv.URL})
	if _, err := f.Fetch(context.Background(), testRef); err == nil {
		t.Fatal("expected first fetch to fail")
	}
	fail.Store(false)
	if _, err := f.Fetch(context.Background(), testRef); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
}

func TestFetchRejectsNonImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>not media</html>")
	}))
	defer srv.Close()

	f := NewFetcher(Options{BaseURL: srv.URL})
	_, err := f.Fetch(context.Background(), testRef)
	if !errors.Is(err, ErrInvalidMedia) {
		t.Errorf("expected ErrInvalidMedia, got %v", err)
	}
	if _, ok := f.Cached(testRef); ok {
		t.Error("invalid media should not be cached")
	}
}

func TestFetchRejectsOversizedBody(t *testing.T) {
	body := testGIF(t, 10, 10, 10, 10, 10, 10)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write(body)
	}))
	defer srv.Close()

	disk := newMemDisk()
	f := NewFetcher(Options{BaseURL: srv.URL, Disk: disk, MaxBytes: int64(len(body) - 1)})
	_, err := f.Fetch(context.Background(), testRef)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("oversized body was retried: %d requests", hits.Load())
	}
	if _, ok := f.Cached(testRef); ok {
		t.Error("oversized media should not be cached")
	}
	if disk.puts != 0 {
		t.Errorf("oversized media written to disk %d times", disk.puts)
	}

	exact := NewFetcher(Options{BaseURL: srv.URL, MaxBytes: int64(len(body))})
	m, err := exact.Fetch(context.Background(), testRef)
	if err != nil {
		t.Fatalf("body at the limit: %v", err)
	}
	if m.Frames != 6 {
		t.Errorf("Frames = %d, want 6", m.Frames)
	}
}

func TestFetchEmptyReference(t *testing.T) {
	f := NewFetcher(Options{BaseURL: "http://127.0.0.1:1"})
	if _, err := f.Fetch(context.Background(), ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFetchCollapsesConcurrentRequests(t *testing.T) {
	body := testGIF(t, 5)
	release := make(chan struct{})
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		w.Write(body)
	}))
	defer srv.Close()

	f := NewFetcher(Options{BaseURL: srv.URL})
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.Fetch(context.Background(), testRef)
			errs <- err
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("Fetch: %v", err)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("expected 1 request, got %d", got)
	}
}

func TestFetchHonorsCallerContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	f := NewFetcher(Options{BaseURL: srv.URL})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := f.Fetch(ctx, testRef); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestPrefetch(t *testing.T) {
	body := testGIF(t, 5)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if strings.Contains(r.URL.EscapedPath(), "missing") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write(body)
	}))
	defer srv.Close()

	f := NewFetcher(Options{BaseURL: srv.URL})
	refs := []string{"a.gif", "b.gif", "a.gif", "", "missing.gif"}
	n, err := f.Prefetch(context.Background(), refs, 2)
	if n != 2 {
		t.Errorf("cached = %d, want 2", n)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected joined ErrNotFound, got %v", err)
	}
	if got := hits.Load(); got != 3 {
		t.Errorf("expected 3 requests, got %d", got)
	}
	for _, ref := range []string{"a.gif", "b.gif"} {
		if _, ok := f.Cached(ref); !ok {
			t.Errorf("%s not cached after prefetch", ref)
		}
	}
}

func TestPreference(t *testing.T) {
	p := NewPreference("")
	if p.Get() != models.DifficultyEasy {
		t.Fatalf("default = %s, want Easy", p.Get())
	}
	if got := p.Toggle(); got != models.DifficultyHard {
		t.Errorf("Toggle() = %s, want Hard", got)
	}
	p.Set(models.DifficultyEasy)
	if p.Get() != models.DifficultyEasy {
		t.Errorf("Get() = %s after Set(Easy)", p.Get())
	}

	ex := models.NewExercise("id", "Push-ups", 30, models.Category("Chest"), "easy.gif", "hard.gif")
	if Resolve(ex, models.DifficultyHard) != "hard.gif" || Resolve(ex, models.DifficultyEasy) != "easy.gif" {
		t.Error("Resolve did not follow the difficulty")
	}
}
