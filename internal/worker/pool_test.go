package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/color-tools-mcp/internal/colorspace"
	"github.com/ironsheep/color-tools-mcp/internal/extract"
)

// solidBuffer creates a width x height opaque buffer of one color.
func solidBuffer(width, height int, r, g, b uint8) extract.PixelBuffer {
	pix := make([]uint8, width*height*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = r, g, b, 255
	}
	return extract.PixelBuffer{Width: width, Height: height, Pix: pix}
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestPool_Extract(t *testing.T) {
	p := New(Config{}, nil)
	defer p.Close()

	resp, err := p.Extract(testContext(t), Request{Buffer: solidBuffer(20, 20, 255, 0, 0)})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if resp.Err != nil {
		t.Fatalf("unexpected processing error: %v", resp.Err)
	}

	want := []colorspace.ColorResult{{Hex: "#fa0000", RGB: "rgb(250, 0, 0)", HSL: "hsl(0, 100%, 49%)"}}
	if diff := cmp.Diff(want, resp.Colors); diff != "" {
		t.Errorf("colors mismatch (-want +got):\n%s", diff)
	}
	if resp.Seq == 0 {
		t.Error("expected a non-zero sequence number")
	}
}

func TestPool_MatchesDirectExtraction(t *testing.T) {
	p := New(Config{Workers: 2, QueueSize: 2}, nil)
	defer p.Close()

	buf := solidBuffer(30, 30, 12, 200, 99)
	want, err := extract.Extract(buf, extract.Options{Limit: 3})
	if err != nil {
		t.Fatalf("extract.Extract failed: %v", err)
	}

	resp, err := p.Extract(testContext(t), Request{Buffer: buf, Options: extract.Options{Limit: 3}})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if diff := cmp.Diff(want, resp.Colors); diff != "" {
		t.Errorf("colors mismatch (-want +got):\n%s", diff)
	}
}

func TestPool_ProcessingFailure(t *testing.T) {
	p := New(Config{}, nil)
	defer p.Close()

	bad := extract.PixelBuffer{Width: 4, Height: 4, Pix: make([]uint8, 7)}
	resp, err := p.Extract(testContext(t), Request{Buffer: bad})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !errors.Is(resp.Err, extract.ErrProcessing) {
		t.Errorf("expected ErrProcessing, got %v", resp.Err)
	}
	if resp.Colors == nil || len(resp.Colors) != 0 {
		t.Errorf("expected empty non-nil colors, got %#v", resp.Colors)
	}
}

func TestPool_RecoversPanic(t *testing.T) {
	p := New(Config{}, nil)
	defer p.Close()
	p.extractFn = func(extract.PixelBuffer, extract.Options) ([]colorspace.ColorResult, error) {
		panic("unreadable buffer")
	}

	resp, err := p.Extract(testContext(t), Request{Buffer: solidBuffer(1, 1, 0, 0, 0)})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !errors.Is(resp.Err, extract.ErrProcessing) {
		t.Errorf("expected ErrProcessing, got %v", resp.Err)
	}
	if resp.Colors == nil || len(resp.Colors) != 0 {
		t.Errorf("expected empty non-nil colors, got %#v", resp.Colors)
	}

	// The worker must survive the panic.
	p.extractFn = extract.Extract
	resp, err = p.Extract(testContext(t), Request{Buffer: solidBuffer(1, 1, 0, 0, 0)})
	if err != nil || resp.Err != nil || len(resp.Colors) != 1 {
		t.Errorf("worker did not recover: resp=%+v err=%v", resp, err)
	}
}

func TestPool_WrapsForeignErrors(t *testing.T) {
	p := New(Config{}, nil)
	defer p.Close()
	p.extractFn = func(extract.PixelBuffer, extract.Options) ([]colorspace.ColorResult, error) {
		return nil, errors.New("disk on fire")
	}

	resp, _ := p.Extract(testContext(t), Request{Buffer: solidBuffer(1, 1, 0, 0, 0)})
	if !errors.Is(resp.Err, extract.ErrProcessing) {
		t.Errorf("expected ErrProcessing, got %v", resp.Err)
	}
}

func TestPool_StaleResponses(t *testing.T) {
	p := New(Config{Workers: 1, QueueSize: 4}, nil)
	defer p.Close()

	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	p.extractFn = func(buf extract.PixelBuffer, opts extract.Options) ([]colorspace.ColorResult, error) {
		once.Do(func() {
			close(started)
			<-release
		})
		return extract.Extract(buf, opts)
	}

	ctx := testContext(t)
	first, err := p.Submit(ctx, Request{Key: "a.png", Buffer: solidBuffer(4, 4, 255, 0, 0)})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	<-started

	second, err := p.Submit(ctx, Request{Key: "a.png", Buffer: solidBuffer(4, 4, 0, 255, 0)})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	third, err := p.Submit(ctx, Request{Key: "a.png", Buffer: solidBuffer(4, 4, 0, 0, 255)})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	other, err := p.Submit(ctx, Request{Key: "b.png", Buffer: solidBuffer(4, 4, 9, 9, 9)})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	close(release)

	r1, _ := first.Wait(ctx)
	r2, _ := second.Wait(ctx)
	r3, _ := third.Wait(ctx)
	r4, _ := other.Wait(ctx)

	if !r1.Stale {
		t.Error("first response should be stale: it finished after newer submissions")
	}
	if len(r1.Colors) != 1 {
		t.Errorf("first response still carries its colors, got %d", len(r1.Colors))
	}
	if !r2.Stale || len(r2.Colors) != 0 {
		t.Errorf("second response should be skipped: stale=%v colors=%d", r2.Stale, len(r2.Colors))
	}
	if r3.Stale {
		t.Error("third response is the newest for its key and should not be stale")
	}
	if len(r3.Colors) != 1 || r3.Colors[0].Hex != "#0000fa" {
		t.Errorf("third response colors: got %+v", r3.Colors)
	}
	if r4.Stale {
		t.Error("a different key must not be marked stale")
	}

	if !(r1.Seq < r2.Seq && r2.Seq < r3.Seq && r3.Seq < r4.Seq) {
		t.Errorf("sequence numbers not monotonic: %d %d %d %d", r1.Seq, r2.Seq, r3.Seq, r4.Seq)
	}
	if !p.IsCurrent("a.png", r3.Seq) || p.IsCurrent("a.png", r1.Seq) {
		t.Error("IsCurrent disagrees with submission order")
	}
}

func TestPool_CancelledSubmitDoesNotSupersede(t *testing.T) {
	p := New(Config{Workers: 1, QueueSize: 0}, nil)
	defer p.Close()

	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	p.extractFn = func(buf extract.PixelBuffer, opts extract.Options) ([]colorspace.ColorResult, error) {
		once.Do(func() {
			close(started)
			<-release
		})
		return extract.Extract(buf, opts)
	}

	ctx := testContext(t)
	first, err := p.Submit(ctx, Request{Key: "img.png", Buffer: solidBuffer(4, 4, 255, 0, 0)})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	<-started

	// The only worker is busy and the queue has no room, so this submission
	// can never be queued.
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := p.Submit(cancelled, Request{Key: "img.png", Buffer: solidBuffer(4, 4, 0, 0, 255)}); !errors.Is(err, context.Canceled) {
		t.Fatalf("Submit with cancelled context: got %v, want context.Canceled", err)
	}
	close(release)

	resp, err := first.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if resp.Stale {
		t.Error("response marked stale although the newer submission was never queued")
	}
	if len(resp.Colors) != 1 || resp.Colors[0].Hex != "#fa0000" {
		t.Errorf("colors: got %+v, want one #fa0000", resp.Colors)
	}
	if !p.IsCurrent("img.png", first.Seq) {
		t.Error("IsCurrent should still report the first submission as current")
	}
}

func TestPool_EmptyKeyNeverStale(t *testing.T) {
	p := New(Config{}, nil)
	defer p.Close()

	ctx := testContext(t)
	for i := 0; i < 3; i++ {
		resp, err := p.Extract(ctx, Request{Buffer: solidBuffer(2, 2, 1, 2, 3)})
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if resp.Stale {
			t.Errorf("request %d with empty key marked stale", i)
		}
	}
}

func TestPool_SubmitAfterClose(t *testing.T) {
	p := New(Config{}, nil)
	if err := p.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	_, err := p.Submit(context.Background(), Request{Buffer: solidBuffer(1, 1, 0, 0, 0)})
	if !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestPool_CloseDrainsQueue(t *testing.T) {
	p := New(Config{Workers: 1, QueueSize: 8}, nil)

	ctx := testContext(t)
	tickets := make([]*Ticket, 0, 5)
	for i := 0; i < 5; i++ {
		tk, err := p.Submit(ctx, Request{Buffer: solidBuffer(10, 10, uint8(i*50), 0, 0)})
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		tickets = append(tickets, tk)
	}
	p.Close()

	for i, tk := range tickets {
		resp, err := tk.Wait(ctx)
		if err != nil {
			t.Fatalf("ticket %d: Wait failed: %v", i, err)
		}
		if len(resp.Colors) != 1 {
			t.Errorf("ticket %d: expected 1 color, got %d", i, len(resp.Colors))
		}
	}
}

func TestTicket_WaitHonorsContext(t *testing.T) {
	p := New(Config{}, nil)
	defer p.Close()

	release := make(chan struct{})
	p.extractFn = func(buf extract.PixelBuffer, opts extract.Options) ([]colorspace.ColorResult, error) {
		<-release
		return extract.Extract(buf, opts)
	}
	defer close(release)

	tk, err := p.Submit(context.Background(), Request{Buffer: solidBuffer(1, 1, 0, 0, 0)})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := tk.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestPool_ConcurrentSubmit(t *testing.T) {
	p := New(Config{Workers: 4, QueueSize: 2}, nil)
	defer p.Close()

	ctx := testContext(t)
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := p.Extract(ctx, Request{Buffer: solidBuffer(8, 8, uint8(i*10), 0, 0)})
			if err != nil {
				errs <- err
				return
			}
			if resp.Err != nil || len(resp.Colors) != 1 {
				errs <- errors.New("unexpected response")
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
