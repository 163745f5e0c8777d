package httputil

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/boxfit/pkg/errors"
	"github.com/matzehuels/boxfit/pkg/observability"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", errors.New(errors.ErrCodeInvalidInput, "bad"), http.StatusBadRequest},
		{"invalid dimension", errors.New(errors.ErrCodeInvalidDimension, "bad"), http.StatusBadRequest},
		{"invalid sizing", errors.New(errors.ErrCodeInvalidSizing, "bad"), http.StatusBadRequest},
		{"not found", errors.New(errors.ErrCodeNotFound, "gone"), http.StatusNotFound},
		{"unsupported", errors.New(errors.ErrCodeUnsupported, "no"), http.StatusNotImplemented},
		{"wrapped", fmt.Errorf("ctx: %w", errors.New(errors.ErrCodeInvalidPadding, "bad")), http.StatusBadRequest},
		{"plain", stderrors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFor(tt.err); got != tt.want {
				t.Errorf("StatusFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errors.New(errors.ErrCodeInvalidDimension, "width must be finite"))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body ErrorBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Code != errors.ErrCodeInvalidDimension || body.Message != "width must be finite" {
		t.Errorf("body = %+v", body)
	}
}

func TestWriteErrorUncoded(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, stderrors.New("boom"))

	var body ErrorBody
	_ = json.NewDecoder(rec.Body).Decode(&body)
	if rec.Code != http.StatusInternalServerError || body.Code != errors.ErrCodeInternal || body.Message != "boom" {
		t.Errorf("got %d %+v", rec.Code, body)
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Sizing string `json:"sizing"`
	}

	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{name: "valid", body: `{"sizing":"fill"}`, want: "fill"},
		{name: "empty", body: ``, wantErr: true},
		{name: "unknown field", body: `{"sizing":"fill","colour":"red"}`, wantErr: true},
		{name: "trailing data", body: `{"sizing":"fill"} {}`, wantErr: true},
		{name: "malformed", body: `{"sizing":`, wantErr: true},
		{name: "too large", body: `{"sizing":"` + strings.Repeat("x", MaxBodyBytes) + `"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			err := DecodeJSON(req, &p)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidInput) {
					t.Errorf("error code = %v, want INVALID_INPUT", errors.GetCode(err))
				}
				return
			}
			if p.Sizing != tt.want {
				t.Errorf("Sizing = %q, want %q", p.Sizing, tt.want)
			}
		})
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	requests  []string
	responses []int
}

func (h *recordingHTTPHooks) OnRequest(_ context.Context, method, path string) {
	h.requests = append(h.requests, method+" "+path)
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.responses = append(h.responses, status)
}

func TestObserve(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	handler := Observe(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, "ok")
	}))

	for _, path := range []string{"/healthz", "/missing"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if want := []string{"GET /healthz", "GET /missing"}; fmt.Sprint(hooks.requests) != fmt.Sprint(want) {
		t.Errorf("requests = %v, want %v", hooks.requests, want)
	}
	if want := []int{200, 404}; fmt.Sprint(hooks.responses) != fmt.Sprint(want) {
		t.Errorf("responses = %v, want %v", hooks.responses, want)
	}
}

func TestRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := Retry(ctx, 3, time.Millisecond, func() error {
			calls++
			if calls < 3 {
				return &RetryableError{Err: stderrors.New("busy")}
			}
			return nil
		})
		if err != nil || calls != 3 {
			t.Errorf("err = %v, calls = %d", err, calls)
		}
	})

	t.Run("stops on permanent failure", func(t *testing.T) {
		calls := 0
		permanent := stderrors.New("denied")
		err := Retry(ctx, 5, time.Millisecond, func() error {
			calls++
			return permanent
		})
		if err != permanent || calls != 1 {
			t.Errorf("err = %v, calls = %d", err, calls)
		}
	})

	t.Run("returns last error", func(t *testing.T) {
		calls := 0
		err := Retry(ctx, 2, time.Millisecond, func() error {
			calls++
			return &RetryableError{Err: fmt.Errorf("attempt %d", calls)}
		})
		if err == nil || err.Error() != "attempt 2" {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("cancelled while waiting", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		err := Retry(cctx, 3, time.Hour, func() error {
			return &RetryableError{Err: stderrors.New("busy")}
		})
		if err != context.Canceled {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	})
}
