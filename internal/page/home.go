package page

import (
	"context"
	"log/slog"
	"sync"

	"github.com/a-h/templ"

	"homepage/internal/backend"
	"homepage/internal/view"
)

const (
	// LoadingText is shown until the backend payload arrives.
	LoadingText = "Loading..."
	// FailureText is shown for a failed fetch when failures are visible.
	FailureText = "Failed to load backend data."
	greeting    = "Hello from /home page"
)

// Fetcher loads the backend root payload.
type Fetcher interface {
	GetRoot(ctx context.Context) (backend.Payload, error)
}

// Phase is the lifecycle position of a Home page.
type Phase int

const (
	Loading Phase = iota
	Loaded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "loading"
	}
}

// State is a snapshot of the page. Payload is set only when Loaded, Err only when Failed.
type State struct {
	Phase   Phase
	Payload backend.Payload
	Err     error
}

// Home is the single page of the site. Its first Mount starts the backend
// fetch; the outcome is recorded once and never refreshed.
type Home struct {
	fetcher     Fetcher
	log         *slog.Logger
	showFailure bool

	once  sync.Once
	done  chan struct{}
	mu    sync.RWMutex
	state State
}

// Option customizes a Home.
type Option func(*Home)

// WithFailureVisible renders FailureText instead of LoadingText after a failed fetch.
func WithFailureVisible(v bool) Option {
	return func(h *Home) { h.showFailure = v }
}

// NewHome creates a page in the Loading phase.
func NewHome(f Fetcher, log *slog.Logger, opts ...Option) *Home {
	if log == nil {
		log = slog.Default()
	}
	h := &Home{
		fetcher: f,
		log:     log,
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Mount starts the backend fetch on the first call and returns immediately.
// The fetch outlives ctx cancellation; ctx values such as trace spans are kept.
func (h *Home) Mount(ctx context.Context) {
	h.once.Do(func() {
		go h.load(context.WithoutCancel(ctx))
	})
}

func (h *Home) load(ctx context.Context) {
	defer close(h.done)

	payload, err := h.fetcher.GetRoot(ctx)
	if err != nil {
		h.log.ErrorContext(ctx, "backend error", "error", err)
		h.set(State{Phase: Failed, Err: err})
		return
	}
	h.set(State{Phase: Loaded, Payload: payload})
}

func (h *Home) set(s State) {
	h.mu.Lock()
	h.state = s
	h.mu.Unlock()
}

// State returns the current page state.
func (h *Home) State() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

// Done is closed once the fetch started by Mount has resolved.
func (h *Home) Done() <-chan struct{} {
	return h.done
}

// Text returns what the container currently displays.
func (h *Home) Text() string {
	return h.text(h.State())
}

func (h *Home) text(s State) string {
	switch s.Phase {
	case Loaded:
		text, err := s.Payload.Indent()
		if err != nil {
			h.log.Error("render payload", "error", err)
			return LoadingText
		}
		return text
	case Failed:
		if h.showFailure {
			return FailureText
		}
	}
	return LoadingText
}

// Component renders the greeting and the current state inside the blue box.
func (h *Home) Component() templ.Component {
	s := h.State()
	content := view.Text(h.text(s))
	if s.Phase == Loaded {
		content = view.Pre(h.text(s))
	}
	return view.Group(
		view.Paragraph(greeting),
		view.Box(content, nil),
	)
}
