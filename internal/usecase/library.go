package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aalvaropc/libris/internal/domain"
	"github.com/aalvaropc/libris/internal/ports"
)

// State is what the presentation layer renders. Error is "" when there is
// nothing to report; Notice carries the last success message.
type State struct {
	Books       []domain.Book
	Users       []domain.User
	Loans       []domain.Loan
	Error       string
	Notice      string
	Login       domain.LoginState
	CurrentUser *domain.User
}

func (s State) clone() State {
	out := s
	out.Books = append([]domain.Book(nil), s.Books...)
	out.Users = make([]domain.User, len(s.Users))
	for i, u := range s.Users {
		out.Users[i] = u.Clone()
	}
	out.Loans = append([]domain.Loan(nil), s.Loans...)
	if s.Books == nil {
		out.Books = []domain.Book{}
	}
	if s.Loans == nil {
		out.Loans = []domain.Loan{}
	}
	if s.CurrentUser != nil {
		u := s.CurrentUser.Clone()
		out.CurrentUser = &u
	}
	return out
}

// Library is the application view-model: it owns the observable state and
// runs the fetch, cache and seed fallback for every collection.
//
// Operations block and are safe for concurrent use; state changes are
// serialized and API calls never run while the state lock is held.
type Library struct {
	api   ports.LibraryAPI
	cache ports.LibraryCache
	log   *slog.Logger
	now   func() time.Time

	mu      sync.Mutex
	state   State
	subs    map[int]chan State
	nextSub int

	// saveMu orders cache writes so an older snapshot never lands last.
	saveMu sync.Mutex
}

type Option func(*Library)

func WithLogger(l *slog.Logger) Option {
	return func(lib *Library) {
		if l != nil {
			lib.log = l
		}
	}
}

// WithClock is useful for tests.
func WithClock(now func() time.Time) Option {
	return func(lib *Library) { lib.now = now }
}

func NewLibrary(api ports.LibraryAPI, cache ports.LibraryCache, opts ...Option) *Library {
	l := &Library{
		api:   api,
		cache: cache,
		log:   slog.New(slog.DiscardHandler),
		now:   time.Now,
		state: State{
			Books: []domain.Book{},
			Users: []domain.User{},
			Loans: []domain.Loan{},
			Login: domain.IdleLogin(),
		},
		subs: map[int]chan State{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State returns a deep copy of the current state.
func (l *Library) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.clone()
}

// Subscribe returns a channel that receives every new state. The channel
// holds one value and only the latest state is kept. Calling the returned
// func stops delivery and closes the channel.
func (l *Library) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)

	l.mu.Lock()
	id := l.nextSub
	l.nextSub++
	l.subs[id] = ch
	l.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.subs, id)
			l.mu.Unlock()
			close(ch)
		})
	}
}

// update applies fn under the lock and publishes the result.
func (l *Library) update(fn func(*State)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(&l.state)
	l.publishLocked()
}

func (l *Library) publishLocked() {
	for _, ch := range l.subs {
		snap := l.state.clone()
		select {
		case ch <- snap:
		default:
			// Drop the stale value; we are the only sender.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}

func (l *Library) view(fn func(State)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.state)
}

// persist writes the current collections and user to the cache. Failures
// are logged only; the in-memory state stays authoritative.
func (l *Library) persist(ctx context.Context) {
	l.saveMu.Lock()
	defer l.saveMu.Unlock()

	var snap ports.Snapshot
	l.view(func(s State) {
		c := s.clone()
		snap = ports.Snapshot{
			Books:       c.Books,
			Users:       c.Users,
			Loans:       c.Loans,
			CurrentUser: c.CurrentUser,
		}
	})

	if err := l.cache.Save(ctx, snap); err != nil {
		l.log.Error("cache.save.failed", "error", err)
	}
}

// Failure is a user-facing error. Message is what State.Error shows.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string { return f.Message }
func (f *Failure) Unwrap() error { return f.Err }

// fail logs err under event, publishes "<prefix>: <reason>" and returns it.
func (l *Library) fail(event, prefix string, err error) *Failure {
	msg := prefix + ": " + domain.Reason(err)
	return l.failWith(event, msg, err)
}

func (l *Library) failWith(event, msg string, err error) *Failure {
	l.log.Warn(event, "message", msg, "error", err)
	l.update(func(s *State) { s.Error = msg })
	return &Failure{Message: msg, Err: err}
}

func (l *Library) notify(msg string) {
	l.update(func(s *State) { s.Notice = msg })
}

func (l *Library) ClearError() {
	l.update(func(s *State) { s.Error = "" })
}

func (l *Library) ClearNotice() {
	l.update(func(s *State) { s.Notice = "" })
}
