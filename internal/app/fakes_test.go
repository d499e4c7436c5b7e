package app

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"ambient_validation_bot/internal/domain/notifier"
	idb "ambient_validation_bot/internal/infra/database"

	"github.com/sirupsen/logrus"
)

type memStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	puts    int
	failGet error
	failPut error
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (s *memStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failGet != nil {
		return nil, s.failGet
	}
	v, ok := s.data[key]
	if !ok {
		return nil, idb.ErrStateNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *memStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failPut != nil {
		return s.failPut
	}
	s.puts++
	s.data[key] = append([]byte(nil), value...)
	return nil
}

type fakeNotifier struct {
	permission notifier.Permission
	grantOnAsk notifier.Permission
	requests   int
	sent       []notifier.Notification
	sendErr    error
}

func (n *fakeNotifier) Permission(context.Context) (notifier.Permission, error) {
	return n.permission, nil
}

func (n *fakeNotifier) RequestPermission(context.Context) (notifier.Permission, error) {
	n.requests++
	n.permission = n.grantOnAsk
	return n.permission, nil
}

func (n *fakeNotifier) Notify(_ context.Context, note notifier.Notification) error {
	if n.sendErr != nil {
		return n.sendErr
	}
	n.sent = append(n.sent, note)
	return nil
}

type timerJob struct {
	every     bool
	duration  time.Duration
	job       func()
	cancelled bool
}

// fakeTimer records jobs; tests fire them explicitly.
type fakeTimer struct {
	jobs []*timerJob
}

func (t *fakeTimer) add(every bool, d time.Duration, job func()) func() {
	j := &timerJob{every: every, duration: d, job: job}
	t.jobs = append(t.jobs, j)
	return func() { j.cancelled = true }
}

func (t *fakeTimer) Every(d time.Duration, job func()) func() { return t.add(true, d, job) }
func (t *fakeTimer) After(d time.Duration, job func()) func() { return t.add(false, d, job) }

func (t *fakeTimer) active() []*timerJob {
	var out []*timerJob
	for _, j := range t.jobs {
		if !j.cancelled {
			out = append(out, j)
		}
	}
	return out
}

func (t *fakeTimer) activeEvery() *timerJob {
	for _, j := range t.active() {
		if j.every {
			return j
		}
	}
	return nil
}

func (t *fakeTimer) activeAfter() *timerJob {
	for _, j := range t.active() {
		if !j.every {
			return j
		}
	}
	return nil
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type seqRand struct {
	values []int
	i      int
}

func (r *seqRand) IntN(n int) int {
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[r.i%len(r.values)]
	r.i++
	return v % n
}

type fakeOffer struct {
	accepted bool
	err      error
	prompts  int
}

func (o *fakeOffer) Prompt(context.Context) (bool, error) {
	o.prompts++
	return o.accepted, o.err
}

var errBoom = errors.New("boom")

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
