package tracker

import (
	"context"
	"sync"
	"testing"
	"time"

	"clementus360/daily-tracker/session"
	"clementus360/daily-tracker/store"
	"clementus360/daily-tracker/types"

	"github.com/stretchr/testify/require"
)

const testUserID = "6f9619ff-8b86-d011-b42d-00c04fc964ff"

// fixedNow is mid-December so month wrap-around is easy to exercise.
var fixedNow = time.Date(2024, time.December, 15, 10, 0, 0, 0, time.Local)

type fakeSyncer struct {
	mu      sync.Mutex
	pushes  []types.Aggregate
	pulls   int
	pushErr error
	pullErr error
	remote  types.Aggregate
	// rows makes pushes write into remote the way a row store does:
	// deletions first, then key-by-key upserts.
	rows bool
}

func (f *fakeSyncer) Push(_ context.Context, agg types.Aggregate, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushes = append(f.pushes, agg)
	if f.pushErr != nil {
		return f.pushErr
	}
	if f.rows {
		f.upsert(agg)
	}
	return nil
}

func (f *fakeSyncer) upsert(agg types.Aggregate) {
	r := &f.remote
	if r.Data == nil {
		r.Data = types.CompletionGrid{}
	}
	if r.Comments == nil {
		r.Comments = types.Annotations{}
	}
	for _, key := range agg.Deleted.TaskKeys() {
		r.DefaultTasks.Delete(key)
		r.CustomTasks.Delete(key)
		r.Data.DeleteTask(key)
	}
	for _, task := range agg.Deleted.DayTasks() {
		for _, dk := range agg.Deleted.DayKeys(task) {
			mk, d, err := types.SplitDateKey(dk)
			if err == nil {
				r.Data.Clear(task, mk, d)
			}
		}
	}
	for _, key := range agg.Deleted.CommentKeys() {
		delete(r.Comments, key)
	}

	r.DefaultTasks = types.MergeTaskSets(r.DefaultTasks, agg.DefaultTasks)
	r.CustomTasks = types.MergeTaskSets(r.CustomTasks, agg.CustomTasks)
	for task, months := range agg.Data {
		for mk, days := range months {
			for d, status := range days {
				r.Data.Set(task, mk, d, status)
			}
		}
	}
	for k, v := range agg.Comments {
		r.Comments[k] = v
	}
}

func (f *fakeSyncer) remoteState() types.Aggregate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return types.Aggregate{
		DefaultTasks: f.remote.DefaultTasks.Clone(),
		CustomTasks:  f.remote.CustomTasks.Clone(),
		Data:         f.remote.Data.Clone(),
		Comments:     f.remote.Comments.Clone(),
	}
}

func (f *fakeSyncer) Pull(context.Context, string) (types.Aggregate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pulls++
	return f.remote, f.pullErr
}

func (f *fakeSyncer) calls() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pushes), f.pulls
}

type fakeCloud struct {
	objects map[string][]byte
}

func (f *fakeCloud) Upload(_ context.Context, userID, name string, doc []byte) error {
	f.objects[userID+"/"+name] = doc
	return nil
}

func (f *fakeCloud) Download(_ context.Context, userID, name string) ([]byte, error) {
	b, ok := f.objects[userID+"/"+name]
	if !ok {
		return nil, types.ErrNotFound
	}
	return b, nil
}

type harness struct {
	tracker  *Tracker
	store    *store.Memory
	syncer   *fakeSyncer
	identity *session.Static
	network  *session.Monitor
	cloud    *fakeCloud
}

// newHarness builds a tracker with synchronous dispatch, offline and signed
// out. It is not loaded.
func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		store:    store.NewMemory(),
		syncer:   &fakeSyncer{},
		identity: session.NewStatic(),
		network:  session.NewMonitor(false),
		cloud:    &fakeCloud{objects: map[string][]byte{}},
	}
	h.tracker = New(Options{
		Store:    h.store,
		Remote:   h.syncer,
		Cloud:    h.cloud,
		Identity: h.identity,
		Network:  h.network,
		Now:      func() time.Time { return fixedNow },
		Dispatch: func(f func()) { f() },
	})
	t.Cleanup(h.tracker.Close)
	return h
}

func newLoaded(t *testing.T) *harness {
	t.Helper()
	h := newHarness(t)
	require.NoError(t, h.tracker.Load(context.Background()))
	return h
}

// goOnline connects and then signs in, which costs one pull and no push.
func (h *harness) goOnline() {
	h.network.Set(true)
	h.identity.SetUser(session.User{ID: testUserID}, true)
}

func day(d int) types.Date {
	return types.Date{Year: 2024, Month: 11, Day: d}
}
