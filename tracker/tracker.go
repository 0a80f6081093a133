// Package tracker is the application state facade: it owns the in-memory
// tasks, completion grid, annotations and settings, writes every committed
// change through to the local store, rotates backups and schedules
// best-effort remote sync.
package tracker

import (
	"context"
	"errors"
	"sync"
	"time"

	"clementus360/daily-tracker/backup"
	"clementus360/daily-tracker/config"
	"clementus360/daily-tracker/session"
	"clementus360/daily-tracker/store"
	"clementus360/daily-tracker/types"

	"github.com/sirupsen/logrus"
)

// Syncer pushes and pulls the full aggregate for one user.
type Syncer interface {
	Push(ctx context.Context, agg types.Aggregate, userID string) error
	Pull(ctx context.Context, userID string) (types.Aggregate, error)
}

// CloudArchive stores export documents outside the device.
type CloudArchive interface {
	Upload(ctx context.Context, userID, name string, document []byte) error
	Download(ctx context.Context, userID, name string) ([]byte, error)
}

type Options struct {
	Store store.Store
	// Archiver defaults to Store when it implements store.Archiver.
	Archiver store.Archiver
	Remote   Syncer
	Cloud    CloudArchive
	Identity session.Identity
	Network  session.Connectivity
	Now      func() time.Time
	// Dispatch runs background sync work. Defaults to a new goroutine.
	Dispatch func(func())
}

type Tracker struct {
	mu     sync.Mutex
	phases lifecycle
	cur    state

	store    store.Store
	archiver store.Archiver
	backups  *backup.Manager
	remote   Syncer
	cloud    CloudArchive
	identity session.Identity
	network  session.Connectivity
	now      func() time.Time
	dispatch func(func())

	statusMu sync.Mutex
	status   SyncStatus

	// deletedMu guards deleted. Pushes take it without holding mu.
	deletedMu sync.Mutex
	deleted   types.Deletions

	unsubscribe []func()
}

func New(opts Options) *Tracker {
	t := &Tracker{
		phases:   newLifecycle(),
		store:    opts.Store,
		archiver: opts.Archiver,
		backups:  backup.NewManager(opts.Store),
		remote:   opts.Remote,
		cloud:    opts.Cloud,
		identity: opts.Identity,
		network:  opts.Network,
		now:      opts.Now,
		dispatch: opts.Dispatch,
	}
	if t.archiver == nil {
		if a, ok := opts.Store.(store.Archiver); ok {
			t.archiver = a
		}
	}
	if t.identity == nil {
		t.identity = session.NewStatic()
	}
	if t.network == nil {
		t.network = session.NewMonitor(false)
	}
	if t.now == nil {
		t.now = time.Now
	}
	if t.dispatch == nil {
		t.dispatch = func(f func()) { go f() }
	}
	t.cur = initialState(t.now())

	t.unsubscribe = append(t.unsubscribe,
		t.identity.OnAuthChange(t.onAuthChange),
		t.network.OnChange(t.onConnectivityChange),
	)
	return t
}

// Close detaches the tracker from identity and connectivity notifications.
func (t *Tracker) Close() {
	for _, fn := range t.unsubscribe {
		fn()
	}
	t.unsubscribe = nil
}

// Phase reports the least advanced load phase across all categories.
func (t *Tracker) Phase() Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.phases.overall()
}

// Load hydrates every category from the local store. A missing entry keeps
// its default; a malformed one is logged and also keeps its default.
func (t *Tracker) Load(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, c := range allCategories {
		if err := t.phases.begin(c); err != nil {
			return err
		}
	}

	// An empty stored mapping is kept as is; only absent or null reseeds.
	var defaults, custom *types.TaskSet
	if t.read(ctx, store.KeyDefaultTasks, &defaults) && defaults != nil {
		t.cur.defaults = markDefault(*defaults, true)
	}
	if t.read(ctx, store.KeyCustomTasks, &custom) && custom != nil {
		t.cur.custom = markDefault(*custom, false)
	}
	t.phases.finish(CategoryTasks)

	var grid types.CompletionGrid
	if t.read(ctx, store.KeyData, &grid) && grid != nil {
		t.cur.data = grid.Clone()
	}
	t.cur.ensureSlots()
	t.phases.finish(CategoryData)

	var comments types.Annotations
	if t.read(ctx, store.KeyComments, &comments) && comments != nil {
		t.cur.comments = comments
	}
	t.phases.finish(CategoryComments)

	var notes types.Annotations
	if t.read(ctx, store.KeyTodayNotes, &notes) && notes != nil {
		t.cur.notes = notes
	}
	t.phases.finish(CategoryNotes)

	var dark bool
	if t.read(ctx, store.KeyDarkMode, &dark) {
		t.cur.settings.DarkMode = dark
	}
	var layout, analytics map[string]any
	if t.read(ctx, store.KeyLayoutSettings, &layout) && layout != nil {
		t.cur.settings.Layout = layout
	}
	if t.read(ctx, store.KeyAnalyticsSettings, &analytics) && analytics != nil {
		t.cur.settings.Analytics = analytics
	}
	t.phases.finish(CategorySettings)

	var deleted types.Deletions
	if t.read(ctx, store.KeySyncDeletions, &deleted) {
		t.deletedMu.Lock()
		t.deleted = deleted
		t.deletedMu.Unlock()
	}

	config.Logger.WithFields(logrus.Fields{
		"tasks":    t.cur.tasks().Len(),
		"comments": len(t.cur.comments),
	}).Info("Local state loaded")
	return nil
}

func (t *Tracker) read(ctx context.Context, name string, dst any) bool {
	err := store.LoadJSON(ctx, t.store, name, dst)
	switch {
	case err == nil:
		return true
	case errors.Is(err, types.ErrNotFound):
		return false
	default:
		config.Logger.WithError(err).WithField("entity", name).Warn("Falling back to default for unreadable entry")
		return false
	}
}

// commitLocked persists the given categories, rotates backups and schedules
// a push.
func (t *Tracker) commitLocked(ctx context.Context, cats ...Category) {
	if t.persistLocked(ctx, cats...) {
		t.scheduleSyncLocked(ctx)
	}
}

// persistLocked writes cats and rotates backups. It reports false, writing
// nothing, while any of cats is still loading.
func (t *Tracker) persistLocked(ctx context.Context, cats ...Category) bool {
	if !t.phases.hydrated(cats...) {
		config.Logger.WithField("categories", cats).Debug("Skipping write before hydration")
		return false
	}
	for _, c := range cats {
		for name, v := range t.entriesLocked(c) {
			if err := store.SaveJSON(ctx, t.store, name, v); err != nil {
				config.Logger.WithError(err).WithField("entity", name).Error("Failed to persist entry")
			}
		}
	}
	if t.phases.hydrated(allCategories...) {
		if err := t.backups.Rotate(ctx, t.cur.document(t.now())); err != nil {
			config.Logger.WithError(err).Error("Failed to rotate backups")
		}
	}
	return true
}

func (t *Tracker) entriesLocked(c Category) map[string]any {
	switch c {
	case CategoryTasks:
		return map[string]any{
			store.KeyDefaultTasks: t.cur.defaults,
			store.KeyCustomTasks:  t.cur.custom,
		}
	case CategoryData:
		return map[string]any{store.KeyData: t.cur.data}
	case CategoryComments:
		return map[string]any{store.KeyComments: t.cur.comments}
	case CategoryNotes:
		return map[string]any{store.KeyTodayNotes: t.cur.notes}
	case CategorySettings:
		return map[string]any{
			store.KeyDarkMode:          t.cur.settings.DarkMode,
			store.KeyLayoutSettings:    t.cur.settings.Layout,
			store.KeyAnalyticsSettings: t.cur.settings.Analytics,
		}
	}
	return nil
}

// replaceLocked swaps in a complete new state and commits every category.
func (t *Tracker) replaceLocked(ctx context.Context, next state) {
	t.cur = next
	t.commitLocked(ctx, allCategories...)
}
