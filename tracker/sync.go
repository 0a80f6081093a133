package tracker

import (
	"context"
	"strconv"
	"time"

	"clementus360/daily-tracker/config"
	"clementus360/daily-tracker/session"
	"clementus360/daily-tracker/store"
	"clementus360/daily-tracker/types"

	"github.com/sirupsen/logrus"
)

// SyncStatus describes the most recent remote activity.
type SyncStatus struct {
	Enabled   bool       `json:"enabled"`
	Online    bool       `json:"online"`
	UserID    string     `json:"user_id,omitempty"`
	LastPush  *time.Time `json:"last_push,omitempty"`
	LastPull  *time.Time `json:"last_pull,omitempty"`
	LastError string     `json:"last_error,omitempty"`
	InFlight  int        `json:"in_flight"`
}

func (t *Tracker) SyncStatus() SyncStatus {
	t.statusMu.Lock()
	st := t.status
	t.statusMu.Unlock()

	st.Enabled = t.remote != nil
	st.Online = t.network.IsOnline()
	if user, ok := t.identity.CurrentUser(); ok {
		st.UserID = user.ID
	}
	return st
}

// CanSync reports whether remote sync would run right now.
func (t *Tracker) CanSync() bool {
	_, ok := t.syncUser()
	return ok
}

func (t *Tracker) syncUser() (session.User, bool) {
	if t.remote == nil || !t.network.IsOnline() {
		return session.User{}, false
	}
	return t.identity.CurrentUser()
}

// scheduleSyncLocked hands a snapshot to the dispatcher. Offline or signed
// out, it does nothing.
func (t *Tracker) scheduleSyncLocked(ctx context.Context) {
	user, ok := t.syncUser()
	if !ok {
		config.Logger.Debug("Sync skipped: offline or signed out")
		return
	}
	agg := t.aggregateLocked()
	bg := context.WithoutCancel(ctx)
	t.begin()
	t.dispatch(func() {
		defer t.end()
		_ = t.push(bg, agg, user.ID)
	})
}

func (t *Tracker) aggregateLocked() types.Aggregate {
	values, err := t.cur.settings.Values()
	if err != nil {
		config.Logger.WithError(err).Warn("Settings left out of sync")
	}
	return types.Aggregate{
		DefaultTasks: t.cur.defaults.Clone(),
		CustomTasks:  t.cur.custom.Clone(),
		Data:         t.cur.data.Clone(),
		Comments:     t.cur.comments.Clone(),
		Notes:        t.cur.notes.Clone(),
		Settings:     values,
		Deleted:      t.pendingDeletions(),
		Timestamp:    t.now(),
	}
}

func (t *Tracker) pendingDeletions() types.Deletions {
	t.deletedMu.Lock()
	defer t.deletedMu.Unlock()
	return t.deleted.Clone()
}

// recordDeletionLocked notes a local removal so the next push deletes the
// matching remote rows and pulls do not bring it back.
func (t *Tracker) recordDeletionLocked(ctx context.Context, mark func(*types.Deletions)) {
	if !t.phases.hydrated(allCategories...) {
		return
	}
	t.deletedMu.Lock()
	defer t.deletedMu.Unlock()
	mark(&t.deleted)
	t.saveDeletions(ctx)
}

// settleDeletions drops what a successful push already applied.
func (t *Tracker) settleDeletions(ctx context.Context, sent types.Deletions) {
	if sent.Empty() {
		return
	}
	t.deletedMu.Lock()
	defer t.deletedMu.Unlock()
	t.deleted.Forget(sent)
	t.saveDeletions(ctx)
}

// saveDeletions must run with deletedMu held.
func (t *Tracker) saveDeletions(ctx context.Context) {
	if err := store.SaveJSON(ctx, t.store, store.KeySyncDeletions, t.deleted); err != nil {
		config.Logger.WithError(err).WithField("entity", store.KeySyncDeletions).Error("Failed to persist entry")
	}
}

func (t *Tracker) push(ctx context.Context, agg types.Aggregate, userID string) error {
	err := t.remote.Push(ctx, agg, userID)
	t.record(func(st *SyncStatus, at time.Time) { st.LastPush = &at }, err)
	if err != nil {
		config.Logger.WithError(err).WithField("user_id", userID).Warn("Push failed, local state kept")
		return err
	}
	t.settleDeletions(ctx, agg.Deleted)
	config.Logger.WithField("user_id", userID).Debug("Pushed state")
	return nil
}

// SyncNow pushes the current state immediately. It is a no-op while
// offline, signed out or before the state is loaded.
func (t *Tracker) SyncNow(ctx context.Context) error {
	user, ok := t.syncUser()
	if !ok {
		return nil
	}
	t.mu.Lock()
	if !t.phases.hydrated(allCategories...) {
		t.mu.Unlock()
		return nil
	}
	agg := t.aggregateLocked()
	t.mu.Unlock()

	t.begin()
	defer t.end()
	return t.push(ctx, agg, user.ID)
}

// Refresh pulls the remote state and merges it over the local one.
func (t *Tracker) Refresh(ctx context.Context) error {
	user, ok := t.syncUser()
	if !ok || t.Phase() != Hydrated {
		return nil
	}

	t.begin()
	agg, err := t.remote.Pull(ctx, user.ID)
	t.end()
	t.record(func(st *SyncStatus, at time.Time) { st.LastPull = &at }, err)
	if err != nil {
		config.Logger.WithError(err).WithField("user_id", user.ID).Warn("Pull failed, local state kept")
		return err
	}
	if err := t.ApplyRemote(ctx, agg); err != nil {
		return err
	}
	if !t.pendingDeletions().Empty() {
		return t.SyncNow(ctx)
	}
	return nil
}

// ApplyRemote merges a pulled aggregate over the local state key by key.
// Local entries the remote does not know about are kept, and remote entries
// deleted locally but not yet pushed are skipped. The result is committed
// locally but not pushed back.
func (t *Tracker) ApplyRemote(ctx context.Context, agg types.Aggregate) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	deleted := t.pendingDeletions()
	next := t.cur.clone()
	mergeTasks(&next.defaults, agg.DefaultTasks, true, deleted)
	mergeTasks(&next.custom, agg.CustomTasks, false, deleted)
	for task, months := range agg.Data {
		for mk, days := range months {
			for day, status := range days {
				if deleted.HasDay(task, mk+"-"+strconv.Itoa(day)) {
					continue
				}
				next.data.Set(task, mk, day, status)
			}
		}
	}
	for k, v := range agg.Comments {
		if deleted.HasComment(k) {
			continue
		}
		next.comments[k] = v
	}
	for k, v := range agg.Notes {
		next.notes[k] = v
	}
	unknown, err := next.settings.Apply(agg.Settings)
	if err != nil {
		return err
	}
	if len(unknown) > 0 {
		config.Logger.WithField("keys", unknown).Debug("Ignoring unknown remote settings")
	}
	next.ensureSlots()

	t.cur = next
	t.persistLocked(ctx, allCategories...)
	config.Logger.WithFields(logrus.Fields{
		"tasks":    agg.AllTasks().Len(),
		"comments": len(agg.Comments),
	}).Info("Remote state applied")
	return nil
}

// mergeTasks overwrites matching keys with remote values. Notes and the
// hidden flag are local-only and survive the merge.
func mergeTasks(dst *types.TaskSet, remote types.TaskSet, isDefault bool, deleted types.Deletions) {
	for _, task := range remote.Tasks() {
		if deleted.HasTask(task.Key) {
			continue
		}
		if local, ok := dst.Get(task.Key); ok {
			task.Notes = local.Notes
			task.Hidden = local.Hidden
		}
		task.IsDefault = isDefault
		dst.Put(task)
	}
}

func (t *Tracker) onAuthChange(user session.User, ok bool) {
	if !ok {
		config.Logger.Info("Signed out, sync paused")
		return
	}
	config.Logger.WithField("user_id", user.ID).Info("Signed in, pulling remote state")
	t.dispatch(func() {
		if err := t.Refresh(context.Background()); err != nil {
			config.Logger.WithError(err).Warn("Refresh after sign-in failed")
		}
	})
}

func (t *Tracker) onConnectivityChange(online bool) {
	if !online {
		return
	}
	t.dispatch(func() {
		if err := t.SyncNow(context.Background()); err != nil {
			config.Logger.WithError(err).Warn("Push after reconnect failed")
		}
	})
}

func (t *Tracker) begin() {
	t.statusMu.Lock()
	t.status.InFlight++
	t.statusMu.Unlock()
}

func (t *Tracker) end() {
	t.statusMu.Lock()
	t.status.InFlight--
	t.statusMu.Unlock()
}

func (t *Tracker) record(mark func(*SyncStatus, time.Time), err error) {
	t.statusMu.Lock()
	defer t.statusMu.Unlock()
	if err != nil {
		t.status.LastError = err.Error()
		return
	}
	mark(&t.status, t.now())
	t.status.LastError = ""
}
