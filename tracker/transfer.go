package tracker

import (
	"context"
	"fmt"
	"time"

	"clementus360/daily-tracker/backup"
	"clementus360/daily-tracker/config"
	"clementus360/daily-tracker/session"
	"clementus360/daily-tracker/store"
	"clementus360/daily-tracker/types"

	"github.com/sirupsen/logrus"
)

// ExportFileName is the suggested file name for an export taken at now.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("daily-tracker-backup-%s.json", now.Format("2006-01-02"))
}

// Export encodes the full state as a versioned, pretty-printed document.
func (t *Tracker) Export() ([]byte, error) {
	t.mu.Lock()
	doc := t.exportDocumentLocked()
	t.mu.Unlock()
	return doc.Encode()
}

func (t *Tracker) exportDocumentLocked() types.Document {
	now := t.now()
	doc := t.cur.document(now)
	doc.Timestamp = 0
	doc.ExportDate = now.UTC().Format(types.ExportTimeLayout)
	doc.Version = types.ExportVersion
	return doc
}

// Import replaces the in-memory state with an export document and commits
// it. Nothing changes when the document fails to parse or validate.
func (t *Tracker) Import(ctx context.Context, b []byte) error {
	doc, err := types.ParseDocument(b)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.replaceLocked(ctx, t.cur.withDocument(doc))
	config.Logger.WithField("exportDate", doc.ExportDate).Info("Data imported")
	return nil
}

func (t *Tracker) Backups(ctx context.Context) ([]backup.Slot, error) {
	return t.backups.List(ctx)
}

// Restore replaces the state with backup slot n. A missing or corrupt slot
// leaves the state untouched.
func (t *Tracker) Restore(ctx context.Context, slot int) error {
	doc, err := t.backups.Load(ctx, slot)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.replaceLocked(ctx, t.cur.withDocument(doc))
	config.Logger.WithField("slot", slot).Info("Backup restored")
	return nil
}

// Archive saves an export document in the local archive.
func (t *Tracker) Archive(ctx context.Context) (store.ArchiveEntry, error) {
	if t.archiver == nil {
		return store.ArchiveEntry{}, fmt.Errorf("no local archive: %w", types.ErrNotFound)
	}
	now := t.now()
	b, err := t.Export()
	if err != nil {
		return store.ArchiveEntry{}, err
	}
	id, err := t.archiver.SaveArchive(ctx, b, now)
	if err != nil {
		return store.ArchiveEntry{}, err
	}
	config.Logger.WithFields(logrus.Fields{"id": id, "size": len(b)}).Info("State archived")
	return store.ArchiveEntry{ID: id, CreatedAt: now, Size: len(b)}, nil
}

func (t *Tracker) Archives(ctx context.Context) ([]store.ArchiveEntry, error) {
	if t.archiver == nil {
		return nil, nil
	}
	return t.archiver.ListArchives(ctx)
}

func (t *Tracker) RestoreArchive(ctx context.Context, id int64) error {
	if t.archiver == nil {
		return fmt.Errorf("no local archive: %w", types.ErrNotFound)
	}
	b, err := t.archiver.LoadArchive(ctx, id)
	if err != nil {
		return err
	}
	return t.Import(ctx, b)
}

// UploadExport stores an export in the signed-in user's cloud archive and
// returns its name.
func (t *Tracker) UploadExport(ctx context.Context) (string, error) {
	user, err := t.cloudUser()
	if err != nil {
		return "", err
	}
	b, err := t.Export()
	if err != nil {
		return "", err
	}
	name := ExportFileName(t.now())
	if err := t.cloud.Upload(ctx, user.ID, name, b); err != nil {
		return "", err
	}
	config.Logger.WithFields(logrus.Fields{"user_id": user.ID, "name": name}).Info("Export uploaded")
	return name, nil
}

// ImportCloud downloads a named export from the cloud archive and imports it.
func (t *Tracker) ImportCloud(ctx context.Context, name string) error {
	user, err := t.cloudUser()
	if err != nil {
		return err
	}
	b, err := t.cloud.Download(ctx, user.ID, name)
	if err != nil {
		return err
	}
	return t.Import(ctx, b)
}

func (t *Tracker) cloudUser() (session.User, error) {
	if t.cloud == nil {
		return session.User{}, fmt.Errorf("cloud archive not configured: %w", types.ErrRemote)
	}
	user, ok := t.identity.CurrentUser()
	if !ok {
		return session.User{}, types.ErrNotAuthenticated
	}
	if !t.network.IsOnline() {
		return session.User{}, fmt.Errorf("offline: %w", types.ErrRemote)
	}
	return user, nil
}
