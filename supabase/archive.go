package supabase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"clementus360/daily-tracker/types"
)

// Archive stores export documents in a Supabase Storage bucket under
// "{userID}/{name}".
type Archive struct {
	client ClientSource
	bucket string
}

func NewArchive(source ClientSource, bucket string) *Archive {
	return &Archive{client: source, bucket: bucket}
}

func (a *Archive) Upload(ctx context.Context, userID, name string, document []byte) error {
	object, err := objectPath(userID, name)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	client, err := a.client()
	if err != nil {
		return err
	}
	if _, err := client.Storage.UploadFile(a.bucket, object, bytes.NewReader(document)); err != nil {
		return fmt.Errorf("failed to upload %s: %w", name, errors.Join(types.ErrRemote, err))
	}
	return nil
}

func (a *Archive) Download(ctx context.Context, userID, name string) ([]byte, error) {
	object, err := objectPath(userID, name)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	client, err := a.client()
	if err != nil {
		return nil, err
	}
	b, err := client.Storage.DownloadFile(a.bucket, object)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", name, errors.Join(types.ErrRemote, err))
	}
	return b, nil
}

// objectPath keeps every object inside the user's own folder.
func objectPath(userID, name string) (string, error) {
	if userID == "" {
		return "", types.ErrNotAuthenticated
	}
	if name == "" || name == "." || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", fmt.Errorf("archive name %q: %w", name, types.ErrValidation)
	}
	return path.Join(userID, name), nil
}
