package input

import (
	"context"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// UploadStore persists an accepted upload. The returned location is recorded
// as the descriptor's "tmp_name".
type UploadStore interface {
	Store(ctx context.Context, fh *multipart.FileHeader) (string, error)
}

// DirStore spools uploads into a local directory under random names.
type DirStore string

// Store copies the upload into the directory and returns the file path.
func (d DirStore) Store(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	in, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer in.Close()

	path := filepath.Join(string(d), "upload-"+uuid.NewString())
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return path, nil
}
