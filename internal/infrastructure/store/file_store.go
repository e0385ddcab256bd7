package store

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"folio-backend/internal/domain"
)

// FileStore keeps the portfolio in a single JSON file on disk, the server-side
// analog of a browser localStorage slot. A missing file loads as an empty
// portfolio.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (f *FileStore) Load(ctx context.Context) ([]domain.Holding, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return Decode(data)
}

func (f *FileStore) Save(ctx context.Context, holdings []domain.Holding) error {
	data, err := Encode(holdings)
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, data, 0o644)
}
