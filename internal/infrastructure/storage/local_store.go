package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhoicas/tienda-api/internal/application/upload"
)

var _ upload.FileStore = (*LocalStore)(nil)

// LocalStore guarda archivos en un directorio local servido como estático.
type LocalStore struct {
	dir string
}

// NewLocalStore crea el directorio si no existe.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de uploads: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir directorio base.
func (s *LocalStore) Dir() string { return s.dir }

// Save escribe el archivo. name debe venir ya saneado (sin separadores).
func (s *LocalStore) Save(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name != filepath.Base(name) {
		return fmt.Errorf("nombre de archivo inválido %q", name)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("guardar %s: %w", name, err)
	}
	return nil
}
