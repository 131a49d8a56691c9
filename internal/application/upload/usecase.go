package upload

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/jhoicas/tienda-api/internal/domain"
)

// PublicPrefix ruta estática bajo la que se sirven los archivos guardados.
const PublicPrefix = "/uploads"

// FileStore puerto de almacenamiento de archivos (implementado en infrastructure/storage).
type FileStore interface {
	Save(ctx context.Context, name string, data []byte) error
}

// File archivo recibido en la petición.
type File struct {
	Filename    string
	ContentType string // declarado por el cliente
	Size        int64
	Content     io.Reader
}

// Stored resultado de guardar un archivo.
type Stored struct {
	Filename string
	URL      string
}

// UseCase valida y guarda imágenes de producto.
type UseCase struct {
	store    FileStore
	maxBytes int64
	now      func() time.Time
}

// NewUseCase construye el caso de uso con el límite por archivo en bytes.
func NewUseCase(store FileStore, maxBytes int64) *UseCase {
	return &UseCase{store: store, maxBytes: maxBytes, now: time.Now}
}

// Save valida tipo y tamaño y guarda el archivo con un nombre único.
func (uc *UseCase) Save(ctx context.Context, f File) (*Stored, error) {
	p, err := uc.prepare(f)
	if err != nil {
		return nil, err
	}
	if err := uc.store.Save(ctx, p.name, p.data); err != nil {
		return nil, err
	}
	return &Stored{Filename: p.name, URL: PublicPrefix + "/" + p.name}, nil
}

// SaveMany valida todos los archivos antes de escribir; si uno es inválido no se guarda ninguno.
func (uc *UseCase) SaveMany(ctx context.Context, files []File) ([]Stored, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no se recibieron archivos", domain.ErrInvalidInput)
	}
	batch := make([]prepared, 0, len(files))
	for _, f := range files {
		p, err := uc.prepare(f)
		if err != nil {
			return nil, err
		}
		batch = append(batch, p)
	}
	out := make([]Stored, 0, len(batch))
	for _, p := range batch {
		if err := uc.store.Save(ctx, p.name, p.data); err != nil {
			return nil, err
		}
		out = append(out, Stored{Filename: p.name, URL: PublicPrefix + "/" + p.name})
	}
	return out, nil
}

type prepared struct {
	name string
	data []byte
}

// prepare lee y valida el archivo; la extensión final sale del contenido detectado.
func (uc *UseCase) prepare(f File) (prepared, error) {
	if f.Content == nil {
		return prepared{}, fmt.Errorf("%w: no se recibió archivo", domain.ErrInvalidInput)
	}
	if f.Size > uc.maxBytes {
		return prepared{}, uc.tooLarge()
	}
	if !strings.HasPrefix(strings.ToLower(f.ContentType), "image/") {
		return prepared{}, fmt.Errorf("%w: solo se permiten imágenes", domain.ErrInvalidInput)
	}
	data, err := io.ReadAll(io.LimitReader(f.Content, uc.maxBytes+1))
	if err != nil {
		return prepared{}, err
	}
	if int64(len(data)) > uc.maxBytes {
		return prepared{}, uc.tooLarge()
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return prepared{}, fmt.Errorf("%w: el contenido no es una imagen (%s)", domain.ErrInvalidInput, mt.String())
	}
	name := fmt.Sprintf("%d-%d-%s", uc.now().UnixMilli(), rand.Int64N(1e9), SafeName(f.Filename, mt.Extension()))
	return prepared{name: name, data: data}, nil
}

func (uc *UseCase) tooLarge() error {
	return fmt.Errorf("%w: el archivo supera %dMB", domain.ErrInvalidInput, uc.maxBytes/(1024*1024))
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SafeName deja solo la base del nombre con caracteres seguros y le pone ext;
// la extensión enviada por el cliente se descarta.
func SafeName(name, ext string) string {
	base := filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.Trim(unsafeChars.ReplaceAllString(base, "_"), "._")
	if base == "" {
		base = "image"
	}
	return base + ext
}
