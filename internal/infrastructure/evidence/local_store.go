package evidence

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/suministros-api/internal/application/ports"
	"github.com/jhoicas/suministros-api/internal/domain"
	"golang.org/x/image/draw"
)

const jpegQuality = 85

var _ ports.EvidenceStore = (*LocalStore)(nil)

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// LocalStore guarda evidencia fotográfica en disco, redimensionada y recodificada como JPEG.
type LocalStore struct {
	dir      string
	maxWidth int
	baseURL  string
}

// NewLocalStore construye el almacén. maxWidth <= 0 conserva el tamaño original.
func NewLocalStore(dir string, maxWidth int, baseURL string) *LocalStore {
	return &LocalStore{dir: dir, maxWidth: maxWidth, baseURL: strings.TrimRight(baseURL, "/")}
}

// Store valida el formato por contenido, normaliza la imagen y devuelve su URL pública.
func (s *LocalStore) Store(ctx context.Context, upload ports.Upload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if detected := http.DetectContentType(upload.Data); !allowedMIME[detected] {
		return "", fmt.Errorf("%w: formato de imagen no soportado (%s)", domain.ErrInvalidInput, detected)
	}
	img, _, err := image.Decode(bytes.NewReader(upload.Data))
	if err != nil {
		return "", fmt.Errorf("%w: imagen ilegible", domain.ErrInvalidInput)
	}
	img = downscale(img, s.maxWidth)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("evidence: codificar JPEG: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("evidence: crear directorio: %w", err)
	}
	name := uuid.New().String() + ".jpg"
	if err := os.WriteFile(filepath.Join(s.dir, name), buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("evidence: escribir archivo: %w", err)
	}
	return s.baseURL + "/" + name, nil
}

// downscale reduce el ancho a maxWidth conservando la proporción.
func downscale(img image.Image, maxWidth int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if maxWidth <= 0 || w <= maxWidth {
		return img
	}
	newH := int(float64(h) * float64(maxWidth) / float64(w))
	if newH < 1 {
		newH = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
