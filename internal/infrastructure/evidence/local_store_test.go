package evidence

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jhoicas/suministros-api/internal/application/ports"
	"github.com/jhoicas/suministros-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLocalStore_RedimensionaYGuarda(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir, 100, "/uploads/")

	ref, err := s.Store(context.Background(), ports.Upload{Filename: "recibo.png", Data: pngBytes(t, 400, 200)})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "/uploads/"))
	assert.True(t, strings.HasSuffix(ref, ".jpg"))

	raw, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(ref, "/uploads/")))
	require.NoError(t, err)
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}

func TestLocalStore_ConservaImagenesPequenas(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir, 1000, "/uploads")

	ref, err := s.Store(context.Background(), ports.Upload{Data: pngBytes(t, 40, 30)})
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(ref, "/uploads/")))
	require.NoError(t, err)
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
}

func TestLocalStore_RechazaNoImagen(t *testing.T) {
	s := NewLocalStore(t.TempDir(), 100, "/uploads")

	_, err := s.Store(context.Background(), ports.Upload{Data: []byte("%PDF-1.7 no es imagen")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
