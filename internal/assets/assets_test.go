package assets

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	pngHeader  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")
	gifHeader  = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\xff\xff\xff\x00\x00\x00!\xf9\x04\x01\x00\x00\x00\x00,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;")
	jpegHeader = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00\xff\xd9")
	webpHeader = []byte("RIFF\x1a\x00\x00\x00WEBPVP8L\x0d\x00\x00\x00/\x00\x00\x00\x10\x07\x10\x11\x11\x88\x88\xfe\x07\x00")
)

func clock() func() time.Time {
	return func() time.Time { return time.UnixMilli(1738324800000) }
}

func TestSaveAcceptsAllowedImages(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		data []byte
		mime string
		ext  string
	}{
		{"png", pngHeader, "image/png", ".png"},
		{"gif", gifHeader, "image/gif", ".gif"},
		{"jpeg", jpegHeader, "image/jpeg", ".jpg"},
		{"webp", webpHeader, "image/webp", ".webp"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := filepath.Join(t.TempDir(), "uploads")
			store := NewStore(dir, WithClock(clock()))

			res, err := store.Save(context.Background(), "photo.bin", bytes.NewReader(tc.data))
			require.NoError(t, err)
			require.Equal(t, tc.mime, res.MIME)
			require.True(t, strings.HasSuffix(res.FileName, tc.ext))
			require.Regexp(t, `^/uploads/1738324800000_[a-z0-9]{9}\.`, res.URL)
			require.EqualValues(t, len(tc.data), res.Size)

			stored, err := os.ReadFile(res.Path)
			require.NoError(t, err)
			require.Equal(t, tc.data, stored)

			resolved, ok := store.Resolve(res.URL)
			require.True(t, ok)
			require.Equal(t, res.Path, resolved)
		})
	}
}

func TestSaveRejectsWrongType(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "uploads")
	_, err := NewStore(dir).Save(context.Background(), "photo.png", strings.NewReader("definitely not an image"))
	require.True(t, IsKind(err, KindWrongType))
	require.Contains(t, err.Error(), "text/plain")

	// nothing is written for refused uploads
	_, statErr := os.Stat(dir)
	require.True(t, os.IsNotExist(statErr))
}

func TestSaveRejectsOversizedFiles(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir(), WithMaxBytes(int64(len(pngHeader))))

	_, err := store.Save(context.Background(), "ok.png", bytes.NewReader(pngHeader))
	require.NoError(t, err)

	big := append(append([]byte{}, pngHeader...), 0)
	_, err = store.Save(context.Background(), "big.png", bytes.NewReader(big))
	require.True(t, IsKind(err, KindTooLarge))
}

func TestDefaultLimitMessage(t *testing.T) {
	t.Parallel()

	err := &UploadError{Kind: KindTooLarge, Detail: humanSize(DefaultMaxBytes)}
	require.Equal(t, "upload error: file too large; maximum size is 5.0 MiB", err.Error())
}

func TestSaveRequiresContent(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	_, err := store.Save(context.Background(), "empty.png", bytes.NewReader(nil))
	require.True(t, IsKind(err, KindNoFile))

	_, err = store.Save(context.Background(), "none", nil)
	require.True(t, IsKind(err, KindNoFile))

	_, err = store.SaveFile(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	require.True(t, IsKind(err, KindNoFile))
}

func TestSaveFile(t *testing.T) {
	t.Parallel()

	src := filepath.Join(t.TempDir(), "logo.gif")
	require.NoError(t, os.WriteFile(src, gifHeader, 0o644))

	res, err := NewStore(t.TempDir()).SaveFile(context.Background(), src)
	require.NoError(t, err)
	require.Equal(t, "image/gif", res.MIME)
}

func TestResolveRejectsTraversal(t *testing.T) {
	t.Parallel()

	store := NewStore("/srv/uploads")
	for _, url := range []string{"/elsewhere/a.png", "/uploads/", "/uploads/../etc/passwd", "/uploads/a/b.png"} {
		_, ok := store.Resolve(url)
		require.False(t, ok, url)
	}
}

func TestSaveCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewStore(t.TempDir()).Save(ctx, "a.png", bytes.NewReader(pngHeader))
	require.True(t, IsKind(err, KindFailed))
	require.ErrorIs(t, err, context.Canceled)
}
