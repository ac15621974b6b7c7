package download

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/veriscan/veriscan-detection-service/internal/domain/entity"
)

func TestClassifyURL(t *testing.T) {
	tests := []struct {
		url  string
		want entity.URLKind
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", entity.URLKindVideoPlatform},
		{"https://youtu.be/dQw4w9WgXcQ", entity.URLKindVideoPlatform},
		{"https://vm.tiktok.com/abc123", entity.URLKindVideoPlatform},
		{"https://x.com/user/status/1", entity.URLKindVideoPlatform},
		{"https://example.com/clip.mp4", entity.URLKindDirectVideo},
		{"https://example.com/clip.WEBM", entity.URLKindDirectVideo},
		{"https://example.com/report.pdf", entity.URLKindDocument},
		{"https://example.com/notes.txt", entity.URLKindDocument},
		{"https://example.com/page", entity.URLKindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			kind, err := ClassifyURL(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestClassifyURLRejectsInvalid(t *testing.T) {
	for _, raw := range []string{"", "not a url", "ftp://example.com/x.mp4", "https://"} {
		_, err := ClassifyURL(raw)
		assert.True(t, errors.Is(err, entity.ErrInvalidURL), "url %q", raw)
	}
}

func TestClassifyURLDoesNotMatchPlatformInPath(t *testing.T) {
	// A hostile host embedding a platform name in the path or as a prefix
	// must not be treated as that platform.
	kind, err := ClassifyURL("https://evil.example.com/youtube.com/video")
	require.NoError(t, err)
	assert.Equal(t, entity.URLKindUnknown, kind)

	kind, err = ClassifyURL("https://notyoutube.community/watch")
	require.NoError(t, err)
	assert.Equal(t, entity.URLKindUnknown, kind)
}

func TestDownloadDirect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("fake video bytes"))
	}))
	defer srv.Close()

	d := NewDownloader("yt-dlp", 100, zap.NewNop())

	info, err := d.Download(context.Background(), srv.URL+"/sample.mp4", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, entity.URLKindDirectVideo, info.Kind)
	assert.FileExists(t, info.Path)
	assert.True(t, strings.HasSuffix(info.Filename, ".mp4"))
}

func TestDownloadDirectEnforcesSizeCap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 3*1024*1024))
	}))
	defer srv.Close()

	// 1MB cap against a 3MB body.
	d := NewDownloader("yt-dlp", 1, zap.NewNop())

	_, err := d.Download(context.Background(), srv.URL+"/big.mp4", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit")
}

func TestDownloadDirectServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	d := NewDownloader("yt-dlp", 100, zap.NewNop())

	_, err := d.Download(context.Background(), srv.URL+"/missing.mp4", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
