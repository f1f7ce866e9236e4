package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/propmanager/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testStorageConfig(endpoint string) *config.StorageConfig {
	return &config.StorageConfig{
		Provider:     "s3",
		Bucket:       "test-bucket",
		AccessKey:    "test-key",
		SecretKey:    "test-secret",
		Region:       "us-east-1",
		Endpoint:     endpoint,
		UsePathStyle: true,
	}
}

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.StorageConfig
		wantErr string
	}{
		{"nil config", nil, "configuration is required"},
		{"missing bucket", &config.StorageConfig{AccessKey: "k", SecretKey: "s"}, "bucket is required"},
		{"access key alone", &config.StorageConfig{Bucket: "b", AccessKey: "k"}, "must be set together"},
		{"secret key alone", &config.StorageConfig{Bucket: "b", SecretKey: "s"}, "must be set together"},
		{"bad scheme", &config.StorageConfig{Bucket: "b", Endpoint: "ftp://minio:21"}, "unsupported storage endpoint scheme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewS3ObjectStorage(tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("defaults", func(t *testing.T) {
		cfg := testStorageConfig("localhost:9000")
		cfg.Region = ""
		s, err := NewS3ObjectStorage(cfg)
		require.NoError(t, err)
		assert.Equal(t, "test-bucket", s.Bucket())
		assert.Equal(t, 15*time.Minute, s.expiry)
	})

	t.Run("default credential chain", func(t *testing.T) {
		_, err := NewS3ObjectStorage(&config.StorageConfig{Bucket: "b"})
		assert.NoError(t, err)
	})
}

func TestResolveEndpoint(t *testing.T) {
	tests := []struct {
		endpoint string
		useSSL   bool
		want     string
	}{
		{"", false, "http://localhost:9000"},
		{"minio:9000", false, "http://minio:9000"},
		{"minio:9000", true, "https://minio:9000"},
		{"https://s3.eu-west-1.amazonaws.com", false, "https://s3.eu-west-1.amazonaws.com"},
	}
	for _, tt := range tests {
		got, err := resolveEndpoint(tt.endpoint, tt.useSSL)
		require.NoError(t, err, tt.endpoint)
		assert.Equal(t, tt.want, got)
	}
}

func TestS3ObjectStorage_GenerateDownloadURL(t *testing.T) {
	s, err := NewS3ObjectStorage(testStorageConfig("http://localhost:9000"))
	require.NoError(t, err)

	url, expiresAt, err := s.GenerateDownloadURL(context.Background(), "reports/occupancy/a.xlsx", time.Hour)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:9000/test-bucket/reports/occupancy/a.xlsx?"))
	assert.Contains(t, url, "X-Amz-Expires=3600")
	assert.Contains(t, url, "response-content-disposition=attachment")
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	url, _, err = s.GenerateDownloadURL(context.Background(), "reports/x.xlsx", 0)
	require.NoError(t, err)
	assert.Contains(t, url, "X-Amz-Expires=900")

	_, _, err = s.GenerateDownloadURL(context.Background(), "", time.Hour)
	assert.Error(t, err)
}

// fakeS3 records PUT requests and answers HEAD/PUT bucket calls
type fakeS3 struct {
	mu       sync.Mutex
	objects  map[string][]byte
	buckets  map[string]bool
	lastType string
	lastDisp string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/")
	isBucket := !strings.Contains(path, "/")

	switch {
	case r.Method == http.MethodHead && isBucket:
		if f.buckets[path] {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	case r.Method == http.MethodPut && isBucket:
		f.buckets[path] = true
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[path] = body
		f.lastType = r.Header.Get("Content-Type")
		f.lastDisp = r.Header.Get("Content-Disposition")
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestS3ObjectStorage_UploadAndEnsureBucket(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}, buckets: map[string]bool{}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	s, err := NewS3ObjectStorage(testStorageConfig(srv.URL), WithLogger(zap.NewNop()))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.EnsureBucket(ctx))
	assert.True(t, fake.buckets["test-bucket"])
	require.NoError(t, s.EnsureBucket(ctx))

	require.NoError(t, s.Upload(ctx, "reports/revenue/r.xlsx", []byte("xlsx-bytes"), "application/octet-stream"))
	assert.Contains(t, string(fake.objects["test-bucket/reports/revenue/r.xlsx"]), "xlsx-bytes")
	assert.Equal(t, "application/octet-stream", fake.lastType)
	assert.Equal(t, `attachment; filename="r.xlsx"`, fake.lastDisp)

	assert.Error(t, s.Upload(ctx, "", []byte("x"), "text/plain"))
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	s, err := New(ctx, &config.StorageConfig{Provider: "stub"}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &StubObjectStorage{}, s)

	_, err = New(ctx, &config.StorageConfig{Provider: "ftp"}, zap.NewNop())
	assert.Error(t, err)
}
