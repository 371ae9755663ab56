package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestResolveDefaults(t *testing.T) {
	tests := []struct {
		name    string
		raw     Raw
		want    Resolved
		wantErr bool
	}{
		{
			name: "empty uses http2 defaults",
			raw:  Raw{},
			want: Resolved{MinBundles: 1, MinBundleSize: 20000, MaxParallelRequests: 25},
		},
		{
			name: "http1 profile",
			raw:  Raw{HTTP: intPtr(1)},
			want: Resolved{MinBundles: 1, MinBundleSize: 30000, MaxParallelRequests: 6},
		},
		{
			name: "http2 profile",
			raw:  Raw{HTTP: intPtr(2)},
			want: Resolved{MinBundles: 1, MinBundleSize: 20000, MaxParallelRequests: 25},
		},
		{
			name: "overrides win over profile",
			raw:  Raw{HTTP: intPtr(1), MinBundleSize: intPtr(1234), MaxParallelRequests: intPtr(3)},
			want: Resolved{MinBundles: 1, MinBundleSize: 1234, MaxParallelRequests: 3},
		},
		{
			name: "minBundles override",
			raw:  Raw{MinBundles: intPtr(4)},
			want: Resolved{MinBundles: 4, MinBundleSize: 20000, MaxParallelRequests: 25},
		},
		{
			name:    "invalid http version",
			raw:     Raw{HTTP: intPtr(3)},
			wantErr: true,
		},
		{
			name:    "negative minBundleSize",
			raw:     Raw{MinBundleSize: intPtr(-1)},
			wantErr: true,
		},
		{
			name:    "zero maxParallelRequests",
			raw:     Raw{MaxParallelRequests: intPtr(0)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadMissingPathFallsBackToDefaults(t *testing.T) {
	t.Setenv("PARCEL_CONFIG", "")

	got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), got)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "parcelrc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http: 1\nminBundleSize: 5000\n"), 0644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Resolved{MinBundles: 1, MinBundleSize: 5000, MaxParallelRequests: 6}, got)
}

func TestLoadFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "parcelrc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("maxParallelRequests: 2\n"), 0644))
	t.Setenv("PARCEL_CONFIG", path)

	got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2, got.MaxParallelRequests)
}

func TestLoadRejectsUnreadableFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
