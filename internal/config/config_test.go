package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpiry(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"1d", 24 * time.Hour},
		{"7d", 7 * 24 * time.Hour},
		{"12h", 12 * time.Hour},
		{"90m", 90 * time.Minute},
		{"3600", time.Hour},
	}
	for _, tc := range cases {
		got, err := ParseExpiry(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"", "0", "-5", "xd", "soon", "-1h"} {
		_, err := ParseExpiry(bad)
		assert.Error(t, err, bad)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017/agency")
	t.Setenv("MONGODB_DB", "")
	t.Setenv("JWT_SECRET", "change-me")
	t.Setenv("JWT_EXPIRES_IN", "1d")
	t.Setenv("UPLOAD_DRIVER", "Local")
	t.Setenv("PORT", "5000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "agency", cfg.MongoDB)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, UploadDriverLocal, cfg.UploadDriver)
	assert.Equal(t, int64(5*1024*1024), cfg.UploadMaxBytes)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.True(t, cfg.InsecureSecret())
	assert.False(t, cfg.IsProduction())
}

func TestLoadRejectsS3WithoutBucket(t *testing.T) {
	t.Setenv("UPLOAD_DRIVER", "s3")
	t.Setenv("S3_BUCKET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestMongoDBFromURI(t *testing.T) {
	assert.Equal(t, "gbh", mongoDBFromURI("mongodb://localhost:27017/gbh"))
	assert.Equal(t, "first", mongoDBFromURI("mongodb://localhost/first/second"))
	assert.Equal(t, "", mongoDBFromURI("mongodb://localhost:27017"))
}

func TestLoadClientDefaults(t *testing.T) {
	for _, key := range []string{"LAUNCHPAD_API_URL", "LAUNCHPAD_API_TIMEOUT"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := LoadClient()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", cfg.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
}

func TestLoadClientTrimsBaseURL(t *testing.T) {
	t.Setenv("LAUNCHPAD_API_URL", " https://api.agency.test/ ")
	t.Setenv("LAUNCHPAD_API_TIMEOUT", "3s")

	cfg, err := LoadClient()
	require.NoError(t, err)
	assert.Equal(t, "https://api.agency.test", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
}
