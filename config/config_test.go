package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "API_BASE_URL", "API_TIMEOUT", "API_SERVICE_SECRET", "LOG_LEVEL", "VIEWS_CONFIG"} {
		t.Setenv(k, "")
	}
	cfg := FromEnv()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://127.0.0.1:5000", cfg.APIBaseURL)
	assert.Equal(t, time.Duration(0), cfg.APITimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.ServiceSecret)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://survey.internal:5000/")
	t.Setenv("API_TIMEOUT", "3")
	t.Setenv("LOG_LEVEL", "DEBUG")
	cfg := FromEnv()
	assert.Equal(t, "http://survey.internal:5000", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.Equal(t, "debug", cfg.LogLevel)

	t.Setenv("API_TIMEOUT", "750ms")
	assert.Equal(t, 750*time.Millisecond, FromEnv().APITimeout)
	t.Setenv("API_TIMEOUT", "soon")
	assert.Equal(t, time.Duration(0), FromEnv().APITimeout)
}

func TestDefaultViews(t *testing.T) {
	v, err := LoadViews("")
	require.NoError(t, err)
	assert.Equal(t, "dashboard", v.Initial)
	require.Len(t, v.Sections, 4)

	data, ok := v.Section("data")
	require.True(t, ok)
	assert.True(t, data.Export)
	assert.Empty(t, data.Charts)

	charts, _ := v.Section("charts")
	assert.Len(t, charts.Charts, 5)
	assert.Contains(t, v.Programs, "Sistem Informasi")
}

func TestViewsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "views.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sections:\n  - name: data\n"), 0o600))

	v, err := LoadViews(path)
	require.NoError(t, err)
	assert.Empty(t, v.Initial)
	assert.False(t, v.Sections[0].Export)
}

func TestViewsRejected(t *testing.T) {
	cases := map[string]string{
		"no sections":     "initial: data\n",
		"unknown initial": "initial: settings\nsections:\n  - name: data\n",
		"duplicate":       "sections:\n  - name: data\n  - name: data\n",
		"bad yaml":        "sections: [\n",
	}
	for name, body := range cases {
		_, err := ParseViews([]byte(body))
		assert.Error(t, err, name)
	}
	_, err := LoadViews(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
