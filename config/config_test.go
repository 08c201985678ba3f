package config_test

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cverooster/cverooster-client/api"
	"github.com/cverooster/cverooster-client/config"
	"github.com/cverooster/cverooster-client/cve"
)

func TestLoad(t *testing.T) {
	cfg, err := config.Load(afero.NewOsFs(), "testdata/config.yaml")
	require.NoError(t, err)

	assert.Equal(t, config.Config{
		BaseURL:        "https://cverooster.example.com/",
		Locale:         "en-US",
		Timezone:       "UTC",
		TimeoutSeconds: 30,
		SessionID:      "abc123",
		CSRFToken:      "tok456",
		ExportDir:      "/var/lib/cverooster/export",
		Labels: []cve.Label{
			{ID: "1", Code: "todo", Name: "To do"},
			{ID: "3", Code: "done", Name: "Done"},
		},
		Keywords: []string{"openssl", "kernel"},
		Debug:    true,
	}, cfg)

	locale, err := cfg.ViewLocale()
	require.NoError(t, err)
	assert.Equal(t, "en", locale.Lang())
	assert.Equal(t, time.UTC, locale.Location)

	opts, err := cfg.ClientOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 4)
}

func TestLoad_Defaults(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{name: "no path", path: ""},
		{name: "missing file", path: "testdata/not_found.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Load(afero.NewOsFs(), tt.path)
			require.NoError(t, err)
			assert.Equal(t, config.Default(), cfg)
		})
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("CVEROOSTER_BASE_URL", "http://127.0.0.1:9000/")
	t.Setenv("CVEROOSTER_SESSION_ID", "env-session")
	t.Setenv("CVEROOSTER_CSRF_TOKEN", "env-token")
	t.Setenv("CVEROOSTER_ACCESS_TOKEN", "env-access")
	t.Setenv("CVEROOSTER_DEBUG", "false")

	cfg, err := config.Load(afero.NewOsFs(), "testdata/config.yaml")
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9000/", cfg.BaseURL)
	assert.Equal(t, "env-session", cfg.SessionID)
	assert.Equal(t, "env-token", cfg.CSRFToken)
	assert.Equal(t, "env-access", cfg.AccessToken)
	assert.False(t, cfg.Debug)
}

func TestLoad_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "broken.yaml", []byte("base_url: [\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, "negative.yaml", []byte("timeout_seconds: -1\n"), 0644))

	tests := []struct {
		name    string
		fs      afero.Fs
		path    string
		wantErr string
	}{
		{name: "broken yaml", fs: fs, path: "broken.yaml", wantErr: "unable to parse yaml"},
		{name: "negative timeout", fs: fs, path: "negative.yaml", wantErr: "timeout_seconds must not be negative"},
		{name: "unknown label", fs: afero.NewOsFs(), path: "testdata/bad_label.yaml", wantErr: "labels"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(tt.fs, tt.path)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestConfig_Credentials(t *testing.T) {
	cfg := config.Config{SessionID: "s", CSRFToken: "c"}
	assert.Equal(t, api.StaticCredentials{SessionID: "s", Token: "c"}, cfg.Credentials())

	cfg.AccessToken = "a"
	creds := cfg.Credentials()
	authz, ok := creds.(api.Authorizer)
	require.True(t, ok)
	got, err := authz.Authorization()
	require.NoError(t, err)
	assert.Equal(t, "Bearer a", got)

	token, err := creds.CSRFToken()
	require.NoError(t, err)
	assert.Equal(t, "c", token)
	assert.Len(t, creds.Cookies(), 2)
}
