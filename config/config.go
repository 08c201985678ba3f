// Package config loads the client settings from a YAML file, with
// credentials optionally taken from the environment.
package config

import (
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/oauth2"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"

	"github.com/cverooster/cverooster-client/api"
	"github.com/cverooster/cverooster-client/cve"
	"github.com/cverooster/cverooster-client/utils"
	"github.com/cverooster/cverooster-client/viewmodel"
)

const (
	envBaseURL     = "CVEROOSTER_BASE_URL"
	envSessionID   = "CVEROOSTER_SESSION_ID"
	envCSRFToken   = "CVEROOSTER_CSRF_TOKEN"
	envAccessToken = "CVEROOSTER_ACCESS_TOKEN"
	envDebug       = "CVEROOSTER_DEBUG"

	defaultBaseURL  = "http://localhost:8000/"
	defaultLocale   = "ja"
	defaultTimezone = "Asia/Tokyo"
)

type Config struct {
	BaseURL        string      `yaml:"base_url"`
	Locale         string      `yaml:"locale"`
	Timezone       string      `yaml:"timezone"`
	TimeoutSeconds int         `yaml:"timeout_seconds"`
	SessionID      string      `yaml:"session_id"`
	CSRFToken      string      `yaml:"csrf_token"`
	AccessToken    string      `yaml:"access_token"`
	ExportDir      string      `yaml:"export_dir"`
	Labels         []cve.Label `yaml:"labels"`
	Keywords       []string    `yaml:"keywords"`
	Debug          bool        `yaml:"debug"`
}

func Default() Config {
	return Config{
		BaseURL:   defaultBaseURL,
		Locale:    defaultLocale,
		Timezone:  defaultTimezone,
		ExportDir: utils.ExportDir(),
		Labels:    cve.DefaultLabels,
	}
}

// Load reads path over the defaults and then applies the environment. An
// empty path or a missing file leaves the defaults in place.
func Load(appFs afero.Fs, path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := afero.ReadFile(appFs, path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return Config{}, xerrors.Errorf("failed to read %s: %w", path, err)
		default:
			if err = yaml.Unmarshal(b, &cfg); err != nil {
				return Config{}, xerrors.Errorf("unable to parse yaml %s: %w", path, err)
			}
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, xerrors.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.BaseURL = utils.LookupEnv(envBaseURL, c.BaseURL)
	c.SessionID = utils.LookupEnv(envSessionID, c.SessionID)
	c.CSRFToken = utils.LookupEnv(envCSRFToken, c.CSRFToken)
	c.AccessToken = utils.LookupEnv(envAccessToken, c.AccessToken)
	if v := utils.LookupEnv(envDebug, ""); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return xerrors.Errorf("%s: %w", envDebug, err)
		}
		c.Debug = debug
	}
	return nil
}

func (c Config) validate() error {
	if _, err := url.Parse(c.BaseURL); err != nil {
		return xerrors.Errorf("base_url: %w", err)
	}
	if c.TimeoutSeconds < 0 {
		return xerrors.Errorf("timeout_seconds must not be negative: %d", c.TimeoutSeconds)
	}
	for _, l := range c.Labels {
		if err := cve.ValidateLabel(l.ID); err != nil {
			return xerrors.Errorf("labels: %w", err)
		}
	}
	return nil
}

// ViewLocale resolves the configured language and time zone.
func (c Config) ViewLocale() (viewmodel.Locale, error) {
	locale, err := viewmodel.ParseLocale(c.Locale, c.Timezone)
	if err != nil {
		return viewmodel.Locale{}, xerrors.Errorf("invalid locale %q/%q: %w", c.Locale, c.Timezone, err)
	}
	return locale, nil
}

// Credentials prefers a bearer token when one is configured; the session
// cookie and CSRF token are sent in either case.
func (c Config) Credentials() api.CredentialProvider {
	static := api.StaticCredentials{SessionID: c.SessionID, Token: c.CSRFToken}
	if c.AccessToken == "" {
		return static
	}
	return api.OAuth2Credentials{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.AccessToken}),
		Base:   static,
	}
}

func (c Config) ClientOptions() ([]api.Option, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, xerrors.Errorf("failed to parse base_url: %w", err)
	}
	return []api.Option{
		api.WithBaseURL(u),
		api.WithCredentials(c.Credentials()),
		api.WithTimeout(time.Duration(c.TimeoutSeconds) * time.Second),
		api.WithDebug(c.Debug),
	}, nil
}
