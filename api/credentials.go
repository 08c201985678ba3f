package api

import (
	"net/http"
	"net/url"

	"golang.org/x/oauth2"
	"golang.org/x/xerrors"
)

const (
	csrfCookieName    = "csrftoken"
	sessionCookieName = "sessionid"
)

// CredentialProvider supplies what a logged-in browser would send: the
// session cookies and the CSRF token mutating requests echo in a header.
type CredentialProvider interface {
	CSRFToken() (string, error)
	Cookies() []*http.Cookie
}

// Authorizer is implemented by providers that authenticate with an
// Authorization header instead of, or in addition to, cookies.
type Authorizer interface {
	Authorization() (string, error)
}

// CookieCredentials reads the cookies a jar holds for the API origin.
type CookieCredentials struct {
	Jar http.CookieJar
	URL *url.URL
}

func (c CookieCredentials) Cookies() []*http.Cookie {
	return c.Jar.Cookies(c.URL)
}

func (c CookieCredentials) CSRFToken() (string, error) {
	for _, cookie := range c.Cookies() {
		if cookie.Name == csrfCookieName {
			return cookie.Value, nil
		}
	}
	return "", xerrors.Errorf("%s cookie not found for %s", csrfCookieName, c.URL)
}

// StaticCredentials uses a session ID and CSRF token copied from a browser.
type StaticCredentials struct {
	SessionID string
	Token     string
}

func (c StaticCredentials) Cookies() []*http.Cookie {
	var cookies []*http.Cookie
	if c.SessionID != "" {
		cookies = append(cookies, &http.Cookie{Name: sessionCookieName, Value: c.SessionID})
	}
	if c.Token != "" {
		cookies = append(cookies, &http.Cookie{Name: csrfCookieName, Value: c.Token})
	}
	return cookies
}

func (c StaticCredentials) CSRFToken() (string, error) {
	if c.Token == "" {
		return "", xerrors.New("CSRF token is not set")
	}
	return c.Token, nil
}

// OAuth2Credentials authenticates with a bearer token. The CSRF token and
// cookies of Base, if any, are still sent.
type OAuth2Credentials struct {
	Source oauth2.TokenSource
	Base   CredentialProvider
}

func (c OAuth2Credentials) Cookies() []*http.Cookie {
	if c.Base == nil {
		return nil
	}
	return c.Base.Cookies()
}

func (c OAuth2Credentials) CSRFToken() (string, error) {
	if c.Base == nil {
		return "", nil
	}
	return c.Base.CSRFToken()
}

func (c OAuth2Credentials) Authorization() (string, error) {
	token, err := c.Source.Token()
	if err != nil {
		return "", xerrors.Errorf("failed to get a token: %w", err)
	}
	return token.Type() + " " + token.AccessToken, nil
}
