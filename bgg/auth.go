package bgg

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"os"
)

// Session cookies whose presence confirms a login actually took.
var sessionCookieNames = []string{"bggusername", "SessionID"}

// AuthContext carries the two independent authentication inputs: a bearer
// token (identification and rate-limit allowance) and username/password
// credentials (private-field access via session cookies).
type AuthContext struct {
	Token    string
	Username string
	Password string
}

// HasToken reports whether a bearer token is configured.
func (a AuthContext) HasToken() bool {
	return a.Token != ""
}

// HasCredentials reports whether a username/password pair is configured.
func (a AuthContext) HasCredentials() bool {
	return a.Username != "" && a.Password != ""
}

// AuthFromEnv builds an AuthContext from the BGG_API_KEY, BGG_USERNAME and
// BGG_PASSWORD environment variables.
func AuthFromEnv() AuthContext {
	return AuthContext{
		Token:    os.Getenv("BGG_API_KEY"),
		Username: os.Getenv("BGG_USERNAME"),
		Password: os.Getenv("BGG_PASSWORD"),
	}
}

type loginPayload struct {
	Credentials loginCredentials `json:"credentials"`
}

type loginCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// login posts credentials to the login endpoint and records whether the
// session received its cookies. A 2xx status without session cookies is a
// soft failure: logged, not returned as an error.
func (c *Client) login(ctx context.Context) error {
	payload, err := json.Marshal(loginPayload{
		Credentials: loginCredentials{
			Username: c.auth.Username,
			Password: c.auth.Password,
		},
	})
	if err != nil {
		return newAuthError("failed to encode credentials", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.loginURL, bytes.NewReader(payload))
	if err != nil {
		return newAuthError("failed to create login request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return newAuthError("login request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return newAuthError("login rejected", newNetworkError("unexpected status", resp.StatusCode, nil))
	}

	if !c.hasSessionCookies() {
		c.logger.Warn("login succeeded but no session cookies received; private info disabled",
			"status", resp.StatusCode)
		return nil
	}

	c.authenticated = true
	c.logger.Info("logged in; private info access enabled", "username", c.auth.Username)
	return nil
}

// hasSessionCookies checks the shared cookie jar for the known session
// cookie names.
func (c *Client) hasSessionCookies() bool {
	if c.httpClient.Jar == nil {
		return false
	}
	u, err := url.Parse(c.loginURL)
	if err != nil {
		return false
	}
	for _, cookie := range c.httpClient.Jar.Cookies(u) {
		for _, name := range sessionCookieNames {
			if cookie.Name == name {
				return true
			}
		}
	}
	return false
}
