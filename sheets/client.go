// Package sheets provides a client for the Google Sheets v4 API, which backs
// the guest sheet used as the attendance datastore.
package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

const (
	defaultBaseURL  = "https://sheets.googleapis.com/v4/spreadsheets"
	defaultTokenURL = "https://oauth2.googleapis.com/token"

	scope     = "https://www.googleapis.com/auth/spreadsheets"
	grantType = "urn:ietf:params:oauth:grant-type:jwt-bearer"
)

// Client talks to the Sheets API. Every call authenticates fresh: a new JWT
// assertion is exchanged for a bearer token per request, nothing is cached
// across requests.
type Client struct {
	HTTP     *http.Client
	BaseURL  string
	TokenURL string
}

// New returns a client pointing at the real Google endpoints. Tests swap the
// URLs for an httptest server.
func New() *Client {
	return &Client{
		HTTP:     &http.Client{Timeout: 15 * time.Second},
		BaseURL:  defaultBaseURL,
		TokenURL: defaultTokenURL,
	}
}

// AccessToken signs a service-account assertion and exchanges it for a
// bearer token. Credentials are read from config at call time.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	email := viper.GetString("google.service_account_email")
	privateKey := viper.GetString("google.private_key")

	if email == "" || privateKey == "" {
		return "", errors.New("google service account credentials are missing")
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privateKey))
	if err != nil {
		return "", fmt.Errorf("failed to parse service account key, %w", err)
	}

	now := time.Now()
	assertion := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"iss":   email,
		"scope": scope,
		"aud":   c.TokenURL,
		"exp":   now.Add(time.Hour).Unix(),
		"iat":   now.Unix(),
	})

	signed, err := assertion.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("failed to sign assertion, %w", err)
	}

	form := url.Values{
		"grant_type": {grantType},
		"assertion":  {signed},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("token exchange failed, %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token exchange failed, status %s", resp.Status)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode token response, %w", err)
	}

	if body.AccessToken == "" {
		return "", errors.New("token exchange returned an empty token")
	}

	return body.AccessToken, nil
}

func sheetID() (string, error) {
	id := viper.GetString("google.sheet_id")
	if id == "" {
		return "", errors.New("google.sheet_id is missing")
	}
	return id, nil
}

func (c *Client) get(ctx context.Context, token, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sheets api returned status %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// Titles lists the worksheet titles in sheet order. The guest sheet can be
// renamed in the UI at any time, so titles are discovered and never hardcoded.
func (c *Client) Titles(ctx context.Context, token string) ([]string, error) {
	id, err := sheetID()
	if err != nil {
		return nil, err
	}

	var meta struct {
		Sheets []struct {
			Properties struct {
				Title string `json:"title"`
			} `json:"properties"`
		} `json:"sheets"`
	}

	if err := c.get(ctx, token, c.BaseURL+"/"+id, &meta); err != nil {
		return nil, fmt.Errorf("failed to fetch spreadsheet metadata, %w", err)
	}

	if len(meta.Sheets) == 0 {
		return nil, errors.New("spreadsheet has no worksheets")
	}

	titles := make([]string, 0, len(meta.Sheets))
	for _, s := range meta.Sheets {
		titles = append(titles, s.Properties.Title)
	}
	return titles, nil
}
