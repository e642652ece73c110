package msgraph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/Tiliavir/dutyrep/internal/config"
)

// Scopes requested for calendar import. offline_access yields a refresh token.
var Scopes = []string{
	"https://graph.microsoft.com/Calendars.Read",
	"offline_access",
}

// endpoint returns the Microsoft identity platform v2 endpoints of a tenant.
func endpoint(tenantID string) oauth2.Endpoint {
	base := "https://login.microsoftonline.com/" + tenantID + "/oauth2/v2.0/"
	return oauth2.Endpoint{
		DeviceAuthURL: base + "devicecode",
		TokenURL:      base + "token",
		AuthStyle:     oauth2.AuthStyleInParams,
	}
}

// OAuthConfig builds the device-code client configuration for cfg.
func OAuthConfig(cfg config.OutlookConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID: cfg.ClientID,
		Scopes:   Scopes,
		Endpoint: endpoint(cfg.TenantID),
	}
}

// TokenFile persists the Graph token as JSON.
type TokenFile struct {
	Path string
}

// DefaultTokenFile is auth/msgraph_tokens.json under the dutyrep base dir.
func DefaultTokenFile() (TokenFile, error) {
	base, err := config.BaseDir()
	if err != nil {
		return TokenFile{}, err
	}
	return TokenFile{Path: filepath.Join(base, "auth", "msgraph_tokens.json")}, nil
}

// Load returns the stored token, or nil when none has been saved yet.
func (f TokenFile) Load() (*oauth2.Token, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading token file: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("corrupt token file (delete %s to re-authenticate): %w", f.Path, err)
	}
	return &tok, nil
}

// Save writes tok with owner-only permissions through a temp file.
func (f TokenFile) Save(tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("creating auth directory: %w", err)
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling token: %w", err)
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	if err := os.Rename(tmp, f.Path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("saving token file: %w", err)
	}
	return nil
}

// Authenticate returns a usable Graph token: the stored one while valid, a
// refreshed one, or a new one from the device code flow, whose sign-in
// instructions go to prompt.
func Authenticate(ctx context.Context, oc *oauth2.Config, tokens TokenFile, prompt io.Writer, logger *zap.Logger) (*oauth2.Token, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	tok, err := tokens.Load()
	if err != nil {
		logger.Warn("ignoring stored token", zap.Error(err))
		tok = nil
	}
	if tok.Valid() {
		return tok, nil
	}

	if tok != nil && tok.RefreshToken != "" {
		refreshed, err := oc.TokenSource(ctx, tok).Token()
		if err == nil {
			if err := tokens.Save(refreshed); err != nil {
				logger.Warn("could not save refreshed token", zap.Error(err))
			}
			return refreshed, nil
		}
		logger.Info("token refresh failed, re-authenticating", zap.Error(err))
	}

	resp, err := oc.DeviceAuth(ctx)
	if err != nil {
		return nil, fmt.Errorf("device auth request failed: %w", err)
	}
	fmt.Fprintf(prompt, "\nTo sign in, open %s and enter the code %s\n\n", resp.VerificationURI, resp.UserCode)

	tok, err = oc.DeviceAccessToken(ctx, resp)
	if err != nil {
		return nil, fmt.Errorf("device authentication failed: %w", err)
	}
	if err := tokens.Save(tok); err != nil {
		logger.Warn("could not save token", zap.Error(err))
	}
	return tok, nil
}
