// ABOUTME: Credential session context injected into the gateway client
// ABOUTME: Token resolution from env/XDG file plus unverified JWT identity decode

package session

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenEnvVar is the environment variable checked first for the bearer
// token.
const TokenEnvVar = "CHATBOT_TOKEN"

// tokenFileName is the token file under the XDG config directory,
// relative to the config root: chatbot-console/token.
const tokenFileName = "token"

// configDirName is the console's directory under XDG_CONFIG_HOME.
const configDirName = "chatbot-console"

// Identity is the display-only subset of claims decoded from the bearer
// token. The console never verifies the signature; the backend does
// that on every request. Zero values mean the token carried no such
// claim (or no token is configured).
type Identity struct {
	Name      string
	Admin     bool
	ExpiresAt time.Time
}

// Session is the process-wide credential context. Written once at
// construction, read-only thereafter.
type Session struct {
	token     string
	sessionID string
	identity  Identity
	closed    bool
}

// New creates a session with an explicit token. A fresh session ID is
// generated per process.
func New(token string) *Session {
	return &Session{
		token:     token,
		sessionID: uuid.New().String(),
		identity:  decodeIdentity(token),
	}
}

// NewFromEnv resolves the token from CHATBOT_TOKEN or, failing that,
// the XDG config token file. A session with an empty token is still
// valid; unauthenticated requests simply omit the bearer header.
func NewFromEnv() *Session {
	return New(resolveToken())
}

// Token returns the bearer token, or empty when unauthenticated.
// Returns empty after Close.
func (s *Session) Token() string {
	if s.closed {
		return ""
	}
	return s.token
}

// SessionID returns the process-scoped session identifier.
func (s *Session) SessionID() string {
	if s.closed {
		return ""
	}
	return s.sessionID
}

// Identity returns the decoded token claims for display.
func (s *Session) Identity() Identity {
	return s.identity
}

// Authenticated reports whether a token is configured.
func (s *Session) Authenticated() bool {
	return !s.closed && s.token != ""
}

// Close tears the session down. Subsequent Token/SessionID calls return
// empty strings so a closed session cannot authenticate requests.
func (s *Session) Close() {
	s.closed = true
	s.token = ""
	s.sessionID = ""
}

// resolveToken checks the env var first, then the XDG config file.
func resolveToken() string {
	if token := os.Getenv(TokenEnvVar); token != "" {
		return token
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	data, err := os.ReadFile(filepath.Join(configDir, configDirName, tokenFileName))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// decodeIdentity extracts display claims from the token without
// signature verification. A malformed or empty token yields a zero
// Identity.
func decodeIdentity(token string) Identity {
	if token == "" {
		return Identity{}
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return Identity{}
	}

	var id Identity
	if name, ok := claims["name"].(string); ok {
		id.Name = name
	} else if sub, ok := claims["sub"].(string); ok {
		id.Name = sub
	}
	if admin, ok := claims["admin"].(bool); ok {
		id.Admin = admin
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		id.ExpiresAt = exp.Time
	}
	return id
}
