package app

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/klabast/wb-services/transit-dashboard/internal/logx"
)

// Argon2id parameters (OWASP recommended)
const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32
	saltLen       = 16
)

const authRealm = "Transit Dashboard"

// ErrAuthFileExists is returned by CreateAuthFile when the file exists and the caller
// declined to overwrite it.
var ErrAuthFileExists = errors.New("auth file already exists")

// Auth guards mutating endpoints with Basic Auth. Without a secret file every request
// passes.
type Auth struct {
	user string
	hash []byte
	file string
	log  logx.Logger
}

// LoadAuth reads "username:hash" from path. A missing file leaves writes unprotected.
func LoadAuth(path string, log logx.Logger) (*Auth, error) {
	a := &Auth{file: path, log: log}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn("no auth file found, write endpoints are UNPROTECTED (local development only)",
				logx.String("expected", path),
				logx.String("hint", "run: transit-dashboard hash-password"))
			return a, nil
		}
		return nil, fmt.Errorf("failed to read auth file: %w", err)
	}

	line := strings.TrimSpace(string(data))
	user, hash, ok := strings.Cut(line, ":")
	if !ok || user == "" || hash == "" {
		return nil, fmt.Errorf("invalid auth file format (expected: username:hash)")
	}
	a.user = user
	a.hash = []byte(hash)

	log.Info("basic auth enabled for write endpoints", logx.String("user", user), logx.String("file", path))
	return a, nil
}

// Enabled reports whether credentials were loaded.
func (a *Auth) Enabled() bool { return a != nil && a.hash != nil }

func (a *Auth) User() string {
	if a == nil {
		return ""
	}
	return a.user
}

// HashPassword creates an Argon2id hash of the password
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	// $argon2id$v=19$m=65536,t=1,p=4$salt$hash
	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argon2Memory, argon2Time, argon2Threads, b64Salt, b64Hash), nil
}

// VerifyPassword verifies a password against an Argon2id hash
func VerifyPassword(password, hash string) (bool, error) {
	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		return false, fmt.Errorf("invalid hash format")
	}
	if parts[1] != "argon2id" {
		return false, fmt.Errorf("not an argon2id hash")
	}

	var memory, time, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, fmt.Errorf("failed to parse hash parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("failed to decode salt: %w", err)
	}
	decodedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("failed to decode hash: %w", err)
	}

	computedHash := argon2.IDKey([]byte(password), salt, time, memory, uint8(threads), uint32(len(decodedHash)))
	return subtle.ConstantTimeCompare(decodedHash, computedHash) == 1, nil
}

// Require enforces Basic Auth on next when credentials are loaded.
func (a *Auth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		user, pass, ok := r.BasicAuth()
		userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(a.user)) == 1

		passMatch := false
		if ok && userMatch {
			var err error
			passMatch, err = VerifyPassword(pass, string(a.hash))
			if err != nil {
				a.log.Error("verify password", logx.Err(err))
				passMatch = false
			}
		}

		if !ok || !userMatch || !passMatch {
			w.Header().Set("WWW-Authenticate", `Basic realm="`+authRealm+`"`)
			writeError(w, http.StatusUnauthorized, "unauthorized")
			a.log.Warn("failed auth attempt", logx.String("remote", r.RemoteAddr), logx.String("user", user))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// CreateAuthFile writes "username:hash" to path with mode 0400. An existing file is
// replaced only when overwrite is set or confirm returns true.
func CreateAuthFile(path, username, password string, overwrite bool, confirm func(path string) bool) error {
	if _, err := os.Stat(path); err == nil {
		if !overwrite && (confirm == nil || !confirm(path)) {
			return ErrAuthFileExists
		}
		// 0400 files cannot be truncated in place.
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove existing auth file: %w", err)
		}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	content := fmt.Sprintf("%s:%s\n", username, hash)
	if err := os.WriteFile(path, []byte(content), 0400); err != nil {
		return fmt.Errorf("failed to write auth file: %w", err)
	}
	return nil
}
