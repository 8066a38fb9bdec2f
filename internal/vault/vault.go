// Package vault owns the encrypt/decrypt/persist lifecycle for per-user
// credential records. Each username maps to exactly one file under the vault
// directory; the file holds a small header (magic, format version, salt,
// nonce) followed by the AES-GCM ciphertext.
package vault

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/xpost/internal/common"
	"github.com/dmitrijs2005/xpost/internal/cryptox"
	"github.com/dmitrijs2005/xpost/internal/filex"
	"github.com/dmitrijs2005/xpost/internal/logging"
	"github.com/dmitrijs2005/xpost/internal/models"
)

const (
	// FileSuffix is appended to the username to form the vault file name.
	FileSuffix = ".vault"

	lockFileName  = ".lock"
	lockRetry     = 100 * time.Millisecond
	formatVersion = 0x01
)

var fileMagic = []byte("XPST")

// headerSize = magic + version + salt + nonce.
const headerSize = 4 + 1 + cryptox.SaltSize + cryptox.NonceSize

// Usernames become file names, so the charset is restricted: no separators,
// no leading dot.
var usernameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Vault stores encrypted credential records, one file per username, under a
// single directory. All operations are synchronous and serialize on an
// exclusive directory-scoped file lock, so concurrent invocations of the CLI
// cannot race on the same file.
type Vault struct {
	dir string
	log logging.Logger
}

// New returns a Vault rooted at dir. The directory is not created until the
// first Save.
func New(dir string, log logging.Logger) *Vault {
	return &Vault{dir: dir, log: log}
}

// Dir returns the vault directory.
func (v *Vault) Dir() string {
	return v.dir
}

// FilePath returns the vault file path for username.
func (v *Vault) FilePath(username string) string {
	return filepath.Join(v.dir, username+FileSuffix)
}

// Save encrypts creds under a key derived from password and writes the result
// to username's vault file, creating the vault directory if needed. Any prior
// record for the username is overwritten; last write wins.
//
// A fresh random salt and nonce are drawn on every call, so saving the same
// record twice yields different bytes on disk.
func (v *Vault) Save(ctx context.Context, username string, password []byte, creds *models.Credentials) error {
	if err := validateUsername(username); err != nil {
		return err
	}
	if err := validatePassword(password); err != nil {
		return err
	}
	if err := creds.Validate(); err != nil {
		return err
	}

	salt, err := cryptox.GenerateSalt()
	if err != nil {
		return err
	}

	key := cryptox.DeriveKey(password, salt)
	defer common.WipeByteArray(key)

	ciphertext, nonce, err := cryptox.EncryptRecord(creds, key)
	if err != nil {
		return fmt.Errorf("failed to encrypt credentials: %w", err)
	}

	if err := filex.EnsureDir(v.dir); err != nil {
		return err
	}

	unlock, err := v.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	path := v.FilePath(username)
	if err := writeAtomic(path, frame(salt, nonce, ciphertext)); err != nil {
		return fmt.Errorf("failed to write vault file: %w", err)
	}

	v.log.Info(ctx, "credentials stored", "user", username, "path", path)
	return nil
}

// Load reads username's vault file, derives the key from password with the
// salt stored in the file, decrypts and returns the record.
//
// Returns common.ErrorNotFound if the file does not exist and
// common.ErrorInvalidPassword if the ciphertext fails its integrity check.
func (v *Vault) Load(ctx context.Context, username string, password []byte) (*models.Credentials, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	if _, err := os.Stat(v.dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("no vault for user %q: %w", username, common.ErrorNotFound)
	}

	unlock, err := v.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	data, err := os.ReadFile(v.FilePath(username))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no vault for user %q: %w", username, common.ErrorNotFound)
		}
		return nil, fmt.Errorf("failed to read vault file: %w", err)
	}

	salt, nonce, ciphertext, err := parseFrame(data)
	if err != nil {
		return nil, err
	}

	key := cryptox.DeriveKey(password, salt)
	defer common.WipeByteArray(key)

	var creds models.Credentials
	if err := cryptox.DecryptRecord(ciphertext, nonce, key, &creds); err != nil {
		return nil, err
	}

	v.log.Debug(ctx, "credentials loaded", "user", username)
	return &creds, nil
}

// Reset deletes username's vault file. Returns common.ErrorNotFound if there
// is nothing to delete. Other users' vault files are untouched.
func (v *Vault) Reset(ctx context.Context, username string) error {
	if err := validateUsername(username); err != nil {
		return err
	}

	if _, err := os.Stat(v.dir); os.IsNotExist(err) {
		return fmt.Errorf("no vault for user %q: %w", username, common.ErrorNotFound)
	}

	unlock, err := v.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if err := os.Remove(v.FilePath(username)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("no vault for user %q: %w", username, common.ErrorNotFound)
		}
		return fmt.Errorf("failed to remove vault file: %w", err)
	}

	v.log.Info(ctx, "vault reset", "user", username)
	return nil
}

// ResetAll irreversibly removes the whole vault directory and every record
// in it. Returns common.ErrorNotFound if the directory does not exist.
func (v *Vault) ResetAll(ctx context.Context) error {
	if _, err := os.Stat(v.dir); os.IsNotExist(err) {
		return fmt.Errorf("vault directory %s: %w", v.dir, common.ErrorNotFound)
	}

	unlock, err := v.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if err := os.RemoveAll(v.dir); err != nil {
		return fmt.Errorf("failed to remove vault directory: %w", err)
	}

	v.log.Info(ctx, "vault directory removed", "path", v.dir)
	return nil
}

// lock takes the directory-scoped exclusive lock, blocking (with retries)
// until it is acquired or ctx is done.
func (v *Vault) lock(ctx context.Context) (func(), error) {
	fl := flock.New(filepath.Join(v.dir, lockFileName))
	ok, err := fl.TryLockContext(ctx, lockRetry)
	if err != nil {
		return nil, fmt.Errorf("failed to lock vault: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("failed to lock vault: %w", ctx.Err())
	}
	return func() { _ = fl.Unlock() }, nil
}

// frame lays out the on-disk format: magic, version, salt, nonce, ciphertext.
func frame(salt, nonce, ciphertext []byte) []byte {
	buf := make([]byte, 0, headerSize+len(ciphertext))
	buf = append(buf, fileMagic...)
	buf = append(buf, formatVersion)
	buf = append(buf, salt...)
	buf = append(buf, nonce...)
	buf = append(buf, ciphertext...)
	return buf
}

func parseFrame(data []byte) (salt, nonce, ciphertext []byte, err error) {
	if len(data) < headerSize {
		return nil, nil, nil, fmt.Errorf("%w: file too short", common.ErrorMalformedVault)
	}
	if string(data[:4]) != string(fileMagic) {
		return nil, nil, nil, fmt.Errorf("%w: bad magic", common.ErrorMalformedVault)
	}
	if data[4] != formatVersion {
		return nil, nil, nil, fmt.Errorf("%w: unsupported format version %d", common.ErrorMalformedVault, data[4])
	}
	salt = data[5 : 5+cryptox.SaltSize]
	nonce = data[5+cryptox.SaltSize : headerSize]
	ciphertext = data[headerSize:]
	return salt, nonce, ciphertext, nil
}

// writeAtomic writes data to a unique temp file in the target directory and
// renames it into place, so a crash mid-write never leaves a truncated vault
// file behind.
func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp-" + uuid.NewString()
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func validateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("%w: username is required", common.ErrorValidation)
	}
	if !usernameRe.MatchString(username) {
		return fmt.Errorf("%w: username may only contain letters, digits, '.', '_' and '-'", common.ErrorValidation)
	}
	return nil
}

func validatePassword(password []byte) error {
	if len(password) == 0 {
		return fmt.Errorf("%w: password is required", common.ErrorValidation)
	}
	return nil
}
