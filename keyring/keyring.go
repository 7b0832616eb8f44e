// Package keyring stores network drive passwords. It prefers the system
// keyring and falls back to an encrypted file under the config directory
// when no keyring daemon is reachable.
package keyring

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/zalando/go-keyring"

	"github.com/upv-tools/upv-cli/common"
)

// serviceName identifies this tool's entries in the system keyring.
const serviceName = common.AppName

// ErrNotFound is returned when no password is stored for the account.
var ErrNotFound = errors.New("credential not found")

var (
	initOnce sync.Once

	useLocalStore bool
	localMu       sync.RWMutex
	localStore    map[string]string
	localFile     string
	localKey      []byte
)

// Key builds the storage key for an account. Both backends index entries by
// this value.
func Key(username, domain string) string {
	return fmt.Sprintf(`%s\%s`, strings.ToUpper(domain), username)
}

func ensureInit() {
	initOnce.Do(func() {
		probe := serviceName + "-probe"
		if err := keyring.Set(serviceName, probe, "probe"); err != nil {
			useLocalStore = true
			initLocalStore()
			return
		}
		keyring.Delete(serviceName, probe)
	})
}

func initLocalStore() {
	configDir, err := common.GetConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, ".config", common.ConfigDirName)
		os.MkdirAll(configDir, 0700)
	}
	localFile = filepath.Join(configDir, ".credentials")

	hostname, _ := os.Hostname()
	seed := fmt.Sprintf("%s-%s-%s-%d", serviceName, hostname, machineID(), os.Getuid())
	hash := sha256.Sum256([]byte(seed))
	localKey = hash[:]

	localStore = make(map[string]string)
	loadLocalStore()
}

func machineID() string {
	data, err := os.ReadFile("/etc/machine-id")
	if err != nil {
		return "unknown-machine"
	}
	return strings.TrimSpace(string(data))
}

func loadLocalStore() {
	data, err := os.ReadFile(localFile)
	if err != nil {
		return
	}
	plaintext, err := decrypt(data)
	if err != nil {
		return
	}
	json.Unmarshal(plaintext, &localStore)
}

func saveLocalStore() error {
	localMu.RLock()
	data, err := json.Marshal(localStore)
	localMu.RUnlock()
	if err != nil {
		return err
	}

	encrypted, err := encrypt(data)
	if err != nil {
		return err
	}
	return os.WriteFile(localFile, encrypted, 0600)
}

func encrypt(plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(localKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	sealed := gcm.Seal(nonce, nonce, plaintext, nil)
	return []byte(base64.StdEncoding.EncodeToString(sealed)), nil
}

func decrypt(data []byte) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(string(data))
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(localKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(raw) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}
	nonce, sealed := raw[:gcm.NonceSize()], raw[gcm.NonceSize():]
	return gcm.Open(nil, nonce, sealed, nil)
}

// Store saves the password for an account.
func Store(username, domain, password string) error {
	if username == "" {
		return common.ErrEmptyUsername
	}
	if password == "" {
		return errors.New("password cannot be empty")
	}
	ensureInit()

	id := Key(username, domain)

	if useLocalStore {
		localMu.Lock()
		localStore[id] = password
		localMu.Unlock()
		return saveLocalStore()
	}

	if err := keyring.Set(serviceName, id, password); err != nil {
		// Keyring stopped working mid-session; switch to the file backend.
		useLocalStore = true
		initLocalStore()
		localMu.Lock()
		localStore[id] = password
		localMu.Unlock()
		return saveLocalStore()
	}
	return nil
}

// Get retrieves the password for an account, or ErrNotFound.
func Get(username, domain string) (string, error) {
	if username == "" {
		return "", common.ErrEmptyUsername
	}
	ensureInit()

	id := Key(username, domain)

	if useLocalStore {
		localMu.RLock()
		password, exists := localStore[id]
		localMu.RUnlock()
		if !exists {
			return "", ErrNotFound
		}
		return password, nil
	}

	password, err := keyring.Get(serviceName, id)
	if err != nil {
		return "", ErrNotFound
	}
	return password, nil
}

// Delete removes the stored password for an account. Deleting an absent
// entry is not an error.
func Delete(username, domain string) error {
	if username == "" {
		return common.ErrEmptyUsername
	}
	ensureInit()

	id := Key(username, domain)

	if useLocalStore {
		localMu.Lock()
		delete(localStore, id)
		localMu.Unlock()
		return saveLocalStore()
	}

	keyring.Delete(serviceName, id)
	return nil
}

// Exists reports whether a password is stored for the account.
func Exists(username, domain string) bool {
	_, err := Get(username, domain)
	return err == nil
}
