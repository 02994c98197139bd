package object

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
)

// ErrInvalidName rejects file names that would escape their key prefix.
var ErrInvalidName = errors.New("invalid file name")

// NewKey builds a storage key namespaced by a hash of the user ID and a random prefix,
// e.g. exports/<sha256(user)>/<random>_<file>.
func NewKey(namespace, userID, fileName string) (string, error) {
	name, err := cleanName(fileName)
	if err != nil {
		return "", err
	}
	return path.Join(namespace, ownerDir(userID), randomID()+"_"+name), nil
}

// ownerDir keeps raw principals ("guest:<id>", emails) out of object paths.
func ownerDir(userID string) string {
	sum := sha256.Sum256([]byte(userID))
	return hex.EncodeToString(sum[:])
}

func cleanName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidName
	}
	s := strings.TrimSpace(name)
	s = strings.NewReplacer("/", "_", "\\", "_").Replace(s)
	if s == "" {
		return "", ErrInvalidName
	}
	return s, nil
}

func randomID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
