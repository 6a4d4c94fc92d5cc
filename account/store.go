package account

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// CredentialExt is the extension of key files, the file name without it is the account ID.
const CredentialExt = ".json"

// ErrNotFound is returned when no key file exists for an account.
var ErrNotFound = errors.New("credential not found")

// Entry is a key file in the credential store.
type Entry struct {
	ID   ID
	Path string
}

// Store is the directory of key files of one network, e.g. ~/.near-credentials/testnet.
type Store struct {
	dir string
}

// NewStore creates a store for network under the credentials home directory.
func NewStore(home string, network Network) *Store {
	return &Store{dir: filepath.Join(home, network.String())}
}

// Dir returns the directory of the store.
func (s *Store) Dir() string {
	return s.dir
}

// List enumerates key files in ASC order of file name.
func (s *Store) List() ([]Entry, error) {
	items, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read credentials directory %v", s.dir)
	}

	return lo.FilterMap(items, func(item fs.DirEntry, _ int) (Entry, bool) {
		name := item.Name()
		if item.IsDir() || !strings.HasSuffix(name, CredentialExt) {
			return Entry{}, false
		}

		id, err := ParseID(strings.TrimSuffix(name, CredentialExt))
		if err != nil {
			logrus.WithError(err).WithField("file", name).Warn("Skip key file with invalid account name")
			return Entry{}, false
		}

		return Entry{ID: id, Path: filepath.Join(s.dir, name)}, true
	}), nil
}

// Find returns the entry of account id.
func (s *Store) Find(id ID) (Entry, error) {
	path := filepath.Join(s.dir, id.String()+CredentialExt)

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Entry{}, errors.WithMessagef(ErrNotFound, "no key file for %v in %v", id, s.dir)
		}
		return Entry{}, errors.Wrapf(err, "failed to stat %v", path)
	}

	return Entry{ID: id, Path: path}, nil
}

// Load reads the credential of entry.
func (s *Store) Load(entry Entry) (*Credential, error) {
	cred, err := LoadCredential(entry.Path)
	if err != nil {
		return nil, err
	}

	if cred.AccountID != entry.ID {
		logrus.WithFields(logrus.Fields{
			"file":    entry.Path,
			"account": cred.AccountID,
		}).Warn("Key file name does not match account_id")
	}

	return cred, nil
}

// Remove deletes the key file of entry.
func (s *Store) Remove(entry Entry) error {
	if err := os.Remove(entry.Path); err != nil {
		return errors.Wrapf(err, "failed to remove key file %v", entry.Path)
	}

	logrus.WithField("file", entry.Path).Debug("Key file removed")

	return nil
}
