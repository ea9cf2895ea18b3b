package localstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// SchemaVersion gates all loads. When the marker on disk does not match,
// every stored collection is discarded before the first load. Blunt, but
// this store is a convenience cache, not a system of record.
const SchemaVersion = "2"

const versionFile = "schema_version"

// Store is durable, local, per-collection JSON storage. It is used only
// in sample-data mode so records created during a demo survive a
// restart. Save never fails the caller: quota and serialization errors
// are logged and swallowed by design.
type Store struct {
	dir string
	log *logrus.Entry
}

// Open prepares a store rooted at dir, creating it if needed and
// purging all collections when the schema version marker is stale.
func Open(dir string, log *logrus.Logger) *Store {
	s := &Store{
		dir: dir,
		log: log.WithField("component", "localstore"),
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.log.WithError(err).Warn("cannot create store directory; persistence disabled")
		return s
	}

	marker, err := os.ReadFile(filepath.Join(dir, versionFile))
	if err != nil || strings.TrimSpace(string(marker)) != SchemaVersion {
		s.purge()
		if err := os.WriteFile(filepath.Join(dir, versionFile), []byte(SchemaVersion), 0o644); err != nil {
			s.log.WithError(err).Warn("cannot write schema version marker")
		}
	}

	return s
}

// Save overwrites the entire stored collection for key. Errors are
// logged and swallowed: losing this data is acceptable and expected.
func (s *Store) Save(key string, records any) {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		s.log.WithError(err).WithField("collection", key).Warn("serialize failed; collection not saved")
		return
	}

	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		s.log.WithError(err).WithField("collection", key).Warn("write failed; collection not saved")
		return
	}
	if err := os.Rename(tmp, path); err != nil {
		s.log.WithError(err).WithField("collection", key).Warn("rename failed; collection not saved")
		_ = os.Remove(tmp)
	}
}

// Load fills dest with the stored collection for key. Returns false,
// leaving dest untouched, when nothing usable is stored.
func (s *Store) Load(key string, dest any) bool {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		s.log.WithError(err).WithField("collection", key).Warn("stored collection unparseable; using defaults")
		return false
	}

	return true
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// purge removes every stored collection.
func (s *Store) purge() {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".json") {
			_ = os.Remove(filepath.Join(s.dir, e.Name()))
		}
	}
	s.log.Info("schema version changed; discarded stored collections")
}
