package session

import (
	"encoding/hex"
	"errors"
	"hash/crc32"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// Schema version of the on-disk snapshot; bump on format changes.
const snapshotSchemaVersion uint16 = 1

// Snapshot is the durable part of a session: the last compiled text
// and its configuration. Memo tables hold live tree nodes and stay in
// memory; a restarted process re-primes by compiling the snapshot text
// once.
type Snapshot struct {
	Schema  uint16
	ID      string
	Content []byte
	Hash    uint32
	Cfg     Config
}

// Store persists session snapshots under the user cache directory.
type Store struct {
	dir string
}

// OpenStore initializes the snapshot store at the standard location.
func OpenStore(app string) (*Store, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app, "sessions")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// OpenStoreAt uses an explicit directory; tests point it at t.TempDir.
func OpenStoreAt(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

func (st *Store) pathFor(id string) string {
	key := crc32.ChecksumIEEE([]byte(id))
	var raw [4]byte
	raw[0], raw[1], raw[2], raw[3] = byte(key>>24), byte(key>>16), byte(key>>8), byte(key)
	return filepath.Join(st.dir, hex.EncodeToString(raw[:])+".mp")
}

// Save writes a snapshot with an atomic rename.
func (st *Store) Save(snap *Snapshot) error {
	if st == nil {
		return nil
	}
	snap.Schema = snapshotSchemaVersion

	p := st.pathFor(snap.ID)
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := msgpack.NewEncoder(f).Encode(snap); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, p)
}

// Load reads the snapshot for a session id. A missing or out-of-schema
// snapshot reports ok=false without error.
func (st *Store) Load(id string, out *Snapshot) (bool, error) {
	if st == nil {
		return false, nil
	}
	f, err := os.Open(st.pathFor(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != snapshotSchemaVersion {
		return false, nil
	}
	return true, nil
}

// Drop removes the snapshot for a session id.
func (st *Store) Drop(id string) error {
	if st == nil {
		return nil
	}
	err := os.Remove(st.pathFor(id))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
