// Package attachment implements a content-addressed attachment store on the
// local filesystem. Blobs live in the store directory under their hash and
// a sqlite index keeps their mime type and original filename.
//
// Store satisfies both core.AttachmentSaver and core.MediaResolver, so the
// same store externalizes inline images and later resolves them back.
package attachment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/LaffeyOvO/notesnook/core"
	"github.com/LaffeyOvO/notesnook/core/dataurl"
	"github.com/cespare/xxhash/v2"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned for hashes the store does not hold.
var ErrNotFound = errors.New("attachment not found")

const indexFile = "attachments.db"

var (
	_ core.AttachmentSaver = (*Store)(nil)
	_ core.MediaResolver   = (*Store)(nil)
)

// Attachment is the index record of a stored blob.
type Attachment struct {
	Hash      string    `json:"hash"`
	Mime      string    `json:"mime"`
	Filename  string    `json:"filename,omitempty"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// Store handles blob files and their sqlite index.
type Store struct {
	dir    string
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the store rooted at dir.
func Open(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, indexFile)+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}

	s := &Store{dir: dir, db: db, logger: logger}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// Close closes the index.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// initSchema creates the attachments table if it doesn't exist.
func (s *Store) initSchema() error {
	schema := `
CREATE TABLE IF NOT EXISTS attachments (
    hash TEXT PRIMARY KEY,
    mime TEXT NOT NULL,
    filename TEXT NOT NULL DEFAULT '',
    size INTEGER NOT NULL,
    created_at TEXT NOT NULL
);
`
	_, err := s.db.Exec(schema)
	return err
}

// Hash returns the content hash the store uses for data.
func Hash(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// Save stores data and returns its hash. Saving the same bytes twice is a
// no-op that returns the same hash.
func (s *Store) Save(ctx context.Context, data []byte, mime, filename string) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	hash := Hash(data)
	path := s.blobPath(hash)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := writeAtomic(path, data); err != nil {
			return "", fmt.Errorf("writing blob %s: %w", hash, err)
		}
	} else if err != nil {
		return "", fmt.Errorf("stat blob %s: %w", hash, err)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO attachments (hash, mime, filename, size, created_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(hash) DO NOTHING`,
		hash, mime, filename, len(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("indexing %s: %w", hash, err)
	}

	s.logger.Debug("attachment saved", "hash", hash, "mime", mime, "size", len(data))
	return hash, nil
}

// Get returns the index record and bytes of hash.
func (s *Store) Get(ctx context.Context, hash string) (*Attachment, []byte, error) {
	if !validHash(hash) {
		return nil, nil, ErrNotFound
	}
	var a Attachment
	var created string
	err := s.db.QueryRowContext(ctx,
		`SELECT hash, mime, filename, size, created_at FROM attachments WHERE hash = ?`, hash,
	).Scan(&a.Hash, &a.Mime, &a.Filename, &a.Size, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("querying %s: %w", hash, err)
	}
	a.CreatedAt, _ = time.Parse(time.RFC3339, created)

	data, err := os.ReadFile(s.blobPath(hash))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading blob %s: %w", hash, err)
	}
	return &a, data, nil
}

// Resolve maps each stored hash to a data: URI of its content. Unknown
// hashes are left out of the result.
func (s *Store) Resolve(ctx context.Context, hashes []string) (map[string]string, error) {
	out := make(map[string]string, len(hashes))
	for _, hash := range hashes {
		a, data, err := s.Get(ctx, hash)
		if errors.Is(err, ErrNotFound) {
			s.logger.Warn("attachment missing", "hash", hash)
			continue
		}
		if err != nil {
			return nil, err
		}
		out[hash] = dataurl.Encode(a.Mime, data)
	}
	return out, nil
}

// List returns all index records ordered by hash.
func (s *Store) List(ctx context.Context) ([]Attachment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT hash, mime, filename, size, created_at FROM attachments ORDER BY hash`)
	if err != nil {
		return nil, fmt.Errorf("listing attachments: %w", err)
	}
	defer rows.Close()

	out := []Attachment{}
	for rows.Next() {
		var a Attachment
		var created string
		if err := rows.Scan(&a.Hash, &a.Mime, &a.Filename, &a.Size, &created); err != nil {
			return nil, err
		}
		a.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, a)
	}
	return out, rows.Err()
}

// validHash reports whether hash has the form Hash produces.
func validHash(hash string) bool {
	if len(hash) != 16 {
		return false
	}
	for _, c := range hash {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func (s *Store) blobPath(hash string) string {
	return filepath.Join(s.dir, hash)
}

// writeAtomic writes data to a temp file next to path and renames it into place.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".blob-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
