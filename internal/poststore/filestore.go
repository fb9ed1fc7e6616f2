package poststore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"inkstream/internal/models"
	"inkstream/internal/observability"
)

// FileStore persists one JSON document per post under a single directory,
// addressed by identifier alone. Every operation round-trips through the
// filesystem; there is no in-memory cache. Writes go to a temp file in the
// same directory, then updates rename over the target and creates hard-link
// into it, so a concurrent reader sees either the old or the new record,
// never a truncated one.
type FileStore struct {
	dir    string
	logger *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewFileStore creates the storage directory if needed and returns a store
// over it. A nil logger falls back to slog.Default().
func NewFileStore(dir string, logger *slog.Logger) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("poststore: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("poststore: create directory %s: %w", dir, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{
		dir:    dir,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}, nil
}

// lockFor returns the mutex serializing mutations of one identifier. Lock
// entries are never removed; the set of identifiers is bounded by post count.
func (s *FileStore) lockFor(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// recordPath maps an identifier to its file. Identifiers come from NewID but
// arrive via URLs too, so anything that could escape the directory is
// rejected up front.
func (s *FileStore) recordPath(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return "", fmt.Errorf("%w: invalid identifier %q", ErrNotFound, id)
	}
	return filepath.Join(s.dir, id+".json"), nil
}

// Create persists a new record, failing with ErrConflict when a record for
// the identifier already exists. Existence is checked by hard-linking the
// temp file into place, which is exclusive at the filesystem level, so the
// conflict holds even against another process writing the same directory.
func (s *FileStore) Create(ctx context.Context, post *models.Post) (err error) {
	start := time.Now()
	ctx, span := observability.StartStoreSpan(ctx, "create")
	defer func() {
		observability.EndStoreSpan(span, err)
		observability.ObserveStoreOp("create", start, err)
	}()

	path, err := s.recordPath(post.ID)
	if err != nil {
		return err
	}

	l := s.lockFor(post.ID)
	l.Lock()
	defer l.Unlock()

	return s.linkRecord(path, post)
}

// Get performs a lock-free point read; atomic renames guarantee the file is
// always a complete record.
func (s *FileStore) Get(ctx context.Context, id string) (post *models.Post, err error) {
	start := time.Now()
	ctx, span := observability.StartStoreSpan(ctx, "get")
	defer func() {
		observability.EndStoreSpan(span, err)
		observability.ObserveStoreOp("get", start, err)
	}()

	path, err := s.recordPath(id)
	if err != nil {
		return nil, err
	}
	return s.readRecord(path, id)
}

// Update runs the read-modify-write cycle for one identifier under its lock,
// so N concurrent updates always net N applications of mutate.
func (s *FileStore) Update(ctx context.Context, id string, mutate func(*models.Post)) (post *models.Post, err error) {
	start := time.Now()
	ctx, span := observability.StartStoreSpan(ctx, "update")
	defer func() {
		observability.EndStoreSpan(span, err)
		observability.ObserveStoreOp("update", start, err)
	}()

	path, err := s.recordPath(id)
	if err != nil {
		return nil, err
	}

	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	post, err = s.readRecord(path, id)
	if err != nil {
		return nil, err
	}
	mutate(post)
	if err = s.writeRecord(path, post); err != nil {
		return nil, err
	}
	return post, nil
}

// ListAll enumerates every record in the directory. Unreadable or corrupt
// files are skipped with a warning; the listing never fails because one
// record is bad. Results follow directory name order (lexicographic), which
// keeps timestamp ties stable for the feed's recency sort.
func (s *FileStore) ListAll(ctx context.Context) (posts []*models.Post, err error) {
	start := time.Now()
	ctx, span := observability.StartStoreSpan(ctx, "list")
	defer func() {
		observability.EndStoreSpan(span, err)
		observability.ObserveStoreOp("list", start, err)
	}()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("poststore: read directory: %w", err)
	}

	posts = make([]*models.Post, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		id := strings.TrimSuffix(name, ".json")
		post, readErr := s.readRecord(filepath.Join(s.dir, name), id)
		if readErr != nil {
			observability.PostStoreCorruptSkips.Inc()
			s.logger.Warn("skipping unreadable post record",
				slog.String("file", name),
				slog.String("error", readErr.Error()),
			)
			continue
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (s *FileStore) readRecord(path, id string) (*models.Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("poststore: read %s: %w", id, err)
	}

	var post models.Post
	if err := json.Unmarshal(data, &post); err != nil {
		return nil, fmt.Errorf("poststore: decode %s: %w", id, err)
	}
	return &post, nil
}

// writeTemp marshals the record into a fsynced temp file in the storage
// directory and returns its name. The caller moves it into place.
func (s *FileStore) writeTemp(post *models.Post) (string, error) {
	data, err := json.MarshalIndent(post, "", "  ")
	if err != nil {
		return "", fmt.Errorf("poststore: encode %s: %w", post.ID, err)
	}

	tmp, err := os.CreateTemp(s.dir, ".post-*.tmp")
	if err != nil {
		return "", fmt.Errorf("poststore: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("poststore: write %s: %w", post.ID, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("poststore: sync %s: %w", post.ID, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("poststore: close temp file for %s: %w", post.ID, err)
	}
	return tmpName, nil
}

// writeRecord makes the new record visible atomically: marshal, write to a
// temp file in the same directory, fsync, rename over the target.
func (s *FileStore) writeRecord(path string, post *models.Post) error {
	tmpName, err := s.writeTemp(post)
	if err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("poststore: rename %s: %w", post.ID, err)
	}
	return nil
}

// linkRecord publishes a brand-new record. os.Link refuses to replace an
// existing target, unlike rename, so a concurrent create of the same
// identifier from any process loses with ErrConflict instead of silently
// overwriting the winner.
func (s *FileStore) linkRecord(path string, post *models.Post) error {
	tmpName, err := s.writeTemp(post)
	if err != nil {
		return err
	}
	defer os.Remove(tmpName)

	if err := os.Link(tmpName, path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrConflict, post.ID)
		}
		return fmt.Errorf("poststore: link %s: %w", post.ID, err)
	}
	return nil
}
