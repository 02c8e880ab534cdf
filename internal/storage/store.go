package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"snappy/internal/models"
	"snappy/internal/providers"
	"snappy/internal/storage/interfaces"
	"strings"

	json "github.com/goccy/go-json"
)

const (
	AcceptedExt   = ".snap"
	PendingSuffix = ".new"
	PendingExt    = AcceptedExt + PendingSuffix
)

var ErrNotFound = interfaces.ErrNotFound

// PendingSnapshot is a candidate awaiting review.
type PendingSnapshot struct {
	Path         string
	AcceptedPath string
	// Test is the directory of the pending file relative to the store root.
	Test string
	Snap string
}

// Store keeps accepted and pending snapshots under root:
//
//	<root>/<test>/<snap>.snap      accepted
//	<root>/<test>/<snap>.snap.new  pending
type Store struct {
	root   string
	cache  providers.CacheProviderInterface
	logger providers.Logger
}

func NewStore(root string, cache providers.CacheProviderInterface, logger providers.Logger) *Store {
	return &Store{
		root:   root,
		cache:  cache,
		logger: logger,
	}
}

func (s *Store) Root() string {
	return s.root
}

// Provision creates the directory for a test case. It is idempotent.
func (s *Store) Provision(testName string) error {
	return os.MkdirAll(filepath.Join(s.root, testName), 0755)
}

func (s *Store) AcceptedPath(testName, snapName string) string {
	return filepath.Join(s.root, testName, snapName+AcceptedExt)
}

func (s *Store) PendingPath(testName, snapName string) string {
	return s.AcceptedPath(testName, snapName) + PendingSuffix
}

// LoadAccepted returns the header of the accepted snapshot without reading
// its body. Headers are cached by path, mtime and size. The cache lives in
// memory for the life of the process, so it only hits when the same snap is
// asserted more than once per process, as with repeated RunAll calls.
func (s *Store) LoadAccepted(testName, snapName string) (*models.Record, error) {
	path := s.AcceptedPath(testName, snapName)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}

	key := headerCacheKey(path, info)
	if data, ok := s.cache.Get(key); ok {
		var header models.Header
		if err := json.Unmarshal(data, &header); err == nil {
			return models.RecordFromHeader(header)
		}
		s.logger.Warnf(providers.TypeRun, "Discarding unreadable cached header for %s", path)
	}

	rec, err := models.LoadRecord(path, false)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(rec.Header()); err == nil {
		s.cache.Set(key, data)
	}
	return rec, nil
}

// LoadAcceptedContent returns the accepted snapshot including its body.
func (s *Store) LoadAcceptedContent(testName, snapName string) (*models.Record, error) {
	return loadWithContent(s.AcceptedPath(testName, snapName))
}

// SavePending writes rec as the pending candidate, replacing any earlier one.
func (s *Store) SavePending(rec *models.Record) error {
	return rec.Save(s.PendingPath(rec.TestName(), rec.SnapName()))
}

// ListPending walks the store for pending files in lexical order.
func (s *Store) ListPending() ([]PendingSnapshot, error) {
	var pending []PendingSnapshot

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == s.root && errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), PendingExt) {
			return nil
		}

		rel, err := filepath.Rel(s.root, filepath.Dir(path))
		if err != nil {
			return err
		}
		pending = append(pending, PendingSnapshot{
			Path:         path,
			AcceptedPath: strings.TrimSuffix(path, PendingSuffix),
			Test:         filepath.ToSlash(rel),
			Snap:         strings.TrimSuffix(d.Name(), PendingExt),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pending, nil
}

// LoadPending returns the pending candidate with its body and the accepted
// snapshot it would replace, which is nil when there is none.
func (s *Store) LoadPending(p PendingSnapshot) (candidate, accepted *models.Record, err error) {
	candidate, err = loadWithContent(p.Path)
	if err != nil {
		return nil, nil, err
	}
	accepted, err = loadWithContent(p.AcceptedPath)
	if errors.Is(err, ErrNotFound) {
		return candidate, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return candidate, accepted, nil
}

// Accept promotes the pending file by stripping its reserved suffix.
func (s *Store) Accept(p PendingSnapshot) error {
	if err := os.Rename(p.Path, p.AcceptedPath); err != nil {
		return err
	}
	s.logger.Infof(providers.TypeReview, "Accepted %s", p.AcceptedPath)
	return nil
}

// Reject deletes the pending file and leaves the accepted snapshot alone.
func (s *Store) Reject(p PendingSnapshot) error {
	if err := os.Remove(p.Path); err != nil {
		return err
	}
	s.logger.Infof(providers.TypeReview, "Rejected %s", p.Path)
	return nil
}

func loadWithContent(path string) (*models.Record, error) {
	rec, err := models.LoadRecord(path, true)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	return rec, nil
}

func headerCacheKey(path string, info os.FileInfo) string {
	return fmt.Sprintf("%s|%d|%d", path, info.ModTime().UnixNano(), info.Size())
}
