package models

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// ErrInvalidRecord is returned when a record is built without a source.
var ErrInvalidRecord = errors.New("invalid snapshot record")

// RecordSource is either WithContent or WithHash.
type RecordSource interface {
	apply(rec *Record)
}

// WithContent builds a record from the captured body; the hash is derived from it.
type WithContent string

// WithHash builds a metadata-only record from a known digest.
type WithHash string

func (c WithContent) apply(rec *Record) {
	content := string(c)
	rec.content = &content
	rec.hash = HashContent(content)
}

func (h WithHash) apply(rec *Record) {
	rec.hash = string(h)
}

// Record is one comparable snapshot. It is never mutated after construction.
type Record struct {
	testName  string
	snapName  string
	content   *string
	hash      string
	createdAt string
}

// HashContent returns the lowercase hex SHA-256 of the UTF-8 content.
func HashContent(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// BuildRecord constructs a record from source. An empty createdAt means now.
func BuildRecord(testName, snapName string, source RecordSource, createdAt string) (*Record, error) {
	if source == nil {
		return nil, fmt.Errorf("%w: expected content or hash for %s/%s", ErrInvalidRecord, testName, snapName)
	}
	if createdAt == "" {
		createdAt = now()
	}
	rec := &Record{
		testName:  testName,
		snapName:  snapName,
		createdAt: createdAt,
	}
	source.apply(rec)
	return rec, nil
}

func NewRecord(testName, snapName, content string) *Record {
	rec, _ := BuildRecord(testName, snapName, WithContent(content), "")
	return rec
}

// ReadRecord parses a snapshot from r. See decodeSnapshot for withContent.
func ReadRecord(r io.Reader, withContent bool) (*Record, error) {
	fields, err := decodeSnapshot(r, withContent)
	if err != nil {
		return nil, err
	}
	return recordFromFields(fields, withContent)
}

// LoadRecord reads the snapshot stored at path.
func LoadRecord(path string, withContent bool) (*Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	rec, err := ReadRecord(file, withContent)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return rec, nil
}

func recordFromFields(fields map[string]string, withContent bool) (*Record, error) {
	for _, key := range []string{FieldTest, FieldSnap} {
		if _, ok := fields[key]; !ok {
			return nil, fmt.Errorf("%w: missing %q header", ErrMalformedSnapshot, key)
		}
	}

	var source RecordSource
	if withContent {
		source = WithContent(fields[FieldContent])
	} else {
		hash, ok := fields[FieldHash]
		if !ok {
			return nil, fmt.Errorf("%w: missing %q header", ErrMalformedSnapshot, FieldHash)
		}
		source = WithHash(hash)
	}
	return BuildRecord(fields[FieldTest], fields[FieldSnap], source, fields[FieldDate])
}

// Bytes serializes the record into the snapshot file format.
func (r *Record) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeSnapshot(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the record to path through a temp file that is synced and
// renamed into place, so a torn write never looks like a valid snapshot.
func (r *Record) Save(path string) error {
	data, err := r.Bytes()
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmpFile := path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, path)
}

// Equal compares content hashes only.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.hash == other.hash
}

func (r *Record) TestName() string  { return r.testName }
func (r *Record) SnapName() string  { return r.snapName }
func (r *Record) Hash() string      { return r.hash }
func (r *Record) CreatedAt() string { return r.createdAt }

// Content returns the body and whether it was materialized.
func (r *Record) Content() (string, bool) {
	if r.content == nil {
		return "", false
	}
	return *r.content, true
}

// Header is the metadata part of a record.
type Header struct {
	Test string `json:"test"`
	Snap string `json:"snap"`
	Hash string `json:"hash"`
	Date string `json:"date"`
}

func (r *Record) Header() Header {
	return Header{Test: r.testName, Snap: r.snapName, Hash: r.hash, Date: r.createdAt}
}

// RecordFromHeader rebuilds a metadata-only record.
func RecordFromHeader(h Header) (*Record, error) {
	return BuildRecord(h.Test, h.Snap, WithHash(h.Hash), h.Date)
}
