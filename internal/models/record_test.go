package models

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helloDigest = "4dca0fd5f424a31b03ab807cbae77eb32bf2d089eed1cee154b3afed458de0dc"

func TestHashContent_KnownDigest(t *testing.T) {
	assert.Equal(t, helloDigest, HashContent("hello, world!\n"))
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", HashContent(""))
}

func TestBuildRecord_NilSource(t *testing.T) {
	_, err := BuildRecord("test", "test", nil, "")
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestBuildRecord_WithHashHasNoContent(t *testing.T) {
	rec, err := BuildRecord("test", "snap", WithHash("abc"), "2024-01-01T00:00:00Z")
	require.NoError(t, err)

	_, ok := rec.Content()
	assert.False(t, ok)
	assert.Equal(t, "abc", rec.Hash())
	assert.Equal(t, "2024-01-01T00:00:00Z", rec.CreatedAt())
}

func TestNewRecord_DerivesHashAndTimestamp(t *testing.T) {
	rec := NewRecord("test", "snap", "hello, world!\n")

	assert.Equal(t, helloDigest, rec.Hash())
	content, ok := rec.Content()
	assert.True(t, ok)
	assert.Equal(t, "hello, world!\n", content)

	created, err := time.Parse(time.RFC3339Nano, rec.CreatedAt())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), created, time.Minute)
	assert.True(t, strings.HasSuffix(rec.CreatedAt(), "Z"))
}

func TestNewRecord_EmptyContentIsValid(t *testing.T) {
	rec := NewRecord("test", "snap", "")
	content, ok := rec.Content()
	assert.True(t, ok)
	assert.Empty(t, content)
	assert.Equal(t, HashContent(""), rec.Hash())
}

func TestRecord_EqualSameContent(t *testing.T) {
	left := NewRecord("test1", "test", "hello, world!\n")
	right := NewRecord("test2", "test", "hello, world!\n")
	assert.True(t, left.Equal(right))
}

func TestRecord_EqualDifferentContent(t *testing.T) {
	left := NewRecord("test1", "test", "hello, world!\n\n")
	right := NewRecord("test2", "test", "hello, world!\n")
	assert.False(t, left.Equal(right))
}

func TestRecord_EqualIgnoresMaterialization(t *testing.T) {
	full := NewRecord("test", "snap", "this is content")
	meta, err := BuildRecord("other", "other", WithHash(full.Hash()), "1999-01-01T00:00:00Z")
	require.NoError(t, err)
	assert.True(t, full.Equal(meta))
	assert.True(t, meta.Equal(full))
}

func TestRecord_BytesLayout(t *testing.T) {
	rec, err := BuildRecord("test", "snap", WithContent("hello, wolrd!"), "2024-05-01T10:00:00Z")
	require.NoError(t, err)

	data, err := rec.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "---\n"+
		"test: test\n"+
		"snap: snap\n"+
		"hash: "+HashContent("hello, wolrd!")+"\n"+
		"date: 2024-05-01T10:00:00Z\n"+
		"---\n"+
		"hello, wolrd!\n"+
		"---\n", string(data))
}

func TestRecord_BytesWithoutContentFails(t *testing.T) {
	rec, err := BuildRecord("test", "snap", WithHash("abc"), "")
	require.NoError(t, err)
	_, err = rec.Bytes()
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestRecord_SaveAndLoadWithContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "snap.snap")
	original := NewRecord("test", "snap", "hello,\nworld!\n")
	require.NoError(t, original.Save(path))

	loaded, err := LoadRecord(path, true)
	require.NoError(t, err)

	assert.Equal(t, original.TestName(), loaded.TestName())
	assert.Equal(t, original.SnapName(), loaded.SnapName())
	assert.Equal(t, original.CreatedAt(), loaded.CreatedAt())
	content, ok := loaded.Content()
	require.True(t, ok)
	assert.Equal(t, "hello,\nworld!\n", content)
	assert.True(t, original.Equal(loaded))
}

func TestRecord_SaveAndLoadMetadataOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.snap")
	original := NewRecord("test", "snap", "hello,\nworld!\n")
	require.NoError(t, original.Save(path))

	loaded, err := LoadRecord(path, false)
	require.NoError(t, err)

	assert.Equal(t, original.Hash(), loaded.Hash())
	assert.Equal(t, original.CreatedAt(), loaded.CreatedAt())
	_, ok := loaded.Content()
	assert.False(t, ok)
}

func TestRecord_SaveLeavesNoTempFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.snap")
	require.NoError(t, NewRecord("test", "snap", "x").Save(path))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestRecord_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.snap.new")
	require.NoError(t, NewRecord("test", "snap", "first").Save(path))
	require.NoError(t, NewRecord("test", "snap", "second").Save(path))

	loaded, err := LoadRecord(path, true)
	require.NoError(t, err)
	content, _ := loaded.Content()
	assert.Equal(t, "second", content)
}

func TestLoadRecord_MissingFile(t *testing.T) {
	_, err := LoadRecord(filepath.Join(t.TempDir(), "absent.snap"), false)
	assert.True(t, os.IsNotExist(err))
}

func TestLoadRecord_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.snap")
	require.NoError(t, os.WriteFile(path, []byte("not a snapshot\n"), 0644))

	_, err := LoadRecord(path, false)
	assert.ErrorIs(t, err, ErrMalformedSnapshot)
}

func TestReadRecord_MissingRequiredHeader(t *testing.T) {
	_, err := ReadRecord(strings.NewReader("---\ntest: t\nhash: h\n---\n"), false)
	assert.ErrorIs(t, err, ErrMalformedSnapshot)
}

func TestReadRecord_MissingHashWithoutContent(t *testing.T) {
	_, err := ReadRecord(strings.NewReader("---\ntest: t\nsnap: s\n---\nbody\n---\n"), false)
	assert.ErrorIs(t, err, ErrMalformedSnapshot)

	rec, err := ReadRecord(strings.NewReader("---\ntest: t\nsnap: s\n---\nbody\n---\n"), true)
	require.NoError(t, err)
	assert.Equal(t, HashContent("body"), rec.Hash())
}

func TestRecordFromHeader(t *testing.T) {
	original := NewRecord("test", "snap", "abc")
	rebuilt, err := RecordFromHeader(original.Header())
	require.NoError(t, err)
	assert.True(t, original.Equal(rebuilt))
	assert.Equal(t, original.CreatedAt(), rebuilt.CreatedAt())
}
