package testutil

import (
	"fmt"
	"snappy/internal/models"
	"snappy/internal/providers"
	"snappy/internal/storage/interfaces"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, entry := range m.Logs {
		if entry.Level == level {
			n++
		}
	}
	return n
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu          sync.Mutex
	Snapshots   map[string]int
	Cases       map[string]int
	Runs        int
	CacheHits   int
	CacheMisses int
	Persisted   int
	Flushes     int
	FlushErr    error
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{Snapshots: make(map[string]int), Cases: make(map[string]int)}
}

func (m *MockMetrics) IncSnapshots(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Snapshots[status]++
}

func (m *MockMetrics) IncCases(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Cases[status]++
}

func (m *MockMetrics) ObserveRunDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Runs++
}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persisted++
}

func (m *MockMetrics) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Flushes++
	return m.FlushErr
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu     sync.Mutex
	Data   map[string][]byte
	Hits   int
	Misses int
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	if ok {
		m.Hits++
	} else {
		m.Misses++
	}
	return val, ok
}

func (m *MockCache) Stats() providers.CacheStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return providers.CacheStats{Entries: int64(len(m.Data)), Hits: int64(m.Hits), Misses: int64(m.Misses)}
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
	Closed       bool
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {
	m.Closed = true
}

// MockStore implements interfaces.SnapshotStoreInterface in memory.
type MockStore struct {
	mu           sync.Mutex
	RootDir      string
	Provisioned  []string
	Accepted     map[string]*models.Record
	Pending      map[string]*models.Record
	LoadErr      error
	SaveErr      error
	ProvisionErr error
}

func NewMockStore() *MockStore {
	return &MockStore{
		RootDir:  "mock",
		Accepted: make(map[string]*models.Record),
		Pending:  make(map[string]*models.Record),
	}
}

func storeKey(testName, snapName string) string {
	return testName + "/" + snapName
}

func (m *MockStore) Root() string { return m.RootDir }

func (m *MockStore) Provision(testName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ProvisionErr != nil {
		return m.ProvisionErr
	}
	m.Provisioned = append(m.Provisioned, testName)
	return nil
}

// Accept stores rec as the accepted snapshot.
func (m *MockStore) Accept(rec *models.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Accepted[storeKey(rec.TestName(), rec.SnapName())] = rec
}

// LoadAccepted returns LoadErr when set and interfaces.ErrNotFound when
// nothing was accepted.
func (m *MockStore) LoadAccepted(testName, snapName string) (*models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	rec, ok := m.Accepted[storeKey(testName, snapName)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", interfaces.ErrNotFound, storeKey(testName, snapName))
	}
	return rec, nil
}

func (m *MockStore) SavePending(rec *models.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Pending[storeKey(rec.TestName(), rec.SnapName())] = rec
	return nil
}
