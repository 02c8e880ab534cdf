package providers

import (
	"snappy/internal/structures"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *structures.Config {
	return &structures.Config{
		Snapshots: structures.SnapshotsConfig{
			Root: "/tmp/snaps",
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
		Cache: structures.CacheConfig{
			Enabled: true,
			Size:    8,
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptySnapshotRoot(t *testing.T) {
	c := validConfig()
	c.Snapshots.Root = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_EmptyLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_NegativeCacheSize(t *testing.T) {
	c := validConfig()
	c.Cache.Size = -1
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ArtifactsWithoutDir(t *testing.T) {
	c := validConfig()
	c.Artifacts.Enabled = true
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())

	c.Artifacts.Dir = "/tmp/artifacts"
	assert.NoError(t, v.Validate())
}
