package storage

import (
	"os"
	"path/filepath"
	"snappy/internal/models"
	"snappy/internal/providers"
	"snappy/internal/storage/interfaces"
	"snappy/internal/structures"

	json "github.com/goccy/go-json"
)

const artifactExt = ".json.zst"

// ArtifactManager persists finished runs as zstd-compressed JSON so CI can
// keep them next to the pending snapshots they produced.
type ArtifactManager struct {
	dir        string
	enabled    bool
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewArtifactManager(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) *ArtifactManager {
	return &ArtifactManager{
		dir:        conf.Artifacts.Dir,
		enabled:    conf.Artifacts.Enabled,
		compressor: compressor,
		logger:     logger,
	}
}

func (a *ArtifactManager) Enabled() bool {
	return a.enabled
}

// Save writes the artifact as <dir>/run-<id>.json.zst and returns the path.
// A disabled manager writes nothing and returns an empty path.
func (a *ArtifactManager) Save(artifact *models.RunArtifact) (string, error) {
	if !a.enabled {
		return "", nil
	}

	jsonData, err := json.Marshal(artifact)
	if err != nil {
		return "", err
	}
	data, err := a.compressor.Compress(jsonData)
	if err != nil {
		return "", err
	}

	if err = os.MkdirAll(a.dir, 0755); err != nil {
		return "", err
	}

	fileName := filepath.Join(a.dir, "run-"+artifact.RunID+artifactExt)
	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return "", err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return "", err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return "", err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return "", err
	}

	if err = os.Rename(tmpFile, fileName); err != nil {
		return "", err
	}
	a.logger.Infof(providers.TypeRun, "Saved run artifact %s", fileName)
	return fileName, nil
}

func (a *ArtifactManager) Load(fileName string) (*models.RunArtifact, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}

	decompressed, err := a.compressor.Decompress(data)
	if err != nil {
		return nil, err
	}

	var artifact models.RunArtifact
	if err := json.Unmarshal(decompressed, &artifact); err != nil {
		return nil, err
	}
	return &artifact, nil
}

// List returns artifact paths oldest first; run IDs sort by creation time.
func (a *ArtifactManager) List() ([]string, error) {
	return filepath.Glob(filepath.Join(a.dir, "run-*"+artifactExt))
}

func (a *ArtifactManager) Close() {
	a.compressor.Close()
}
