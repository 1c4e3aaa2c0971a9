package gbrt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// ManifestSuffix names the companion file carrying the ordered
// feature-column list the ensemble was trained on.
const ManifestSuffix = ".features.json"

// Artifact couples a trained ensemble with its feature manifest. The
// two are stored as sibling files keyed by a shared base name but are
// only ever saved and loaded together: the manifest is the sole valid
// column order for the ensemble, so loading one without the other is
// not supported.
type Artifact struct {
	Ensemble *Ensemble
	// Features is the exact ordered column selection used at training
	// time. Scoring must select and order input columns by it.
	Features []string
}

func (a *Artifact) Save(path string) error {
	if a.Ensemble == nil || len(a.Ensemble.Trees) == 0 {
		return fmt.Errorf("refusing to save an empty ensemble")
	}
	if len(a.Features) == 0 {
		return fmt.Errorf("refusing to save an artifact without a feature manifest")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}

	blob, err := msgpack.Marshal(a.Ensemble)
	if err != nil {
		return fmt.Errorf("failed to encode ensemble: %w", err)
	}
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		return fmt.Errorf("failed to write model file: %w", err)
	}

	manifest, err := json.Marshal(a.Features)
	if err != nil {
		return fmt.Errorf("failed to encode feature manifest: %w", err)
	}
	if err := os.WriteFile(path+ManifestSuffix, manifest, 0o644); err != nil {
		return fmt.Errorf("failed to write feature manifest: %w", err)
	}
	return nil
}

func LoadArtifact(path string) (*Artifact, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}
	ensemble := &Ensemble{}
	if err := msgpack.Unmarshal(blob, ensemble); err != nil {
		return nil, fmt.Errorf("failed to decode model file %s: %w", path, err)
	}
	if len(ensemble.Trees) == 0 {
		return nil, fmt.Errorf("model file %s holds no trees", path)
	}

	manifestBlob, err := os.ReadFile(path + ManifestSuffix)
	if err != nil {
		return nil, fmt.Errorf("failed to read feature manifest: %w", err)
	}
	features := []string{}
	if err := json.Unmarshal(manifestBlob, &features); err != nil {
		return nil, fmt.Errorf("failed to decode feature manifest: %w", err)
	}
	if len(features) == 0 {
		return nil, fmt.Errorf("feature manifest %s is empty", path+ManifestSuffix)
	}

	return &Artifact{Ensemble: ensemble, Features: features}, nil
}
