// Package project handles persistence of scene documents and result
// snapshots as JSON files.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/patterngen/internal/model"
)

// SaveScene writes a scene document to a JSON file, creating parent
// directories as needed.
func SaveScene(path string, scene model.Scene) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(scene, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadScene reads a scene document from a JSON file. Settings are
// normalized on load so a hand-edited file cannot smuggle invalid
// numerics into the engine.
func LoadScene(path string) (model.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Scene{}, err
	}
	var scene model.Scene
	if err := json.Unmarshal(data, &scene); err != nil {
		return model.Scene{}, fmt.Errorf("parse scene %s: %w", path, err)
	}
	scene.Settings = scene.Settings.Normalized()
	return scene, nil
}

// SaveResult writes a result snapshot next to its input key so callers
// can later verify the snapshot still matches the scene.
func SaveResult(path string, result model.Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadResult reads a previously saved result snapshot. A missing file
// is not an error: it returns an empty result and ok=false.
func LoadResult(path string) (model.Result, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.Result{}, false, nil
		}
		return model.Result{}, false, err
	}
	var result model.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return model.Result{}, false, fmt.Errorf("parse result %s: %w", path, err)
	}
	return result, true, nil
}

// CachedResult returns the saved snapshot only when its input key
// matches the scene's current inputs; a stale snapshot is discarded.
func CachedResult(path string, scene model.Scene) (model.Result, bool) {
	result, ok, err := LoadResult(path)
	if err != nil || !ok {
		return model.Result{}, false
	}
	if result.InputKey != scene.InputKey() {
		return model.Result{}, false
	}
	return result, true
}
