package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/patterngen/internal/model"
)

func testScene() model.Scene {
	scene := model.NewScene("garden", 200, 100)
	scene.Items = []model.PlacementItem{{
		ID:            "fern",
		Label:         "Fern",
		Weight:        2,
		RotationRange: model.Range{Min: 0, Max: 360},
		ScaleRange:    model.Range{Min: 0.5, Max: 1.5},
		Shape:         model.NewCircleShape(model.Point2D{}, 4),
	}}
	scene.Pinned = []model.PlacedItem{{
		ItemID:   "rock",
		Position: model.Point2D{X: 50, Y: 50},
		Scale:    1,
		Shape:    model.NewRectangleShape(model.Point2D{}, model.Size2D{Width: 10, Height: 10}),
	}}
	return scene
}

func TestSceneRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "scene.json")
	scene := testScene()

	require.NoError(t, SaveScene(path, scene))

	loaded, err := LoadScene(path)
	require.NoError(t, err)
	assert.Equal(t, scene, loaded)
}

func TestLoadScene_NormalizesSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	scene := testScene()
	scene.Settings.Density = 9
	scene.Settings.MinimumSpacing = -2

	require.NoError(t, SaveScene(path, scene))

	loaded, err := LoadScene(path)
	require.NoError(t, err)
	assert.Equal(t, 1.0, loaded.Settings.Density)
	assert.Zero(t, loaded.Settings.MinimumSpacing)
}

func TestLoadScene_Errors(t *testing.T) {
	_, err := LoadScene(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	_, err = LoadScene(path)
	assert.Error(t, err)
}

func TestResultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	result := model.Result{
		Placements: []model.PlacedItem{{
			ItemID:   "fern",
			Position: model.Point2D{X: 10, Y: 20},
			Rotation: 1.25,
			Scale:    0.9,
			Shape:    model.NewCircleShape(model.Point2D{}, 4),
		}},
		InputKey:    12345,
		TargetCount: 40,
	}

	require.NoError(t, SaveResult(path, result))

	loaded, ok, err := LoadResult(path)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, result, loaded)
}

func TestLoadResult_MissingFileIsNotAnError(t *testing.T) {
	result, ok, err := LoadResult(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, result.Placements)
}

func TestCachedResult(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "result.json")
	scene := testScene()

	fresh := model.Result{InputKey: scene.InputKey(), TargetCount: 7}
	require.NoError(t, SaveResult(path, fresh))

	cached, ok := CachedResult(path, scene)
	require.True(t, ok)
	assert.Equal(t, fresh, cached)

	// Changing any input invalidates the snapshot.
	scene.Settings.Seed++
	_, ok = CachedResult(path, scene)
	assert.False(t, ok)

	// A missing snapshot is simply a cache miss.
	_, ok = CachedResult(filepath.Join(dir, "missing.json"), scene)
	assert.False(t, ok)
}
