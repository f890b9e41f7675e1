package model

import (
	"encoding/json"
	"hash/fnv"
)

// Scene ties a tile, its item candidates, and the placement settings
// together for save/load and for one engine invocation.
type Scene struct {
	Name     string          `json:"name"`
	Width    float64         `json:"width"`
	Height   float64         `json:"height"`
	Items    []PlacementItem `json:"items"`
	Pinned   []PlacedItem    `json:"pinned,omitempty"` // fixed obstacles, never moved
	Settings Settings        `json:"settings"`
}

// NewScene returns an empty scene with default settings.
func NewScene(name string, width, height float64) Scene {
	return Scene{
		Name:     name,
		Width:    width,
		Height:   height,
		Items:    []PlacementItem{},
		Settings: DefaultSettings(),
	}
}

// InputKey returns a stable 64-bit key over every input that influences
// placement. Two scenes with equal keys produce identical results, so
// callers can skip recomputation or discard stale in-flight runs.
func (s Scene) InputKey() uint64 {
	data, err := json.Marshal(s)
	if err != nil {
		return 0
	}
	h := fnv.New64a()
	h.Write(data)
	return h.Sum64()
}

// Result is the immutable snapshot produced by one placement run.
// Placement order is acceptance order and is significant for
// deterministic re-rendering or diffing.
type Result struct {
	Placements  []PlacedItem `json:"placements"`
	InputKey    uint64       `json:"input_key"`
	TargetCount int          `json:"target_count"`
}
