package model

// Mode selects the placement strategy.
type Mode string

const (
	ModeOrganic Mode = "organic" // density-driven rejection sampling
	ModeLattice Mode = "lattice" // deterministic grid placement
)

// EdgeBehavior controls how the tile edges are treated.
type EdgeBehavior string

const (
	EdgeFinite           EdgeBehavior = "finite"
	EdgeSeamlessWrapping EdgeBehavior = "seamlessWrapping"
)

// OffsetStrategy shifts alternating lattice cells to break up the grid.
type OffsetStrategy string

const (
	OffsetNone         OffsetStrategy = "none"
	OffsetRowShift     OffsetStrategy = "rowShift"     // odd rows shifted horizontally
	OffsetColumnShift  OffsetStrategy = "columnShift"  // odd columns shifted vertically
	OffsetCheckerShift OffsetStrategy = "checkerShift" // odd-parity cells shifted diagonally
)

// DefaultMaxAttempts is the per-slot rejection-sampling budget. The
// value is empirical; changing it changes the reproducible output for a
// given seed, so it is only ever overridden explicitly.
const DefaultMaxAttempts = 20

// Settings holds placement engine configuration.
type Settings struct {
	Mode         Mode         `json:"mode"`
	Seed         uint64       `json:"seed"`
	EdgeBehavior EdgeBehavior `json:"edge_behavior"`

	// Organic mode tuning
	MinimumSpacing   float64 `json:"minimum_spacing"`    // buffer between footprints
	Density          float64 `json:"density"`            // 0..1
	MaximumItemCount int     `json:"maximum_item_count"` // hard cap on placements
	MaxAttempts      int     `json:"max_attempts"`       // per-slot attempt budget

	// Lattice mode tuning
	CellSize       float64        `json:"cell_size"`       // desired lattice cell dimension
	OffsetStrategy OffsetStrategy `json:"offset_strategy"` //
	OffsetFraction float64        `json:"offset_fraction"` // fraction of a cell to shift
	ItemOrder      []string       `json:"item_order,omitempty"`

	// Shared
	CircleSegments int `json:"circle_segments"` // circle tessellation for collision
}

// DefaultSettings returns the engine defaults.
func DefaultSettings() Settings {
	return Settings{
		Mode:             ModeOrganic,
		Seed:             1,
		EdgeBehavior:     EdgeFinite,
		MinimumSpacing:   0,
		Density:          0.5,
		MaximumItemCount: 500,
		MaxAttempts:      DefaultMaxAttempts,
		CellSize:         50,
		OffsetStrategy:   OffsetNone,
		OffsetFraction:   0.5,
		CircleSegments:   DefaultCircleSegments,
	}
}

// Normalized clamps invalid numeric inputs to safe values. The engine
// always produces some well-defined (possibly empty) output rather than
// rejecting a configuration.
func (s Settings) Normalized() Settings {
	if s.Mode != ModeLattice {
		s.Mode = ModeOrganic
	}
	if s.EdgeBehavior != EdgeSeamlessWrapping {
		s.EdgeBehavior = EdgeFinite
	}
	if s.MinimumSpacing < 0 {
		s.MinimumSpacing = 0
	}
	if s.Density < 0 {
		s.Density = 0
	}
	if s.Density > 1 {
		s.Density = 1
	}
	if s.MaximumItemCount < 0 {
		s.MaximumItemCount = 0
	}
	if s.MaxAttempts <= 0 {
		s.MaxAttempts = DefaultMaxAttempts
	}
	if s.CellSize < 1 {
		s.CellSize = 1
	}
	switch s.OffsetStrategy {
	case OffsetRowShift, OffsetColumnShift, OffsetCheckerShift:
	default:
		s.OffsetStrategy = OffsetNone
	}
	// Zero is a valid choice (an offset strategy with no shift); only
	// negative values are replaced.
	if s.OffsetFraction < 0 {
		s.OffsetFraction = 0.5
	}
	if s.CircleSegments <= 0 {
		s.CircleSegments = DefaultCircleSegments
	}
	if s.CircleSegments < MinCircleSegments {
		s.CircleSegments = MinCircleSegments
	}
	return s
}
