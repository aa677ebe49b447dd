package vlm

import "math"

const validOptionFields = "SpanwisePanels, ChordwisePanels, SpanwiseSpacing, ExploitSymmetry, CoreRadius, RCondFloor"

// SpacingFunc maps a uniform parameter in [0,1] to a panel-edge station in
// [0,1]. It must be monotonically increasing with f(0)=0 and f(1)=1.
type SpacingFunc func(t float64) float64

func LinearSpacing(t float64) float64 { return t }

// CosineSpacing clusters stations toward both ends, which resolves the tip
// loading gradient much faster than uniform spacing.
func CosineSpacing(t float64) float64 { return 0.5 * (1 - math.Cos(math.Pi*t)) }

// Options configures the lattice resolution and solver behavior. The zero
// value is not usable; start from DefaultOptions.
type Options struct {
	// Panels per wing section pair along the span, and per wing along the
	// chord. Chordwise spacing is always cosine.
	SpanwisePanels  int
	ChordwisePanels int

	// SpanwiseSpacing distributes the spanwise panel edges. Defaults to
	// CosineSpacing.
	SpanwiseSpacing SpacingFunc

	// ExploitSymmetry solves only the starboard half with image vortices
	// when both the airplane and the operating point are symmetric.
	ExploitSymmetry bool

	// CoreRadius softens the Biot-Savart denominators so that influence
	// expressions stay finite and differentiable everywhere.
	CoreRadius float64

	// RCondFloor is the reciprocal condition number below which the
	// standalone solve reports a SolverError instead of returning garbage.
	RCondFloor float64
}

func DefaultOptions() Options {
	return Options{
		SpanwisePanels:  8,
		ChordwisePanels: 8,
		SpanwiseSpacing: CosineSpacing,
		ExploitSymmetry: true,
		CoreRadius:      1.e-12,
		RCondFloor:      1.e-13,
	}
}

func (o *Options) Validate() error {
	if o.SpanwisePanels < 1 {
		return &OptionError{Field: "SpanwisePanels", Reason: "must be at least 1"}
	}
	if o.ChordwisePanels < 1 {
		return &OptionError{Field: "ChordwisePanels", Reason: "must be at least 1"}
	}
	if o.SpanwiseSpacing == nil {
		return &OptionError{Field: "SpanwiseSpacing", Reason: "must not be nil, use LinearSpacing or CosineSpacing"}
	}
	if o.CoreRadius <= 0 {
		return &OptionError{Field: "CoreRadius", Reason: "must be positive"}
	}
	if o.RCondFloor <= 0 || o.RCondFloor >= 1 {
		return &OptionError{Field: "RCondFloor", Reason: "must lie in (0,1)"}
	}
	return nil
}
