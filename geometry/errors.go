package geometry

import "fmt"

// GeometryError reports a configuration that cannot be paneled: too few
// cross sections, or a degenerate (zero chord / zero span) section. It is
// fatal to the analysis that raised it and is never retried.
type GeometryError struct {
	Surface string
	Reason  string
}

func (e *GeometryError) Error() string {
	if e.Surface == "" {
		return fmt.Sprintf("geometry: %s", e.Reason)
	}
	return fmt.Sprintf("geometry: surface %q: %s", e.Surface, e.Reason)
}
