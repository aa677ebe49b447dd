package vlm

import (
	"time"

	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"
)

// PlotSpanLoading opens an interactive chart of the spanwise lift
// distribution. No-op unless showGraph is set; the optional delay keeps the
// window alive after plotting.
func (v *VortexLatticeMethod) PlotSpanLoading(showGraph bool, graphDelay ...time.Duration) error {
	if !showGraph {
		return nil
	}
	y, cl, err := v.StripLoading()
	if err != nil {
		return err
	}
	var (
		yMin, yMax   = y[0], y[len(y)-1]
		clMin, clMax = cl[0], cl[0]
	)
	for _, c := range cl {
		if c < clMin {
			clMin = c
		}
		if c > clMax {
			clMax = c
		}
	}
	chart := chart2d.NewChart2D(1920, 1280,
		float32(yMin), float32(yMax), float32(clMin)-0.1, float32(clMax)+0.1)
	colorMap := utils2.NewColorMap(-1, 1, 1)
	go chart.Plot()
	if err = chart.AddSeries("cl", y, cl,
		chart2d.XGlyph, chart2d.Solid, colorMap.GetRGB(0.0)); err != nil {
		return err
	}
	if len(graphDelay) != 0 {
		time.Sleep(graphDelay[0])
	}
	return nil
}
