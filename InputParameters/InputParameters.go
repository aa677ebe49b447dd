package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"

	"github.com/aerolab/govlm/geometry"
	"github.com/aerolab/govlm/opti"
	"github.com/aerolab/govlm/vlm"
)

// Parameters obtained from the YAML case file
type CaseParameters struct {
	Title string `yaml:"Title"`

	// Operating point
	Velocity float64 `yaml:"Velocity"`
	Rho      float64 `yaml:"Rho"`
	Mu       float64 `yaml:"Mu"`
	Mach     float64 `yaml:"Mach"`
	Alpha    float64 `yaml:"Alpha"`
	Beta     float64 `yaml:"Beta"`
	P        float64 `yaml:"P"`
	Q        float64 `yaml:"Q"`
	R        float64 `yaml:"R"`

	// Lattice
	SpanwisePanels  int    `yaml:"SpanwisePanels"`
	ChordwisePanels int    `yaml:"ChordwisePanels"`
	SpanwiseSpacing string `yaml:"SpanwiseSpacing"`
	ExploitSymmetry *bool  `yaml:"ExploitSymmetry"`

	// Configuration
	XYZRef    [3]float64           `yaml:"XYZRef"`
	Wings     []WingParameters     `yaml:"Wings"`
	Fuselages []FuselageParameters `yaml:"Fuselages"`
}

type WingParameters struct {
	Name      string              `yaml:"Name"`
	Symmetric bool                `yaml:"Symmetric"`
	XYZLe     [3]float64          `yaml:"XYZLe"`
	Sections  []SectionParameters `yaml:"Sections"`
}

type SectionParameters struct {
	XYZLe              [3]float64 `yaml:"XYZLe"`
	Chord              float64    `yaml:"Chord"`
	Twist              float64    `yaml:"Twist"`
	Airfoil            string     `yaml:"Airfoil"`
	ControlDeflection  float64    `yaml:"ControlDeflection"`
	ControlIsSymmetric bool       `yaml:"ControlIsSymmetric"`
}

type FuselageParameters struct {
	Name     string                      `yaml:"Name"`
	XYZLe    [3]float64                  `yaml:"XYZLe"`
	Sections []FuselageSectionParameters `yaml:"Sections"`
}

type FuselageSectionParameters struct {
	XYZc   [3]float64 `yaml:"XYZc"`
	Width  float64    `yaml:"Width"`
	Height float64    `yaml:"Height"`
}

// NewCaseParameters seeds the defaults a case file may override.
func NewCaseParameters() *CaseParameters {
	return &CaseParameters{
		Velocity:        10,
		Rho:             1.225,
		Mu:              1.81e-5,
		SpanwisePanels:  8,
		ChordwisePanels: 8,
		SpanwiseSpacing: "cosine",
	}
}

func (cp *CaseParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, cp)
}

func (cp *CaseParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", cp.Title)
	fmt.Printf("%8.5f\t\t= Velocity\n", cp.Velocity)
	fmt.Printf("%8.5f\t\t= Alpha\n", cp.Alpha)
	fmt.Printf("%8.5f\t\t= Beta\n", cp.Beta)
	fmt.Printf("[%d x %d]\t\t= Spanwise x Chordwise Panels\n", cp.SpanwisePanels, cp.ChordwisePanels)
	fmt.Printf("[%s]\t\t= Spanwise Spacing\n", cp.SpanwiseSpacing)
	for _, w := range cp.Wings {
		fmt.Printf("Wing[%s] = %d sections, symmetric: %v\n", w.Name, len(w.Sections), w.Symmetric)
	}
	for _, f := range cp.Fuselages {
		fmt.Printf("Fuselage[%s] = %d sections\n", f.Name, len(f.Sections))
	}
}

func buildAirfoil(name string) (*geometry.Airfoil, error) {
	switch name {
	case "", "flat_plate":
		return geometry.NewFlatPlate(), nil
	default:
		return geometry.NewNACA4(name)
	}
}

func vec(f [3]float64) geometry.Vec3 { return geometry.NewVec3(f[0], f[1], f[2]) }

// BuildAirplane assembles the configuration described by the case file.
func (cp *CaseParameters) BuildAirplane() (*geometry.Airplane, error) {
	var wings []*geometry.Wing
	for _, wp := range cp.Wings {
		w := &geometry.Wing{
			Name:      wp.Name,
			XYZLe:     vec(wp.XYZLe),
			Symmetric: wp.Symmetric,
		}
		for _, sp := range wp.Sections {
			af, err := buildAirfoil(sp.Airfoil)
			if err != nil {
				return nil, fmt.Errorf("wing %q: %w", wp.Name, err)
			}
			w.XSecs = append(w.XSecs, &geometry.WingXSec{
				XYZLe:              vec(sp.XYZLe),
				Chord:              opti.Const(sp.Chord),
				Twist:              opti.Const(sp.Twist),
				Airfoil:            af,
				ControlDeflection:  opti.Const(sp.ControlDeflection),
				ControlIsSymmetric: sp.ControlIsSymmetric,
			})
		}
		wings = append(wings, w)
	}
	var fuselages []*geometry.Fuselage
	for _, fp := range cp.Fuselages {
		f := &geometry.Fuselage{Name: fp.Name, XYZLe: vec(fp.XYZLe)}
		for _, sp := range fp.Sections {
			f.XSecs = append(f.XSecs, &geometry.FuselageXSec{
				XYZc:   vec(sp.XYZc),
				Width:  opti.Const(sp.Width),
				Height: opti.Const(sp.Height),
			})
		}
		fuselages = append(fuselages, f)
	}
	a := geometry.NewAirplane(cp.Title, vec(cp.XYZRef), wings, fuselages)
	return a, a.Validate()
}

func (cp *CaseParameters) BuildOperatingPoint() *vlm.OperatingPoint {
	op := vlm.NewOperatingPoint()
	op.Velocity = opti.Const(cp.Velocity)
	op.Rho = opti.Const(cp.Rho)
	op.Mu = opti.Const(cp.Mu)
	op.Mach = opti.Const(cp.Mach)
	op.Alpha = opti.Const(cp.Alpha)
	op.Beta = opti.Const(cp.Beta)
	op.P = opti.Const(cp.P)
	op.Q = opti.Const(cp.Q)
	op.R = opti.Const(cp.R)
	return op
}

func (cp *CaseParameters) BuildOptions() (vlm.Options, error) {
	opts := vlm.DefaultOptions()
	opts.SpanwisePanels = cp.SpanwisePanels
	opts.ChordwisePanels = cp.ChordwisePanels
	if cp.ExploitSymmetry != nil {
		opts.ExploitSymmetry = *cp.ExploitSymmetry
	}
	switch cp.SpanwiseSpacing {
	case "", "cosine":
		opts.SpanwiseSpacing = vlm.CosineSpacing
	case "linear":
		opts.SpanwiseSpacing = vlm.LinearSpacing
	default:
		return opts, fmt.Errorf("unknown SpanwiseSpacing %q, expected cosine or linear", cp.SpanwiseSpacing)
	}
	return opts, opts.Validate()
}
