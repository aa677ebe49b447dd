/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/aerolab/govlm/InputParameters"
	"github.com/aerolab/govlm/mesher"
	"github.com/aerolab/govlm/vlm"
)

type SolveRun struct {
	CaseFile string
	MeshFile string
	Graph    bool
	Delay    time.Duration
	Profile  bool
}

// solveCmd represents the solve command
var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a single analysis case described by a YAML file",
	Long: `
Reads the configuration and operating point from a YAML case file, solves the
lattice and prints the force and moment coefficients.

govlm solve -I case.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		sr := &SolveRun{}
		sr.CaseFile, _ = cmd.Flags().GetString("caseFile")
		sr.MeshFile, _ = cmd.Flags().GetString("meshFile")
		sr.Graph, _ = cmd.Flags().GetBool("graph")
		dr, _ := cmd.Flags().GetInt("delay")
		sr.Delay = time.Duration(dr) * time.Millisecond
		sr.Profile, _ = cmd.Flags().GetBool("profile")
		cp := processCase(sr)
		RunSolve(sr, cp)
	},
}

func processCase(sr *SolveRun) (cp *InputParameters.CaseParameters) {
	if len(sr.CaseFile) == 0 {
		fmt.Printf("error: must supply a case file (-I, --caseFile) in YAML format\n")
		exampleFile := `
########################################
Title: "AR5 Flat Plate"
Velocity: 10
Alpha: 5
SpanwisePanels: 8
ChordwisePanels: 8
Wings:
  - Name: "Main Wing"
    Symmetric: true
    Sections:
      - XYZLe: [0, 0, 0]
        Chord: 1
      - XYZLe: [0, 2.5, 0]
        Chord: 1
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	data, err := ioutil.ReadFile(sr.CaseFile)
	if err != nil {
		panic(err)
	}
	cp = InputParameters.NewCaseParameters()
	if err = cp.Parse(data); err != nil {
		panic(err)
	}
	return
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().StringP("caseFile", "I", "", "YAML case file with geometry, operating point and lattice options")
	solveCmd.Flags().StringP("meshFile", "F", "", "write the solved lattice and bodies to a legacy VTK file")
	solveCmd.Flags().BoolP("graph", "g", false, "display the spanwise loading after solving")
	solveCmd.Flags().IntP("delay", "d", 5000, "milliseconds to keep the loading graph open")
	solveCmd.Flags().Bool("profile", false, "write a CPU profile of the solve")
}

func RunSolve(sr *SolveRun, cp *InputParameters.CaseParameters) {
	cp.Print()
	airplane, err := cp.BuildAirplane()
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	op := cp.BuildOperatingPoint()
	opts, err := cp.BuildOptions()
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}

	if sr.Profile {
		defer profile.Start().Stop()
	}
	v, err := vlm.New(airplane, op, opts, nil)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	fmt.Print(v.Report())

	if len(sr.MeshFile) != 0 {
		m, mErr := v.PanelMesh()
		if mErr != nil {
			panic(mErr)
		}
		if mErr = mesher.ExportVTK(sr.MeshFile, m); mErr != nil {
			panic(mErr)
		}
		fmt.Printf("wrote mesh to %s\n", sr.MeshFile)
	}
	if err = v.PlotSpanLoading(sr.Graph, sr.Delay); err != nil {
		panic(err)
	}
}
