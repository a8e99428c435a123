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
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/stat"

	"github.com/notargets/gobem/shapes"
)

// ConvergenceStudy tracks an error measure against element size over refinement levels
type ConvergenceStudy struct {
	Title       string
	NumElements []int
	H           []float64 // Maximum element diameter
	Errors      []float64
}

func NewConvergenceStudy(title string) *ConvergenceStudy {
	return &ConvergenceStudy{Title: title}
}

func (cs *ConvergenceStudy) Add(numElements int, h, err float64) {
	cs.NumElements = append(cs.NumElements, numElements)
	cs.H = append(cs.H, h)
	cs.Errors = append(cs.Errors, err)
}

// Orders returns the observed order between each level and the one before it, NaN for the first level
func (cs *ConvergenceStudy) Orders() (orders []float64) {
	orders = make([]float64, len(cs.H))
	for i := range orders {
		if i == 0 {
			orders[i] = math.NaN()
			continue
		}
		orders[i] = math.Log(cs.Errors[i-1]/cs.Errors[i]) / math.Log(cs.H[i-1]/cs.H[i])
	}
	return
}

// FittedOrder is the least squares slope of log(error) against log(h) over all levels
func (cs *ConvergenceStudy) FittedOrder() float64 {
	if len(cs.H) < 2 {
		return math.NaN()
	}
	var (
		x = make([]float64, len(cs.H))
		y = make([]float64, len(cs.H))
	)
	for i := range cs.H {
		x[i], y[i] = math.Log(cs.H[i]), math.Log(cs.Errors[i])
	}
	_, beta := stat.LinearRegression(x, y, nil, false)
	return beta
}

func (cs *ConvergenceStudy) Print(w io.Writer) {
	fmt.Fprintf(w, "Title = %s\n", cs.Title)
	fmt.Fprintf(w, "%8s %12s %14s %8s\n", "Elements", "h", "Error", "Order")
	for i, order := range cs.Orders() {
		fmt.Fprintf(w, "%8d %12.6e %14.6e %8.4f\n", cs.NumElements[i], cs.H[i], cs.Errors[i], order)
	}
	fmt.Fprintf(w, "Fitted order = %.4f\n", cs.FittedOrder())
}

// WriteCSV writes one row per level with a header row
func (cs *ConvergenceStudy) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	ff := func(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }
	if err := cw.Write([]string{"title", "elements", "h", "error", "order"}); err != nil {
		return err
	}
	for i, order := range cs.Orders() {
		rec := []string{cs.Title, strconv.Itoa(cs.NumElements[i]), ff(cs.H[i]), ff(cs.Errors[i]), ff(order)}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// sphereConvergence measures the relative area error of the refined icosahedral sphere
func sphereConvergence(levels int) (cs *ConvergenceStudy, err error) {
	if levels < 1 {
		return nil, fmt.Errorf("need at least 1 level, have %d", levels)
	}
	cs = NewConvergenceStudy("sphere area")
	exact := 4 * math.Pi
	for level := 0; level < levels; level++ {
		g, err := shapes.RegularSphere(level)
		if err != nil {
			return nil, err
		}
		cs.Add(g.NumberOfElements(), g.MaximumElementDiameter(), math.Abs(exact-g.SurfaceArea())/exact)
	}
	return
}

// ConvergenceCmd reports the geometric convergence of sphere refinement
var ConvergenceCmd = &cobra.Command{
	Use:   "convergence",
	Short: "Report sphere area error and observed order per refinement level",
	Long: `Report the relative surface area error of the refined icosahedral sphere against 4*pi at each
refinement level, with the observed convergence order against the maximum element diameter.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		p := newProgress(loggerFromContext(cmd.Context()))
		cs, err := sphereConvergence(viper.GetInt("convergence.levels"))
		if err != nil {
			return err
		}
		p.done(fmt.Sprintf("Computed %d levels", len(cs.H)))
		cs.Print(cmd.OutOrStdout())
		if csvFile := viper.GetString("convergence.csv"); len(csvFile) != 0 {
			var f *os.File
			if f, err = os.Create(csvFile); err != nil {
				return err
			}
			defer f.Close()
			if err = cs.WriteCSV(f); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ConvergenceCmd)
	ConvergenceCmd.Flags().Int("levels", 5, "number of sphere levels, starting from the icosahedron")
	ConvergenceCmd.Flags().String("csv", "", "also write the study to a CSV file")
	_ = viper.BindPFlag("convergence.levels", ConvergenceCmd.Flags().Lookup("levels"))
	_ = viper.BindPFlag("convergence.csv", ConvergenceCmd.Flags().Lookup("csv"))
}
