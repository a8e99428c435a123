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
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gobem/device"
	"github.com/notargets/gobem/fmm"
	"github.com/notargets/gobem/spatial"
	"github.com/notargets/gobem/types"
	"github.com/notargets/gobem/utils"
)

// InfoCmd reports the topology and geometry of a grid
var InfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Report counts, bounding box, element sizes and boundary of a grid",
	Long: `Report counts, bounding box, element sizes and boundary of a grid, along with the octree sizing
and device buffer size it would need. Optionally locate the element nearest to a point.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		job, err := resolveJob()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("precision") || len(viper.GetString("job")) == 0 {
			job.Precision = viper.GetString("info.precision")
		}
		g, err := buildGrid(cmd.Context(), job)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		job.Fprint(out)
		fmt.Fprint(out, g.String())

		opts := fmm.DefaultOptions()
		opts.ExpansionOrder, opts.NCritical, opts.MaxLevel = job.FMM.ExpansionOrder, job.FMM.NCritical, job.FMM.MaxLevel
		if tp, err := fmm.NewTreeParameters(g, g, opts); err != nil {
			fmt.Fprintf(out, "  Octree: %v\n", err)
		} else {
			fmt.Fprintf(out, "  Octree: %s\n", tp)
		}

		precision, err := types.NewPrecision(job.Precision)
		if err != nil {
			return err
		}
		gi, err := device.Push(g, device.NewContext("info"), precision)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  Device buffer (%s): %d bytes\n", precision, len(gi.Buffer))
		fmt.Fprintf(out, "  BLAS: %s\n", utils.BLASImplementation)

		if loc := viper.GetString("info.locate"); len(loc) != 0 {
			var p r3.Vec
			if p, err = parsePoint(loc); err != nil {
				return err
			}
			element, dist := spatial.NewElementLocator(g).Nearest(p)
			domain := int(g.DomainIndices()[element])
			fmt.Fprintf(out, "  Nearest element to %s: %d at distance %.6g, domain %d",
				loc, element, dist, domain)
			if name := job.DomainName(domain); len(name) != 0 {
				fmt.Fprintf(out, " (%s)", name)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func parsePoint(s string) (p r3.Vec, err error) {
	fields := strings.Split(s, ",")
	if len(fields) != 3 {
		err = fmt.Errorf("point %q should be x,y,z", s)
		return
	}
	var xyz [3]float64
	for i, f := range fields {
		if xyz[i], err = strconv.ParseFloat(strings.TrimSpace(f), 64); err != nil {
			return p, fmt.Errorf("point %q: %w", s, err)
		}
	}
	return r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

func init() {
	rootCmd.AddCommand(InfoCmd)
	InfoCmd.Flags().String("locate", "", "report the element with centroid nearest to the point x,y,z")
	InfoCmd.Flags().String("precision", "double", "device buffer precision: single or double")
	_ = viper.BindPFlag("info.locate", InfoCmd.Flags().Lookup("locate"))
	_ = viper.BindPFlag("info.precision", InfoCmd.Flags().Lookup("precision"))
}
