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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gobem/readers"
)

// RefineCmd refines a grid uniformly and writes it in Gmsh format
var RefineCmd = &cobra.Command{
	Use:   "refine",
	Short: "Uniformly refine a grid and write it as a Gmsh 2.2 file",
	Long: `Uniformly refine a grid and write it as a Gmsh 2.2 file. Every refinement level splits each
element into four through its edge midpoints, domain indices are inherited.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		job, err := resolveJob()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("levels") || len(viper.GetString("job")) == 0 {
			job.RefinementLevels = viper.GetInt("refine.levels")
		}
		if cmd.Flags().Changed("output") || len(job.OutputFile) == 0 {
			job.OutputFile = viper.GetString("refine.output")
		}
		if job.RefinementLevels < 0 {
			return fmt.Errorf("refinement levels must be non negative, have %d", job.RefinementLevels)
		}
		if len(job.OutputFile) == 0 {
			return fmt.Errorf("must supply an output file (-o, --output)")
		}
		job.Fprint(cmd.OutOrStdout())
		g, err := buildGrid(cmd.Context(), job)
		if err != nil {
			return err
		}
		if err = readers.WriteGmshFile(job.OutputFile, g); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d vertices, %d elements to %s\n",
			g.NumberOfVertices(), g.NumberOfElements(), job.OutputFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(RefineCmd)
	RefineCmd.Flags().IntP("levels", "n", 1, "number of uniform refinements")
	RefineCmd.Flags().StringP("output", "o", "", "Gmsh file to write")
	_ = viper.BindPFlag("refine.levels", RefineCmd.Flags().Lookup("levels"))
	_ = viper.BindPFlag("refine.output", RefineCmd.Flags().Lookup("output"))
}
