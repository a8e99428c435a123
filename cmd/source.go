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
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/notargets/gobem/InputParameters"
	"github.com/notargets/gobem/grid"
	"github.com/notargets/gobem/readers"
	"github.com/notargets/gobem/shapes"
	"github.com/notargets/gobem/utils"
)

// resolveJob reads the job file when one is given, otherwise it describes the grid source from the flags
func resolveJob() (job *InputParameters.MeshJob, err error) {
	if jf := viper.GetString("job"); len(jf) != 0 {
		return InputParameters.ReadMeshJob(jf)
	}
	job = InputParameters.NewMeshJob()
	job.GridFile = viper.GetString("gridFile")
	job.Shape = viper.GetString("shape")
	job.ShapeLevel = viper.GetInt("shapeLevel")
	if err = job.Validate(); err != nil {
		return nil, err
	}
	return
}

func buildShape(shape string, level int) (g *grid.Grid, err error) {
	switch shape {
	case "sphere":
		return shapes.RegularSphere(level)
	case "cube":
		return shapes.Cube()
	case "tetrahedron":
		return shapes.Tetrahedron()
	default:
		return nil, fmt.Errorf("unknown shape %q", shape)
	}
}

// buildGrid reads or builds the job's grid and applies its refinement levels
func buildGrid(ctx context.Context, job *InputParameters.MeshJob) (g *grid.Grid, err error) {
	var (
		logger = loggerFromContext(ctx)
		p      = newProgress(logger)
	)
	if len(job.GridFile) != 0 {
		g, err = readers.ReadMeshFile(job.GridFile)
	} else {
		g, err = buildShape(job.Shape, job.ShapeLevel)
	}
	if err != nil {
		return nil, err
	}
	for n := 0; n < job.RefinementLevels; n++ {
		if g, err = g.Refine(); err != nil {
			return nil, fmt.Errorf("refinement level %d: %w", n+1, err)
		}
		logger.Debug("refined", "level", n+1, "elements", g.NumberOfElements())
	}
	p.done(fmt.Sprintf("Grid ready with %d elements", g.NumberOfElements()))
	logger.Debug("memory", utils.MemUsage()...)
	return
}
