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
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	profiler interface{ Stop() }
)

var rootCmd = &cobra.Command{
	Use:   "gobem",
	Short: "Topology and geometry of triangulated surface grids",
	Long: `gobem builds triangulated surface grids from shapes or Gmsh files, reports their topology and
geometry, refines them and checks the geometric convergence of refinement.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := log.InfoLevel
		if viper.GetBool("verbose") {
			level = log.DebugLevel
		}
		logger := newLogger(cmd.ErrOrStderr(), level)
		log.SetDefault(logger)
		cmd.SetContext(withLogger(cmd.Context(), logger))
		return startProfile(viper.GetString("profile"))
	},
}

// Execute runs the command line, main exits non zero when it returns an error
func Execute() error {
	defer stopProfile()
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gobem.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("profile", "", "write a cpu or mem profile to the current directory")
	rootCmd.PersistentFlags().StringP("job", "j", "", "YAML or TOML mesh job file, overrides the grid source flags")
	rootCmd.PersistentFlags().StringP("gridFile", "F", "", "Gmsh 2.2 (.msh) surface grid to read")
	rootCmd.PersistentFlags().String("shape", "sphere", "shape to build when no grid file is given: sphere, cube or tetrahedron")
	rootCmd.PersistentFlags().Int("shapeLevel", 0, "sphere refinement level")
	for _, name := range []string{"verbose", "profile", "job", "gridFile", "shape", "shapeLevel"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			log.Warn("cannot locate home directory", "err", err)
			return
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".gobem")
	}
	viper.SetEnvPrefix("GOBEM")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		log.Debug("using config file", "file", viper.ConfigFileUsed())
	}
}

func startProfile(mode string) error {
	switch strings.ToLower(mode) {
	case "":
	case "cpu":
		profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	case "mem":
		profiler = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	default:
		return fmt.Errorf("unknown profile mode %q, should be one of cpu or mem", mode)
	}
	return nil
}

func stopProfile() {
	if profiler != nil {
		profiler.Stop()
		profiler = nil
	}
}
