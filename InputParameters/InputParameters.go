package InputParameters

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ghodss/yaml"
)

/*
MeshJob describes a grid to build or read, how far to refine it and where to write it. Shape is one of
sphere, cube or tetrahedron and ShapeLevel refines the sphere, both are ignored when GridFile is set.
Domains names domain indices, keyed by the decimal index.
*/
type MeshJob struct {
	Title            string            `json:"Title" toml:"Title"`
	Shape            string            `json:"Shape" toml:"Shape"`
	ShapeLevel       int               `json:"ShapeLevel" toml:"ShapeLevel"`
	GridFile         string            `json:"GridFile" toml:"GridFile"`
	RefinementLevels int               `json:"RefinementLevels" toml:"RefinementLevels"`
	OutputFile       string            `json:"OutputFile" toml:"OutputFile"`
	Precision        string            `json:"Precision" toml:"Precision"`
	Domains          map[string]string `json:"Domains" toml:"Domains"`
	FMM              FMMParameters     `json:"FMM" toml:"FMM"`
}

type FMMParameters struct {
	ExpansionOrder int `json:"ExpansionOrder" toml:"ExpansionOrder"`
	NCritical      int `json:"NCritical" toml:"NCritical"`
	MaxLevel       int `json:"MaxLevel" toml:"MaxLevel"`
}

func NewMeshJob() *MeshJob {
	return &MeshJob{
		Shape:     "sphere",
		Precision: "double",
		FMM: FMMParameters{
			ExpansionOrder: 10,
			NCritical:      100,
			MaxLevel:       -1,
		},
	}
}

// Parse reads YAML, fields absent from data keep their current values
func (mj *MeshJob) Parse(data []byte) error {
	return yaml.Unmarshal(data, mj)
}

func (mj *MeshJob) ParseTOML(data []byte) error {
	return toml.Unmarshal(data, mj)
}

// ReadMeshJob reads a job file, .toml files are TOML and anything else is YAML
func ReadMeshJob(filename string) (mj *MeshJob, err error) {
	var data []byte
	if data, err = os.ReadFile(filename); err != nil {
		return
	}
	mj = NewMeshJob()
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		err = mj.ParseTOML(data)
	default:
		err = mj.Parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	if err = mj.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return
}

func (mj *MeshJob) Validate() error {
	if len(mj.GridFile) == 0 {
		switch mj.Shape {
		case "sphere", "cube", "tetrahedron":
		default:
			return fmt.Errorf("unknown shape %q, should be one of sphere, cube or tetrahedron", mj.Shape)
		}
	}
	if mj.ShapeLevel < 0 {
		return fmt.Errorf("shape level must be non negative, have %d", mj.ShapeLevel)
	}
	if mj.RefinementLevels < 0 {
		return fmt.Errorf("refinement levels must be non negative, have %d", mj.RefinementLevels)
	}
	switch mj.Precision {
	case "single", "double", "float32", "float64":
	default:
		return fmt.Errorf("unknown precision %q", mj.Precision)
	}
	if _, err := mj.domainIndices(); err != nil {
		return err
	}
	return nil
}

// DomainName returns the name given to a domain index, or the empty string
func (mj *MeshJob) DomainName(index int) string {
	return mj.Domains[strconv.Itoa(index)]
}

// domainIndices returns the named domain indices in ascending order
func (mj *MeshJob) domainIndices() (keys []int, err error) {
	keys = make([]int, 0, len(mj.Domains))
	for k := range mj.Domains {
		var index int
		if index, err = strconv.Atoi(k); err != nil || index < 0 || strconv.Itoa(index) != k {
			return nil, fmt.Errorf("domain key %q is not a non negative integer", k)
		}
		keys = append(keys, index)
	}
	sort.Ints(keys)
	return
}

// Fprint echoes the job, one parameter per line
func (mj *MeshJob) Fprint(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", mj.Title)
	if len(mj.GridFile) != 0 {
		fmt.Fprintf(w, "[%s]\t\t= Grid File\n", mj.GridFile)
	} else {
		fmt.Fprintf(w, "[%s]\t\t\t= Shape\n", mj.Shape)
		fmt.Fprintf(w, "[%d]\t\t\t\t= Shape Level\n", mj.ShapeLevel)
	}
	fmt.Fprintf(w, "[%d]\t\t\t\t= Refinement Levels\n", mj.RefinementLevels)
	fmt.Fprintf(w, "[%s]\t\t\t= Precision\n", mj.Precision)
	if len(mj.OutputFile) != 0 {
		fmt.Fprintf(w, "[%s]\t\t= Output File\n", mj.OutputFile)
	}
	fmt.Fprintf(w, "[%d, %d, %d]\t\t= FMM Expansion Order, NCritical, MaxLevel\n",
		mj.FMM.ExpansionOrder, mj.FMM.NCritical, mj.FMM.MaxLevel)
	keys, _ := mj.domainIndices()
	for _, key := range keys {
		fmt.Fprintf(w, "Domains[%d] = %s\n", key, mj.DomainName(key))
	}
}
