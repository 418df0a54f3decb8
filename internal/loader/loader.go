// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package loader reads task sets from HCL files.
//
// A file holds any number of dag blocks:
//
//	dag "camera" {
//	  period              = 100
//	  offset              = 5
//	  end_to_end_deadline = 80
//
//	  node {
//	    id             = 0
//	    execution_time = 10
//	    params         = { priority = 1 }
//	  }
//	  node {
//	    id             = 1
//	    execution_time = 20
//	  }
//	  edge {
//	    from = 0
//	    to   = 1
//	  }
//	}
//
// Node ids must cover 0..n-1. The period and offset are attached to the
// first source node and the deadline to the first sink, where the task
// accessors of [dag.Graph] look for them. All timings are whole numbers.
package loader

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/petenewcomb/dagsched-go/dag"
)

// TaskSet is a loaded set of DAGs. Names[i] is the label of Set[i].
type TaskSet struct {
	Names []string
	Set   dag.Set
}

type hclFile struct {
	DAGs []*hclDAG `hcl:"dag,block"`
}

type hclDAG struct {
	Name     string     `hcl:"name,label"`
	Period   int        `hcl:"period"`
	Offset   *int       `hcl:"offset,optional"`
	Deadline *int       `hcl:"end_to_end_deadline,optional"`
	Nodes    []*hclNode `hcl:"node,block"`
	Edges    []*hclEdge `hcl:"edge,block"`
}

type hclNode struct {
	ID            int            `hcl:"id"`
	ExecutionTime int            `hcl:"execution_time"`
	Params        map[string]int `hcl:"params,optional"`
}

type hclEdge struct {
	From   int  `hcl:"from"`
	To     int  `hcl:"to"`
	Weight *int `hcl:"weight,optional"`
}

// Load reads the file at path, or every *.hcl file directly inside path if
// it is a directory, in file name order. DAG ids follow the order in which
// dag blocks are read. The resulting set is validated.
func Load(path string) (*TaskSet, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	files := []string{path}
	if info.IsDir() {
		files, err = filepath.Glob(filepath.Join(path, "*.hcl"))
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("no .hcl files found in %s", path)
		}
	}

	parser := hclparse.NewParser()
	ts := &TaskSet{}
	for _, file := range files {
		f, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse %s: %w", file, diags)
		}
		if err := ts.decode(file, f); err != nil {
			return nil, err
		}
	}
	if err := ts.Set.Validate(); err != nil {
		return nil, fmt.Errorf("invalid task set: %w", err)
	}
	return ts, nil
}

// Parse reads a task set from HCL source. filename is used in diagnostics.
func Parse(src []byte, filename string) (*TaskSet, error) {
	f, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, diags)
	}
	ts := &TaskSet{}
	if err := ts.decode(filename, f); err != nil {
		return nil, err
	}
	if err := ts.Set.Validate(); err != nil {
		return nil, fmt.Errorf("invalid task set: %w", err)
	}
	return ts, nil
}

func (ts *TaskSet) decode(filename string, f *hcl.File) error {
	var parsed hclFile
	if diags := gohcl.DecodeBody(f.Body, nil, &parsed); diags.HasErrors() {
		return fmt.Errorf("failed to decode %s: %w", filename, diags)
	}
	for _, d := range parsed.DAGs {
		g, err := d.build()
		if err != nil {
			return fmt.Errorf("%s: dag %q: %w", filename, d.Name, err)
		}
		ts.Names = append(ts.Names, d.Name)
		ts.Set = append(ts.Set, g)
	}
	return nil
}

func (d *hclDAG) build() (*dag.Graph, error) {
	if len(d.Nodes) == 0 {
		return nil, errors.New("no nodes")
	}
	nodes := slices.SortedFunc(slices.Values(d.Nodes), func(a, b *hclNode) int {
		return cmp.Compare(a.ID, b.ID)
	})

	g := dag.New()
	for _, n := range nodes {
		if n.ExecutionTime < 0 {
			return nil, fmt.Errorf("node %d has negative execution_time %d", n.ID, n.ExecutionTime)
		}
		params := maps.Clone(n.Params)
		if params == nil {
			params = make(map[string]int)
		}
		params[dag.ExecutionTime] = n.ExecutionTime
		if err := g.AddNodeWithID(dag.NodeID(n.ID), params); err != nil {
			return nil, err
		}
	}
	for _, e := range d.Edges {
		for _, id := range []int{e.From, e.To} {
			if id < 0 || id >= g.NumNodes() {
				return nil, fmt.Errorf("edge %d->%d references node %d: %w", e.From, e.To, id, dag.ErrUnknownNode)
			}
		}
		weight := 0
		if e.Weight != nil {
			weight = *e.Weight
		}
		g.AddEdge(dag.NodeID(e.From), dag.NodeID(e.To), weight)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	head := g.SourceNodes()[0]
	g.SetParam(head, dag.Period, d.Period)
	if d.Offset != nil {
		g.SetParam(head, dag.Offset, *d.Offset)
	}
	if d.Deadline != nil {
		g.SetParam(g.SinkNodes()[0], dag.EndToEndDeadline, *d.Deadline)
	}
	return g, nil
}
