// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package cli

import (
	"fmt"
	"io"

	"github.com/petenewcomb/dagsched-go/dag"
	"github.com/petenewcomb/dagsched-go/federated"
	"github.com/petenewcomb/dagsched-go/internal/loader"
	"github.com/petenewcomb/dagsched-go/internal/report"
	"github.com/petenewcomb/dagsched-go/processor"
	"github.com/petenewcomb/dagsched-go/sched"
	"go.uber.org/zap"
)

// Run loads the task set named by c and runs the selected algorithm. Logs
// are written as YAML to w, or into c.OutDir when it is set. An
// unschedulable verdict from the federated test is reported and then
// returned as an *ExitError with code 1.
func Run(c *Config, logger *zap.Logger, w io.Writer) error {
	ts, err := loader.Load(c.TaskSetPath)
	if err != nil {
		return err
	}
	logger.Info("loaded task set",
		zap.String("path", c.TaskSetPath),
		zap.Strings("dags", ts.Names),
		zap.Float64("utilization", ts.Set.Info().TotalUtilization))

	r := &runner{c: c, logger: logger, w: w, names: ts.Names}
	switch c.Algorithm {
	case Federated:
		return r.federated(ts.Set)
	case ListFP:
		assignMissingPriorities(ts.Set)
		return r.list(ts.Set, sched.FixedPriority)
	case ListEDF:
		return r.list(ts.Set, sched.DeadlineFactor)
	case ListLFT:
		return r.list(ts.Set, sched.LatestFinishTime)
	case DAGSetEDF:
		return r.dagSet(ts.Set)
	case DAGSetFP:
		assignMissingPriorities(ts.Set)
		return r.dagSet(ts.Set, sched.WithPriority(sched.ParamPriority(dag.Priority)))
	case DAGSetFederated:
		result, requirements := federated.Allocate(ts.Set, c.Cores)
		if !result.Schedulable {
			return r.unschedulable(result)
		}
		logger.Info("federated partition", zap.Any("requirements", requirements))
		return r.dagSet(ts.Set, sched.WithCoreRequirements(requirements))
	default:
		return &ExitError{Code: 2, Message: fmt.Sprintf("unknown algorithm %q", c.Algorithm)}
	}
}

type runner struct {
	c      *Config
	logger *zap.Logger
	w      io.Writer
	names  []string
}

func (r *runner) federated(set dag.Set) error {
	result := federated.Check(set, r.c.Cores)
	if !result.Schedulable {
		return r.unschedulable(result)
	}
	r.logger.Info("task set is schedulable",
		zap.Int("high_cores", result.HighCores),
		zap.Int("low_cores", result.LowCores))
	return r.emit(result, func(dir string) (string, error) {
		return report.DumpFile(dir, r.c.Algorithm, result)
	})
}

func (r *runner) unschedulable(result federated.Result) error {
	r.logger.Info("task set is not schedulable",
		zap.String("reason", result.Reason),
		zap.Int("shortfall", result.Shortfall))
	if err := report.Dump(r.w, result); err != nil {
		return err
	}
	return &ExitError{Code: 1, Message: result.String()}
}

func (r *runner) list(set dag.Set, ordering sched.Ordering) error {
	s := sched.NewListScheduler(ordering, sched.WithLogger(r.logger))
	s.SetProcessor(processor.New[*dag.Node](r.c.Cores))
	var logs []*sched.DAGSchedulerLog
	for dagID, g := range set {
		s.SetGraph(g)
		length, _ := s.Schedule()
		r.logger.Info("scheduled dag",
			zap.Int("dag", dagID),
			zap.String("name", r.names[dagID]),
			zap.Int("length", length),
			zap.Int("critical_path", g.CriticalPathLength()))
		if r.c.OutDir == "" {
			logs = append(logs, s.Log())
			continue
		}
		path, err := s.DumpLog(r.c.OutDir, fmt.Sprintf("%s-%s", r.c.Algorithm, r.names[dagID]))
		if err != nil {
			return err
		}
		r.logger.Info("wrote log", zap.String("path", path))
	}
	if r.c.OutDir == "" {
		return report.Dump(r.w, logs)
	}
	return nil
}

func (r *runner) dagSet(set dag.Set, opts ...sched.Option) error {
	opts = append(opts, sched.WithLogger(r.logger))
	if r.c.Preemptive {
		opts = append(opts, sched.WithPreemption())
	}
	s, err := sched.NewDAGSetScheduler(set, r.c.Cores, opts...)
	if err != nil {
		return err
	}
	horizon := s.Schedule()
	for _, l := range s.Log().DAGLogs {
		r.logger.Info("simulated dag",
			zap.Int("dag", l.DAGID),
			zap.String("name", r.names[l.DAGID]),
			zap.Int("released", len(l.ReleaseTimes)),
			zap.Int("finished", len(l.FinishTimes)),
			zap.Int("worst_response_time", l.WorstResponseTime))
	}
	r.logger.Info("simulation complete", zap.Int("horizon", horizon))
	return r.emit(s.Log(), func(dir string) (string, error) {
		return s.DumpLog(dir, r.c.Algorithm)
	})
}

// emit writes v to the output writer, or through dump into the output
// directory when one is configured.
func (r *runner) emit(v any, dump func(dir string) (string, error)) error {
	if r.c.OutDir == "" {
		return report.Dump(r.w, v)
	}
	path, err := dump(r.c.OutDir)
	if err != nil {
		return err
	}
	r.logger.Info("wrote log", zap.String("path", path))
	return nil
}

// assignMissingPriorities gives every graph lacking a priority on any node
// the critical-path-first priorities.
func assignMissingPriorities(set dag.Set) {
	for _, g := range set {
		for _, n := range g.Nodes() {
			if _, ok := n.Param(dag.Priority); !ok {
				g.ApplyParams(dag.Priority, g.AssignCriticalPathPriorities())
				break
			}
		}
	}
}
