// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sched

import (
	"cmp"
	"slices"

	"github.com/petenewcomb/dagsched-go/dag"
)

// JobLog records one node's execution. In the single-DAG scheduler JobID is
// always 0; in the DAG-set scheduler it is the release count of the owning
// instance. A preempted job restarts from scratch: PreemptedTimes and
// RestartTimes record each interruption and the allocation that followed it,
// while StartTime keeps the first allocation.
type JobLog struct {
	CoreID         int   `yaml:"core_id"`
	DAGID          int   `yaml:"dag_id"`
	NodeID         int   `yaml:"node_id"`
	JobID          int   `yaml:"job_id"`
	StartTime      int   `yaml:"start_time"`
	FinishTime     int   `yaml:"finish_time"`
	Finished       bool  `yaml:"finished"`
	PreemptedTimes []int `yaml:"preempted_times,omitempty"`
	RestartTimes   []int `yaml:"restart_times,omitempty"`
}

// CoreLog records how busy one core was.
type CoreLog struct {
	CoreID        int     `yaml:"core_id"`
	TotalProcTime int     `yaml:"total_proc_time"`
	Utilization   float64 `yaml:"utilization"`
}

// ProcessorLog summarizes core usage over a schedule.
type ProcessorLog struct {
	AverageUtilization  float64   `yaml:"average_utilization"`
	VarianceUtilization float64   `yaml:"variance_utilization"`
	CoreLogs            []CoreLog `yaml:"core_logs"`
}

func newProcessorLog(numCores int) ProcessorLog {
	l := ProcessorLog{CoreLogs: make([]CoreLog, numCores)}
	for i := range l.CoreLogs {
		l.CoreLogs[i].CoreID = i
	}
	return l
}

func (l *ProcessorLog) addBusyTick(core int) {
	l.CoreLogs[core].TotalProcTime++
}

func (l *ProcessorLog) calculate(length int) {
	if length <= 0 || len(l.CoreLogs) == 0 {
		return
	}
	sum := 0.0
	for i := range l.CoreLogs {
		c := &l.CoreLogs[i]
		c.Utilization = float64(c.TotalProcTime) / float64(length)
		sum += c.Utilization
	}
	l.AverageUtilization = sum / float64(len(l.CoreLogs))
	variance := 0.0
	for _, c := range l.CoreLogs {
		d := c.Utilization - l.AverageUtilization
		variance += d * d
	}
	l.VarianceUtilization = variance / float64(len(l.CoreLogs))
}

type ProcessorInfo struct {
	NumberOfCores int `yaml:"number_of_cores"`
}

// DAGSchedulerLog is the result record of one single-DAG schedule.
type DAGSchedulerLog struct {
	DAGInfo        dag.Info      `yaml:"dag_info"`
	ProcessorInfo  ProcessorInfo `yaml:"processor_info"`
	ScheduleLength int           `yaml:"schedule_length"`
	NodeLogs       []JobLog      `yaml:"node_logs"`
	ProcessorLog   ProcessorLog  `yaml:"processor_log"`
}

// DAGLog records every released instance of one DAG.
type DAGLog struct {
	DAGID               int     `yaml:"dag_id"`
	ReleaseTimes        []int   `yaml:"release_times"`
	StartTimes          []int   `yaml:"start_times"`
	FinishTimes         []int   `yaml:"finish_times"`
	ResponseTimes       []int   `yaml:"response_times"`
	AverageResponseTime float64 `yaml:"average_response_time"`
	WorstResponseTime   int     `yaml:"worst_response_time"`
}

func (l *DAGLog) calculate() {
	l.ResponseTimes = l.ResponseTimes[:0]
	for i, f := range l.FinishTimes {
		l.ResponseTimes = append(l.ResponseTimes, f-l.ReleaseTimes[i])
	}
	l.AverageResponseTime, l.WorstResponseTime = 0, 0
	if len(l.ResponseTimes) == 0 {
		return
	}
	sum := 0
	for _, r := range l.ResponseTimes {
		sum += r
		l.WorstResponseTime = max(l.WorstResponseTime, r)
	}
	l.AverageResponseTime = float64(sum) / float64(len(l.ResponseTimes))
}

// DAGSetSchedulerLog is the result record of one DAG-set simulation.
type DAGSetSchedulerLog struct {
	DAGSetInfo    dag.SetInfo   `yaml:"dag_set_info"`
	ProcessorInfo ProcessorInfo `yaml:"processor_info"`
	Horizon       int           `yaml:"horizon"`
	DAGLogs       []DAGLog      `yaml:"dag_logs"`
	JobLogs       []JobLog      `yaml:"job_logs"`
	ProcessorLog  ProcessorLog  `yaml:"processor_log"`
}

type jobKey struct {
	dagID  int
	jobID  int
	nodeID dag.NodeID
}

// jobLogs accumulates job logs keyed by instance and node.
type jobLogs map[jobKey]*JobLog

func (m jobLogs) allocate(k jobKey, core, now int) {
	l, ok := m[k]
	if !ok {
		m[k] = &JobLog{
			CoreID:    core,
			DAGID:     k.dagID,
			NodeID:    int(k.nodeID),
			JobID:     k.jobID,
			StartTime: now,
		}
		return
	}
	l.CoreID = core
	l.RestartTimes = append(l.RestartTimes, now)
}

func (m jobLogs) preempt(k jobKey, now int) {
	l := m[k]
	l.PreemptedTimes = append(l.PreemptedTimes, now)
}

func (m jobLogs) finish(k jobKey, now int) {
	l := m[k]
	l.FinishTime = now
	l.Finished = true
}

// sorted returns the logs ordered by dag id, job id, then node id.
func (m jobLogs) sorted() []JobLog {
	logs := make([]JobLog, 0, len(m))
	for _, l := range m {
		logs = append(logs, *l)
	}
	slices.SortFunc(logs, func(a, b JobLog) int {
		return cmp.Or(
			cmp.Compare(a.DAGID, b.DAGID),
			cmp.Compare(a.JobID, b.JobID),
			cmp.Compare(a.NodeID, b.NodeID),
		)
	})
	return logs
}
