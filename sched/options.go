// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sched

import (
	"maps"

	"go.uber.org/zap"
)

type options struct {
	logger       *zap.Logger
	preemptive   bool
	priority     Priority
	requirements map[int]int
}

func defaultOptions() options {
	return options{
		logger:   zap.NewNop(),
		priority: EarliestDeadline,
	}
}

// Option configures a scheduler.
type Option func(*options)

// WithLogger sends scheduling events to logger at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPreemption lets the DAG-set scheduler preempt the running node with
// the largest priority key when a ready node has a strictly smaller one.
func WithPreemption() Option {
	return func(o *options) {
		o.preemptive = true
	}
}

// WithPriority sets the DAG-set ready-queue key. The default is
// EarliestDeadline.
func WithPriority(p Priority) Option {
	return func(o *options) {
		o.priority = p
	}
}

// WithCoreRequirements makes the DAG-set scheduler partition cores: a ready
// instance starts only when its DAG's requirement fits in the cores not
// reserved by running instances, and then runs at most that many nodes at
// once. DAGs absent from requirements need one core.
func WithCoreRequirements(requirements map[int]int) Option {
	return func(o *options) {
		o.requirements = maps.Clone(requirements)
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return o
}
