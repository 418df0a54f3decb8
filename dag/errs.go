// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package dag

type constError string

func (e constError) Error() string {
	return string(e)
}

const ErrCycle = constError("graph contains a cycle")
const ErrDuplicateNode = constError("duplicate node id")
const ErrUnknownNode = constError("unknown node")
const ErrMissingExecutionTime = constError("node has no execution_time")
const ErrMissingPeriod = constError("graph has no period")
const ErrEmptySet = constError("set contains no graphs")
const ErrNegativeOffset = constError("negative release offset")
const ErrHyperPeriodOverflow = constError("hyperperiod overflows int")
