// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package versionbits

import "github.com/dblokhin/cuckoo-consensus/blockindex"

// ConditionChecker parameterizes the threshold state machine. The
// reference implementation uses a virtual-method base class for this;
// Go has no inheritance, so a deployment is instead any type
// implementing this seven-method interface over its own parameters.
type ConditionChecker interface {
	BeginTime() int64
	EndTime() int64
	Period() int32
	Threshold() int32
	BeginBlock() int32
	EndBlock() int32
	Condition(bi *blockindex.BlockIndex) bool
}

// deploymentChecker is the ConditionChecker for a standard version-bits
// deployment: a block signals by setting the deployment's bit in its
// version field, with the top three bits fixed to the versionbits
// marker pattern.
type deploymentChecker struct {
	params DeploymentParams
}

// NewDeploymentChecker builds the ConditionChecker for a version-bits
// deployment, validating its parameters once up front so every later
// State/Statistics/StateSinceHeight call can assume them sound.
func NewDeploymentChecker(params DeploymentParams) (ConditionChecker, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return deploymentChecker{params: params}, nil
}

func (c deploymentChecker) BeginTime() int64  { return c.params.StartTime }
func (c deploymentChecker) EndTime() int64    { return c.params.Timeout }
func (c deploymentChecker) Period() int32     { return c.params.Period }
func (c deploymentChecker) Threshold() int32  { return c.params.Threshold }
func (c deploymentChecker) BeginBlock() int32 { return c.params.BeginBlock }
func (c deploymentChecker) EndBlock() int32   { return c.params.EndBlock }

func (c deploymentChecker) Condition(bi *blockindex.BlockIndex) bool {
	version := uint32(bi.Version)
	return version&TopMask == TopBits && version&c.params.Mask() != 0
}
