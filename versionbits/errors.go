// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package versionbits

import "errors"

var (
	// ErrInvalidPeriod is returned when a deployment's Period is <= 0.
	ErrInvalidPeriod = errors.New("versionbits: period must be positive")

	// ErrInvalidThreshold is returned when Threshold falls outside
	// [0, Period].
	ErrInvalidThreshold = errors.New("versionbits: threshold must be between 0 and period")

	// ErrInvalidBlockRange is returned when both BeginBlock and EndBlock
	// are set but EndBlock is before BeginBlock.
	ErrInvalidBlockRange = errors.New("versionbits: end_block must be >= begin_block")
)
