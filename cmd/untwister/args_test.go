// SPDX-FileCopyrightText: 2022 SoftIron Limited <info@softiron.com>
// SPDX-License-Identifier: GNU General Public License v2.0 only WITH Classpath exception 2.0

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateArgumentsAcceptsDefaults(t *testing.T) {
	args := &Arguments{Lo: 0, Hi: 4294967295, Threads: 4, MinConfidence: 100.0, Depth: 1000}
	assert.NoError(t, validateArguments(args))
}

func TestValidateArgumentsRejectsInvertedRange(t *testing.T) {
	args := &Arguments{Lo: 100, Hi: 0, Threads: 1, MinConfidence: 100.0, Depth: 1000}
	assert.Error(t, validateArguments(args))
}

func TestValidateArgumentsRejectsEqualBounds(t *testing.T) {
	args := &Arguments{Lo: 10, Hi: 10, Threads: 1, MinConfidence: 100.0, Depth: 1000}
	assert.Error(t, validateArguments(args))
}

func TestValidateArgumentsRejectsZeroThreads(t *testing.T) {
	args := &Arguments{Lo: 0, Hi: 10, Threads: 0, MinConfidence: 100.0, Depth: 1000}
	assert.Error(t, validateArguments(args))
}

func TestValidateArgumentsRejectsOutOfRangeConfidence(t *testing.T) {
	args := &Arguments{Lo: 0, Hi: 10, Threads: 1, MinConfidence: 150.0, Depth: 1000}
	assert.Error(t, validateArguments(args))
}

func TestValidateArgumentsRejectsHiAboveUint32(t *testing.T) {
	args := &Arguments{Lo: 0, Hi: 1 << 40, Threads: 1, MinConfidence: 100.0, Depth: 1000}
	assert.Error(t, validateArguments(args))
}

func TestValidateArgumentsRejectsNonPositiveDepth(t *testing.T) {
	args := &Arguments{Lo: 0, Hi: 10, Threads: 1, MinConfidence: 100.0, Depth: 0}
	assert.Error(t, validateArguments(args))
}
