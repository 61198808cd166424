// SPDX-FileCopyrightText: 2022 SoftIron Limited <info@softiron.com>
// SPDX-License-Identifier: GNU General Public License v2.0 only WITH Classpath exception 2.0

package untwister

import "errors"

var (
	// ErrUnknownGenerator is returned when a session is pointed at a
	// generator name the prng registry doesn't recognize.
	ErrUnknownGenerator = errors.New("untwister: unknown generator")

	// ErrAlreadyRunning is returned by Bruteforce/InferState when the
	// session is not idle: while a search is in flight, and also after a
	// run has completed, until Reset returns the session to idle.
	ErrAlreadyRunning = errors.New("untwister: session already running")

	// ErrNotRunning is returned by Cancel and GetStatus when there is
	// nothing in flight (the session is idle or already completed).
	ErrNotRunning = errors.New("untwister: session is not running")

	// ErrInsufficientObservations is returned by InferState when no
	// observations have been added yet.
	ErrInsufficientObservations = errors.New("untwister: no observations have been added")

	// ErrInvalidRange is returned when a seed range's bounds are empty
	// or inverted (hi <= lo).
	ErrInvalidRange = errors.New("untwister: invalid seed range")

	// ErrInvalidConfiguration covers any other malformed session state
	// caught before a search starts (e.g. a confidence threshold outside
	// [0,100]).
	ErrInvalidConfiguration = errors.New("untwister: invalid session configuration")
)
