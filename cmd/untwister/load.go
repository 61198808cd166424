// SPDX-FileCopyrightText: 2022 SoftIron Limited <info@softiron.com>
// SPDX-License-Identifier: GNU General Public License v2.0 only WITH Classpath exception 2.0

package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// loadObservations reads a JSON array of observed PRNG outputs from
// path, e.g. "[1274851200, 3920185673, 112]".
func loadObservations(path string) ([]uint32, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading observations file: %w", err)
	}

	var values []uint32
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("parsing observations file %q as a JSON array of numbers: %w", path, err)
	}
	return values, nil
}
