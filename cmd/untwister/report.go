// SPDX-FileCopyrightText: 2022 SoftIron Limited <info@softiron.com>
// SPDX-License-Identifier: GNU General Public License v2.0 only WITH Classpath exception 2.0

package main

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/sibench-labs/untwister/internal/bruteforce"
	"github.com/sibench-labs/untwister/internal/infer"
)

// prettyPrint dumps i as indented JSON, the same helper shape the
// teacher's CLI uses for its --verbose argument dump.
func prettyPrint(i interface{}) string {
	j, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		return fmt.Sprintf("Error printing %v: %v", i, err)
	}
	return string(j)
}

func reportBruteforce(matches []bruteforce.Match, tried uint64) {
	fmt.Printf("Tried %s seeds.\n", humanize.Comma(int64(tried)))
	if len(matches) == 0 {
		fmt.Println("No matching seed found.")
		return
	}
	for _, m := range matches {
		fmt.Printf("seed=%d (0x%08x)  confidence=%.0f%%\n", m.Seed, m.Seed, m.Confidence)
	}
}

func reportInfer(result infer.Result) {
	fmt.Printf("Best match at observation offset %s, confidence=%.0f%%\n",
		humanize.Comma(int64(result.Offset)), result.Confidence)
	if result.SeedFound {
		fmt.Printf("Recovered seed: %d (0x%08x)\n", result.Seed, result.Seed)
	} else {
		fmt.Println("State recovered, but the seed could not be reversed from it.")
	}
}

func reportSample(values []uint32) {
	for _, v := range values {
		fmt.Println(v)
	}
}
