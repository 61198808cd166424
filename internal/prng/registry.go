// SPDX-FileCopyrightText: 2022 SoftIron Limited <info@softiron.com>
// SPDX-License-Identifier: GNU General Public License v2.0 only WITH Classpath exception 2.0

package prng

import "sort"

// registry is populated by each variant file's init(), the same "self
// registering factory" shape the teacher's CreateGenerator switch plays,
// reshaped into a map so adding a variant never means editing this file.
var registry = map[string]Factory{}

func register(name string, f Factory) {
	if _, exists := registry[name]; exists {
		panic("prng: duplicate registration for " + name)
	}
	registry[name] = f
}

// Names returns the registered generator names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsSupported reports whether name is a registered generator.
func IsSupported(name string) bool {
	_, ok := registry[name]
	return ok
}

// New constructs a fresh Generator for name, or an error if name is not
// registered.
func New(name string) (Generator, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, errUnknown(name)
	}
	return factory(), nil
}
