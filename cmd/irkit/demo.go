package main

import (
	"fmt"
	"os"

	"irkit/internal/dialect"
	"irkit/internal/ir"
	"irkit/internal/snapshot"
)

// newRegistry builds the kind registry used by every subcommand.
func newRegistry() (*ir.Registry, error) {
	reg := ir.NewRegistry()
	if err := dialect.Register(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// demoModule builds (1 + 2) + (3 * 4), the stock input for fold and snap
// when no snapshot file is given.
func demoModule() *ir.Operation {
	m := dialect.NewModule()
	body := dialect.Body(m)

	c1 := dialect.NewConstantInt(1, 64)
	c2 := dialect.NewConstantInt(2, 64)
	add := dialect.NewAddI(c1.Result(0), c2.Result(0))
	c3 := dialect.NewConstantInt(3, 64)
	c4 := dialect.NewConstantInt(4, 64)
	mul := dialect.NewMulI(c3.Result(0), c4.Result(0))
	sum := dialect.NewAddI(add.Result(0), mul.Result(0))

	body.PushBack(c1, c2, add, c3, c4, mul, sum)
	return m
}

// loadModule reads a module from a snapshot file, or returns the demo
// module when path is empty.
func loadModule(path string, reg *ir.Registry) (*ir.Operation, error) {
	if path == "" {
		return demoModule(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	module, err := snapshot.Decode(data, reg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return module, nil
}

// saveModule encodes a module and writes it to path.
func saveModule(path string, module *ir.Operation) (snapshot.Digest, error) {
	data, err := snapshot.Encode(module)
	if err != nil {
		return snapshot.Digest{}, fmt.Errorf("failed to encode module: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return snapshot.Digest{}, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return snapshot.Sum(data), nil
}
