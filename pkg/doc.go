// Package pkg provides the core libraries for Flexline space distribution.
//
// # Overview
//
// Flexline answers one question: given a total amount of one-dimensional
// space and a set of named regions with bounds, priorities, and proportional
// shares, how big is each region? The pkg directory is organized into small
// focused packages:
//
//  1. [flex] - The distributor itself (pure, stateless)
//  2. [profile] - Wire format for named distribution requests (JSON/TOML)
//  3. [pipeline] - Orchestration (validate → cache → solve → quantize)
//  4. [cache] - Solve result caching (file, redis, null backends)
//  5. [store] - Named profile persistence (memory, mongodb)
//  6. [errors] - Coded errors shared by the CLI and HTTP surfaces
//
// # Architecture
//
// The typical data flow through Flexline:
//
//	Profile file / HTTP request
//	         ↓
//	    [profile] package (decode + validate)
//	         ↓
//	    [pipeline] package (cache lookup, options)
//	         ↓
//	    [flex] package (tiered proportional distribution)
//	         ↓
//	    allocations (table, JSON, interactive preview)
//
// # Quick Start
//
// Distribute space directly with the core package:
//
//	import "github.com/matzehuels/flexline/pkg/flex"
//
//	sizes, err := flex.Distribute(1000, map[string]flex.Group{
//	    "sidebar": flex.Single(flex.NewRegion(flex.WithMin(10), flex.WithMax(100))),
//	    "content": flex.Single(flex.NewRegion(flex.WithShare(3))),
//	    "gutter":  flex.Single(flex.NewRegion()),
//	})
//
// Or run a profile through the full pipeline with caching:
//
//	import (
//	    "github.com/matzehuels/flexline/pkg/pipeline"
//	    "github.com/matzehuels/flexline/pkg/profile"
//	)
//
//	p, _ := profile.ReadProfileFile("editor.json")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	defer runner.Close()
//	result, err := runner.Solve(ctx, p, pipeline.Options{})
package pkg
