// Package loader provides the plugin-like feature loading system.
//
// Each feature implements the Feature interface and mounts its routes on a Fiber
// router. The Manager keeps features in registration order:
//   - Register adds a feature
//   - LoadAll loads every enabled feature and reports which ones were mounted
//
// The matches and registry features are the two HTTP surfaces of the pipeline;
// both are wired through this package by the start command.
package loader
