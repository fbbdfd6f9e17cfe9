// Package evorunner evolves populations of small fixed-topology feedforward
// networks to play a side-scrolling obstacle-jumping task.
//
// There is no gradient descent. Each generation runs until every agent has
// collided with the obstacle; the agents are then ranked by how long they
// survived. The champion is carried over unchanged, most of the rest are
// re-derived from the champion by small random perturbations, and the worst
// ranked are reinitialized at random to keep the population diverse.
//
// Packages:
//
//	evo/nn     activations, neurons, layers and the feedforward network
//	evo        configuration, agents, the population and its reproduction step
//	runner     the obstacle task: sensing, jump physics, collision, world tick loop
//	telemetry  per-generation CSV output and the run manifest
//
// Basic usage:
//
//	evoConfig, err := evo.LoadConfig("path/to/run.ini")
//	if err != nil {
//		log.Fatalf("Error loading config: %v", err)
//	}
//	runnerConfig, err := runner.LoadConfig("path/to/run.ini")
//	if err != nil {
//		log.Fatalf("Error loading config: %v", err)
//	}
//
//	pop, err := evo.NewPopulation(evoConfig, nil)
//	if err != nil {
//		log.Fatalf("Error creating population: %v", err)
//	}
//	world, err := runner.NewWorld(runnerConfig, pop)
//	if err != nil {
//		log.Fatalf("Error creating world: %v", err)
//	}
//
//	// Run 100 generations.
//	err = world.Run(ctx, runner.RunOptions{MaxGenerations: 100})
package evorunner
