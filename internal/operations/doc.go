// Package operations runs an input file through the ordered pipeline steps
// load, clean, align and write.
//
// Core Components:
//
// Manager: executes the registered steps sequentially against one
// OperationState. Each step runs in its own span and timeout; its duration
// and outcome are recorded in the pipeline metrics. The first failing step
// stops the run and the remaining steps are marked skipped.
//
// Step: a single unit of work. A step may return ErrStepSkipped to skip
// itself, or halt the state to skip everything after it.
//
// Registry: keeps steps in registration order.
//
// OperationState: carries the table and the per-stage statistics between
// steps.
//
// Pipeline: builds a fresh manager per input from a config.Config.
//
// Example usage:
//
//	pipeline, err := operations.NewPipeline(cfg, operations.PipelineOptions{Logger: logger})
//	if err != nil {
//		return err
//	}
//	state, err := pipeline.Run(ctx, "sensors.csv", "sensors_cleaned.csv")
package operations
