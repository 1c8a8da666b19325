package engine

import "errors"

var (
	// ErrStagesExhausted is returned by NextStage on the last stage
	ErrStagesExhausted = errors.New("no further stage")

	// ErrInvalidStage is returned by SetStage for an index outside the stage list
	ErrInvalidStage = errors.New("invalid stage index")

	// ErrNoStages is returned when the engine is started without stages
	ErrNoStages = errors.New("engine has no stages")

	// ErrInvalidGrid reports grid parameters that cannot form a grid
	ErrInvalidGrid = errors.New("invalid grid")

	// ErrInvalidEntity reports entity parameters that cannot form an entity
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrUnknownBehavior reports a behavior identifier missing from the registry
	ErrUnknownBehavior = errors.New("unknown behavior")
)
