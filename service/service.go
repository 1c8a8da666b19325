// Package service orders the host's long-lived subsystems through a shared lifecycle
package service

// Service defines the lifecycle interface for infrastructure subsystems
// Services manage long-lived resources: audio backends, script VMs, input pumps
//
// Lifecycle:
//  1. Construction
//  2. Init() - acquire resources, after every dependency has initialised
//  3. Start() - launch background goroutines
//  4. [runtime operation]
//  5. Stop() - halt goroutines, release resources, in reverse start order
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Init before this one
	Dependencies() []string

	Init() error
	Start() error

	// Stop must be idempotent
	Stop() error
}

// Funcs adapts plain functions to Service; nil functions are no-ops
type Funcs struct {
	ID      string
	Deps    []string
	InitFn  func() error
	StartFn func() error
	StopFn  func() error
}

func (f *Funcs) Name() string           { return f.ID }
func (f *Funcs) Dependencies() []string { return f.Deps }

func (f *Funcs) Init() error {
	if f.InitFn == nil {
		return nil
	}
	return f.InitFn()
}

func (f *Funcs) Start() error {
	if f.StartFn == nil {
		return nil
	}
	return f.StartFn()
}

func (f *Funcs) Stop() error {
	if f.StopFn == nil {
		return nil
	}
	return f.StopFn()
}
