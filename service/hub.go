package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	ErrDuplicate = errors.New("duplicate service")
	ErrMissing   = errors.New("missing dependency")
	ErrCycle     = errors.New("dependency cycle")
)

// Hub runs services in dependency order
// Not safe for concurrent use; the host drives it from main
type Hub struct {
	log      *zap.Logger
	services map[string]Service
	names    []string // Registration order, tie-break for the sort
	order    []Service
	started  []Service
}

// NewHub creates an empty hub; nil log means Nop
func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{log: log, services: make(map[string]Service)}
}

// Add registers s
func (h *Hub) Add(s Service) error {
	if _, ok := h.services[s.Name()]; ok {
		return fmt.Errorf("service %q: %w", s.Name(), ErrDuplicate)
	}
	h.services[s.Name()] = s
	h.names = append(h.names, s.Name())
	return nil
}

// Order returns service names in init order
func (h *Hub) Order() ([]string, error) {
	if err := h.resolve(); err != nil {
		return nil, err
	}
	names := make([]string, len(h.order))
	for i, s := range h.order {
		names[i] = s.Name()
	}
	return names, nil
}

// resolve sorts services depth-first so dependencies come first
func (h *Hub) resolve() error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(h.services))
	order := make([]Service, 0, len(h.services))

	var visit func(name, from string) error
	visit = func(name, from string) error {
		s, ok := h.services[name]
		if !ok {
			return fmt.Errorf("service %q needs %q: %w", from, name, ErrMissing)
		}
		switch state[name] {
		case visiting:
			return fmt.Errorf("service %q: %w", name, ErrCycle)
		case done:
			return nil
		}
		state[name] = visiting
		for _, dep := range s.Dependencies() {
			if err := visit(dep, name); err != nil {
				return err
			}
		}
		state[name] = done
		order = append(order, s)
		return nil
	}

	for _, name := range h.names {
		if err := visit(name, ""); err != nil {
			return err
		}
	}
	h.order = order
	return nil
}

// Init initialises every service in dependency order, stopping at the first failure
func (h *Hub) Init() error {
	if err := h.resolve(); err != nil {
		return err
	}
	for _, s := range h.order {
		if err := s.Init(); err != nil {
			return fmt.Errorf("init %s: %w", s.Name(), err)
		}
		h.log.Debug("service initialized", zap.String("service", s.Name()))
	}
	return nil
}

// Start starts services in init order; on failure the ones already started are stopped
func (h *Hub) Start() error {
	for _, s := range h.order {
		if err := s.Start(); err != nil {
			h.Stop()
			return fmt.Errorf("start %s: %w", s.Name(), err)
		}
		h.started = append(h.started, s)
		h.log.Debug("service started", zap.String("service", s.Name()))
	}
	return nil
}

// Stop stops started services in reverse order; errors are logged and the first is returned
func (h *Hub) Stop() error {
	var first error
	for i := len(h.started) - 1; i >= 0; i-- {
		s := h.started[i]
		if err := s.Stop(); err != nil {
			h.log.Warn("service stop failed", zap.String("service", s.Name()), zap.Error(err))
			if first == nil {
				first = fmt.Errorf("stop %s: %w", s.Name(), err)
			}
		}
	}
	h.started = nil
	return first
}
