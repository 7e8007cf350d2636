package input

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// DefaultMaxDualSense is the default cap on DualSense slots.
const DefaultMaxDualSense = 4

// RegistryConfig configures a Registry.
type RegistryConfig struct {
	MaxDualSense int              `name:"max-dualsense" help:"Maximum number of DualSense controllers to open" default:"4" env:"GEFPAD_INPUT_MAX_DUALSENSE"`
	Normalizer   NormalizerConfig `embed:""`
}

// Registry owns the controllers of one session: either 1..MaxDualSense
// DualSense slots or a single legacy slot, never both.
type Registry struct {
	family      Family
	controllers []*Controller
	logger      *slog.Logger

	closeOnce sync.Once
	closeErr  error
	mu        sync.RWMutex
	closed    bool
}

// NewRegistry enumerates DualSense controllers first and falls back to a
// single legacy controller when none are found. Either enumerator may be
// nil. If the legacy enumeration fails too, the registry still has one
// slot whose every poll fails with ErrNoDevice.
func NewRegistry(cfg RegistryConfig, dualsense, legacy Enumerator, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxDualSense <= 0 {
		cfg.MaxDualSense = DefaultMaxDualSense
	}
	norm := NewNormalizer(cfg.Normalizer)
	r := &Registry{logger: logger}

	if dualsense != nil {
		backends, err := dualsense.Enumerate(cfg.MaxDualSense)
		if err != nil {
			logger.Warn("DualSense enumeration failed", "error", err)
		}
		backends = r.capBackends(backends, cfg.MaxDualSense)
		if len(backends) > 0 {
			r.family = FamilyDualSense
			for i, b := range backends {
				c := newController(i, FamilyDualSense, b, norm)
				c.output.PlayerLEDs.Mask = PlayerLEDMaskForSlot(i)
				r.controllers = append(r.controllers, c)
				logger.Info("DualSense controller opened", "slot", i, "name", b.Name())
			}
			return r
		}
	}

	r.family = FamilyLegacy
	var backend Backend
	if legacy != nil {
		backends, err := legacy.Enumerate(1)
		switch {
		case err != nil:
			logger.Warn("Legacy joystick enumeration failed", "error", err)
		case len(backends) == 0:
			logger.Warn("No controller found")
		default:
			backends = r.capBackends(backends, 1)
			backend = backends[0]
			logger.Info("Legacy controller opened", "slot", 0, "name", backend.Name())
		}
	}
	r.controllers = []*Controller{newController(0, FamilyLegacy, backend, norm)}
	return r
}

func (r *Registry) capBackends(backends []Backend, max int) []Backend {
	var out []Backend
	for _, b := range backends {
		if b == nil {
			continue
		}
		if len(out) == max {
			if err := b.Close(); err != nil {
				r.logger.Debug("Failed to close surplus controller", "name", b.Name(), "error", err)
			}
			continue
		}
		out = append(out, b)
	}
	return out
}

// Family returns the protocol family chosen at construction.
func (r *Registry) Family() Family {
	return r.family
}

// Count returns the number of slots.
func (r *Registry) Count() int {
	return len(r.controllers)
}

// Controller returns the controller at index, or nil if out of range.
func (r *Registry) Controller(index int) *Controller {
	if index < 0 || index >= len(r.controllers) {
		return nil
	}
	return r.controllers[index]
}

// States returns a snapshot of every slot's state.
func (r *Registry) States() []ControllerState {
	out := make([]ControllerState, len(r.controllers))
	for i, c := range r.controllers {
		out[i] = c.State()
	}
	return out
}

// UpdateAll polls every slot once. The result has one entry per slot; a
// failing slot keeps its previous state and does not affect the others.
func (r *Registry) UpdateAll() []error {
	errs := make([]error, len(r.controllers))
	// Close waits for an in-flight poll before tearing backends down.
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		for i := range errs {
			errs[i] = ErrClosed
		}
		return errs
	}
	for i, c := range r.controllers {
		errs[i] = c.update()
	}
	return errs
}

// Close sends a zeroed output request to every DualSense controller and
// releases all backends. It is safe to call more than once.
func (r *Registry) Close() error {
	r.closeOnce.Do(func() {
		r.mu.Lock()
		r.closed = true
		r.mu.Unlock()

		var errs []error
		for _, c := range r.controllers {
			if c.backend == nil {
				continue
			}
			if c.family == FamilyDualSense {
				if err := c.backend.SendOutput(Compose(OutputRequest{})); err != nil {
					errs = append(errs, fmt.Errorf("%w: slot %d: %w", ErrOutputFailed, c.index, err))
				}
			}
			if err := c.backend.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close slot %d: %w", c.index, err))
			}
			r.logger.Debug("Controller closed", "slot", c.index, "name", c.backend.Name())
		}
		r.closeErr = errors.Join(errs...)
	})
	return r.closeErr
}

// Controller is a handle to one registry slot.
type Controller struct {
	index      int
	family     Family
	backend    Backend
	normalizer *Normalizer
	tracker    EdgeTracker

	mu     sync.RWMutex
	state  ControllerState
	output OutputRequest
}

func newController(index int, family Family, b Backend, n *Normalizer) *Controller {
	return &Controller{
		index:      index,
		family:     family,
		backend:    b,
		normalizer: n,
		output:     DefaultOutput(),
	}
}

func (c *Controller) Index() int     { return c.index }
func (c *Controller) Family() Family { return c.family }

// Connected reports whether the slot has a backing device.
func (c *Controller) Connected() bool {
	return c.backend != nil
}

// Name returns the backend name, or "" for an empty slot.
func (c *Controller) Name() string {
	if c.backend == nil {
		return ""
	}
	return c.backend.Name()
}

// State returns the state recorded by the last successful poll.
func (c *Controller) State() ControllerState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// SetOutput replaces the output request sent after each poll. A request
// with an invalid trigger effect is rejected and the previous one stays.
func (c *Controller) SetOutput(req OutputRequest) error {
	if err := ValidateTriggerEffect(req.LeftTrigger); err != nil {
		return fmt.Errorf("left trigger: %w", err)
	}
	if err := ValidateTriggerEffect(req.RightTrigger); err != nil {
		return fmt.Errorf("right trigger: %w", err)
	}
	c.mu.Lock()
	c.output = req
	c.mu.Unlock()
	return nil
}

// Output returns the current output request.
func (c *Controller) Output() OutputRequest {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.output
}

func (c *Controller) update() error {
	if c.backend == nil {
		return fmt.Errorf("slot %d: %w", c.index, ErrNoDevice)
	}
	frame, err := c.backend.Poll()
	if err != nil {
		return fmt.Errorf("%w: slot %d: %w", ErrPollFailed, c.index, err)
	}
	state, err := c.normalizer.Normalize(frame)
	if err != nil {
		return fmt.Errorf("%w: slot %d: %w", ErrPollFailed, c.index, err)
	}
	pressed, released := c.tracker.Update(state.Down)
	state.Previous = state.Down&^pressed | released

	c.mu.Lock()
	c.state = state
	out := c.output
	c.mu.Unlock()

	if c.family != FamilyDualSense {
		return nil
	}
	if err := c.backend.SendOutput(Compose(out)); err != nil {
		return fmt.Errorf("%w: slot %d: %w", ErrOutputFailed, c.index, err)
	}
	return nil
}
