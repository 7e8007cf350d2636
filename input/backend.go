package input

// Family identifies which protocol a session's controllers speak.
type Family int

const (
	FamilyNone Family = iota
	FamilyLegacy
	FamilyDualSense
)

func (f Family) String() string {
	switch f {
	case FamilyLegacy:
		return "legacy"
	case FamilyDualSense:
		return "dualsense"
	default:
		return "none"
	}
}

// Backend is one opened physical controller.
//
// Poll returns the newest raw frame without blocking. SendOutput ships a
// composed output report; backends without an output channel ignore it.
type Backend interface {
	Name() string
	Poll() (RawFrame, error)
	SendOutput(out DualSenseOutput) error
	Close() error
}

// Enumerator opens up to max controllers of one family.
type Enumerator interface {
	Enumerate(max int) ([]Backend, error)
}

// EnumeratorFunc adapts a function to Enumerator.
type EnumeratorFunc func(max int) ([]Backend, error)

func (f EnumeratorFunc) Enumerate(max int) ([]Backend, error) {
	return f(max)
}
