package input

import "fmt"

// TriggerEffectType is the adaptive trigger mode code as sent to the pad.
type TriggerEffectType uint8

const (
	TriggerNoResistance         TriggerEffectType = 0x00
	TriggerContinuousResistance TriggerEffectType = 0x01
	TriggerSectionResistance    TriggerEffectType = 0x02
	TriggerExtended             TriggerEffectType = 0x26
	TriggerCalibrate            TriggerEffectType = 0xFC
)

func (t TriggerEffectType) String() string {
	switch t {
	case TriggerNoResistance:
		return "none"
	case TriggerContinuousResistance:
		return "continuous"
	case TriggerSectionResistance:
		return "section"
	case TriggerExtended:
		return "extended"
	case TriggerCalibrate:
		return "calibrate"
	default:
		return fmt.Sprintf("TriggerEffectType(0x%02x)", uint8(t))
	}
}

// TriggerEffect is one adaptive trigger configuration. The concrete types
// in this package are the only implementations; nil means NoResistance.
// All positions and forces are in [0, 1].
type TriggerEffect interface {
	Type() TriggerEffectType
	triggerEffect()
}

// NoResistance releases the trigger.
type NoResistance struct{}

// ContinuousResistance resists from Start to the end of travel.
type ContinuousResistance struct {
	Start float32 `json:"start"`
	Force float32 `json:"force"`
}

// SectionResistance resists between Start and End. End must not be
// less than Start.
type SectionResistance struct {
	Start float32 `json:"start"`
	End   float32 `json:"end"`
}

// ExtendedEffect vibrates the trigger from Start with three force stages.
type ExtendedEffect struct {
	Start       float32 `json:"start"`
	KeepEffect  bool    `json:"keepEffect"`
	BeginForce  float32 `json:"beginForce"`
	MiddleForce float32 `json:"middleForce"`
	EndForce    float32 `json:"endForce"`
	Frequency   float32 `json:"frequency"`
}

// Calibrate asks the pad to recalibrate the trigger motor.
type Calibrate struct{}

func (NoResistance) Type() TriggerEffectType         { return TriggerNoResistance }
func (ContinuousResistance) Type() TriggerEffectType { return TriggerContinuousResistance }
func (SectionResistance) Type() TriggerEffectType    { return TriggerSectionResistance }
func (ExtendedEffect) Type() TriggerEffectType       { return TriggerExtended }
func (Calibrate) Type() TriggerEffectType            { return TriggerCalibrate }

func (NoResistance) triggerEffect()         {}
func (ContinuousResistance) triggerEffect() {}
func (SectionResistance) triggerEffect()    {}
func (ExtendedEffect) triggerEffect()       {}
func (Calibrate) triggerEffect()            {}

// ValidateTriggerEffect checks ranges and ordering of a trigger effect.
func ValidateTriggerEffect(e TriggerEffect) error {
	var fields []float32
	switch v := e.(type) {
	case nil, NoResistance, Calibrate:
		return nil
	case ContinuousResistance:
		fields = []float32{v.Start, v.Force}
	case SectionResistance:
		if v.End < v.Start {
			return fmt.Errorf("%w: section end %.3f before start %.3f", ErrInvalidTrigger, v.End, v.Start)
		}
		fields = []float32{v.Start, v.End}
	case ExtendedEffect:
		fields = []float32{v.Start, v.BeginForce, v.MiddleForce, v.EndForce, v.Frequency}
	default:
		return fmt.Errorf("%w: %T", ErrInvalidTrigger, e)
	}
	for _, f := range fields {
		if !(f >= 0 && f <= 1) {
			return fmt.Errorf("%w: %s value %v out of [0, 1]", ErrInvalidTrigger, e.Type(), f)
		}
	}
	return nil
}

// ParseTriggerEffect builds an effect from a mode name and its parameters
// in declaration order, e.g. ("section", 0.2, 0.6).
func ParseTriggerEffect(mode string, params ...float32) (TriggerEffect, error) {
	arg := func(i int) float32 {
		if i < len(params) {
			return params[i]
		}
		return 0
	}
	var e TriggerEffect
	switch mode {
	case "", "none":
		e = NoResistance{}
	case "continuous":
		e = ContinuousResistance{Start: arg(0), Force: arg(1)}
	case "section":
		e = SectionResistance{Start: arg(0), End: arg(1)}
	case "extended":
		e = ExtendedEffect{
			Start:       arg(0),
			KeepEffect:  arg(1) != 0,
			BeginForce:  arg(2),
			MiddleForce: arg(3),
			EndForce:    arg(4),
			Frequency:   arg(5),
		}
	case "calibrate":
		e = Calibrate{}
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidTrigger, mode)
	}
	if err := ValidateTriggerEffect(e); err != nil {
		return nil, err
	}
	return e, nil
}
