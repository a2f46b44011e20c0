package axis

import "fmt"

// Name identifies a configuration axis.
type Name string

// Axis names. The first four form the coupled project tuple and are
// resolved jointly, before any hardware axis.
const (
	Project          Name = "project"
	Performance      Name = "performance"
	DevelopmentPhase Name = "development-phase"
	Market           Name = "market"
	GateIC           Name = "gate-ic-type"
	PowerModule      Name = "power-module-type"
	MotCurrentSensor Name = "mot-current-sensor-type"
	HsgCurrentSensor Name = "hsg-current-sensor-type"
	ETPUCalcTime     Name = "etpu-calculation-time"
	PwmUpdateMode    Name = "pwm-updatetime-mode"
	TwoStagePwm      Name = "two-stage-pwm-mode"
	SqpwmRegen       Name = "sqpwm-regen-mode"
	BurstMode        Name = "pwm-burst-mode"
	VarDTGS          Name = "var-dtgs-option"
)

// Axis is one configuration dimension with its closed member set.
type Axis struct {
	Name    Name
	Members []string
}

// Contains reports whether member is part of the axis enumeration.
func (a Axis) Contains(member string) bool {
	for _, m := range a.Members {
		if m == member {
			return true
		}
	}
	return false
}

// all lists every axis in resolution dependency order: the project tuple
// first (its branches select constant clusters as a unit), then the
// hardware axes whose literals feed derived bindings.
var all = []Axis{
	{Name: Project, Members: projects},
	{Name: Performance, Members: performances},
	{Name: DevelopmentPhase, Members: phases},
	{Name: Market, Members: markets},
	{Name: GateIC, Members: gateICs},
	{Name: PowerModule, Members: powerModules},
	{Name: MotCurrentSensor, Members: motCurrentSensors},
	{Name: HsgCurrentSensor, Members: hsgCurrentSensors},
	{Name: ETPUCalcTime, Members: etpuCalcTimes},
	{Name: PwmUpdateMode, Members: pwmUpdateModes},
	{Name: TwoStagePwm, Members: twoStagePwmModes},
	{Name: SqpwmRegen, Members: sqpwmRegenModes},
	{Name: BurstMode, Members: burstModes},
	{Name: VarDTGS, Members: varDTGSOptions},
}

// All returns every axis in resolution dependency order.
func All() []Axis {
	out := make([]Axis, len(all))
	copy(out, all)
	return out
}

// Lookup returns the axis with the given name.
func Lookup(name Name) (Axis, bool) {
	for _, a := range all {
		if a.Name == name {
			return a, true
		}
	}
	return Axis{}, false
}

// TupleAxes returns the four axes of the coupled project tuple.
func TupleAxes() []Name {
	return []Name{Project, Performance, DevelopmentPhase, Market}
}

// IsTupleAxis reports whether name belongs to the coupled project tuple.
func IsTupleAxis(name Name) bool {
	switch name {
	case Project, Performance, DevelopmentPhase, Market:
		return true
	}
	return false
}

// ParseMember validates that member belongs to the named axis.
func ParseMember(name Name, member string) (string, error) {
	a, ok := Lookup(name)
	if !ok {
		return "", fmt.Errorf("unknown axis %q", name)
	}
	if !a.Contains(member) {
		return "", fmt.Errorf("axis %s: unknown member %q", name, member)
	}
	return member, nil
}
