package axis

// Target identifies one entry of the fixed per-target index domain. Many
// calibration constants are parallel arrays indexed by target, always in
// the same order: traction motor first, hybrid starter-generator second.
type Target int

// Target identities, in global array order.
const (
	TargetMot Target = iota
	TargetHsg
)

// TargetCount is the fixed length of every per-target array.
const TargetCount = 2

// Targets returns the target identities in global array order.
func Targets() [TargetCount]Target {
	return [TargetCount]Target{TargetMot, TargetHsg}
}

func (t Target) String() string {
	switch t {
	case TargetMot:
		return "MOT"
	case TargetHsg:
		return "HSG"
	}
	return "UNKNOWN"
}
