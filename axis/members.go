package axis

// Gate driver IC generations. Each selects minimum PWM pulse widths and the
// current-sampling edge offset for both inverters.
const (
	GateICType1         = "type1"
	GateICType2         = "type2"
	GateICType3         = "type3"
	GateICType4         = "type4"
	GateICType5         = "type5"
	GateICType6         = "type6"
	GateICType7         = "type7"
	GateICType8NV74TCar = "type8-nv74-tcar"
)

var gateICs = []string{
	GateICType1, GateICType2, GateICType3, GateICType4,
	GateICType5, GateICType6, GateICType7, GateICType8NV74TCar,
}

// Power module and circuit variants. Each selects the inverter dead times.
const (
	PowerModuleCase    = "case"
	PowerModuleDSC1    = "dsc-type1"
	PowerModuleDSC2    = "dsc-type2"
	PowerModuleHPDrive = "hp-drive"
	PowerModuleCVeGT   = "cvegt"
	PowerModuleNV74    = "nv74"
	PowerModuleMV      = "mv"
)

var powerModules = []string{
	PowerModuleCase, PowerModuleDSC1, PowerModuleDSC2,
	PowerModuleHPDrive, PowerModuleCVeGT, PowerModuleNV74, PowerModuleMV,
}

// Motor phase-current sensor variants. Each selects the full-scale current
// range referenced to the 2.5 V center / 4.5 V rail.
const (
	CurSensorMot400Hall       = "400a-hall"
	CurSensorMot400Shunt1     = "400a-shunt-type1"
	CurSensorMot500Shunt1     = "500a-shunt-type1"
	CurSensorMot600Shunt1     = "600a-shunt-type1"
	CurSensorMot400Shunt2     = "400a-shunt-type2"
	CurSensorMot500Hall       = "500a-hall"
	CurSensorMot700Hall       = "700a-hall"
	CurSensorMot700Shunt0     = "700a-shunt-type0"
	CurSensorMot850Hall       = "850a-hall"
	CurSensorMot850HallHPV    = "850a-hall-hpv"
	CurSensorMot1000Hall      = "1000a-hall"
	CurSensorMot1100Hall      = "1100a-hall"
	CurSensorMot1300Hall      = "1300a-hall"
	CurSensorMot1500Hall      = "1500a-hall"
	CurSensorMot700Coreless   = "700a-coreless"
	CurSensorMot700Coreless2  = "700a-coreless-type2"
	CurSensorMot650Coreless   = "650a-coreless"
)

var motCurrentSensors = []string{
	CurSensorMot400Hall, CurSensorMot400Shunt1, CurSensorMot500Shunt1,
	CurSensorMot600Shunt1, CurSensorMot400Shunt2, CurSensorMot500Hall,
	CurSensorMot700Hall, CurSensorMot700Shunt0, CurSensorMot850Hall,
	CurSensorMot850HallHPV, CurSensorMot1000Hall, CurSensorMot1100Hall,
	CurSensorMot1300Hall, CurSensorMot1500Hall, CurSensorMot700Coreless,
	CurSensorMot700Coreless2, CurSensorMot650Coreless,
}

// HSG phase-current sensor variants.
const (
	CurSensorHsg400Hall = "400a-hall"
	CurSensorHsg500Hall = "500a-hall"
	CurSensorHsg700Hall = "700a-hall"
	CurSensorHsg850Hall = "850a-hall"
)

var hsgCurrentSensors = []string{
	CurSensorHsg400Hall, CurSensorHsg500Hall, CurSensorHsg700Hall, CurSensorHsg850Hall,
}

// eTPU calculation-time system options.
const (
	ETPUSingleStage = "single-stage"
	ETPUTwoStage    = "two-stage"
)

var etpuCalcTimes = []string{ETPUSingleStage, ETPUTwoStage}

// PWM update-time automation modes.
const (
	PwmUpdateAuto   = "auto"
	PwmUpdateManual = "manual"
)

var pwmUpdateModes = []string{PwmUpdateAuto, PwmUpdateManual}

// Two-stage PWM modulation modes.
const (
	TwoStageSVPWM = "svpwm"
	TwoStageRSPWM = "rspwm"
)

var twoStagePwmModes = []string{TwoStageSVPWM, TwoStageRSPWM}

// SQPWM regeneration disable options.
const (
	SqpwmRegenEnable  = "enable"
	SqpwmRegenDisable = "disable"
)

var sqpwmRegenModes = []string{SqpwmRegenEnable, SqpwmRegenDisable}

// PWM burst mode options.
const (
	BurstModeEnable  = "enable"
	BurstModeDisable = "disable"
)

var burstModes = []string{BurstModeEnable, BurstModeDisable}

// Variable dead-time gate shaping options.
const (
	VarDTGSIncluded    = "included"
	VarDTGSNotIncluded = "not-included"
)

var varDTGSOptions = []string{VarDTGSIncluded, VarDTGSNotIncluded}

// Vehicle projects.
const (
	ProjectMVRWD = "mv-rwd"
	ProjectMVAWD = "mv-awd"
)

var projects = []string{ProjectMVRWD, ProjectMVAWD}

// Performance tiers.
const (
	PerfStandard    = "standard"
	PerfPerformance = "performance"
	PerfLongRange   = "long-range"
	PerfEM160kW     = "em-160kw"
	PerfEM200kW     = "em-200kw"
	PerfEM250kW     = "em-250kw"
)

var performances = []string{
	PerfStandard, PerfPerformance, PerfLongRange,
	PerfEM160kW, PerfEM200kW, PerfEM250kW,
}

// Development phases, in program order.
const (
	PhaseTCar   = "tcar"
	PhaseProto  = "proto"
	PhaseMaster = "master"
	PhasePilot1 = "pilot1"
	PhasePilot2 = "pilot2"
	PhaseM      = "m"
	PhaseSOP    = "sop"
)

var phases = []string{
	PhaseTCar, PhaseProto, PhaseMaster, PhasePilot1, PhasePilot2, PhaseM, PhaseSOP,
}

// Target markets.
const (
	MarketNorthAmerica = "north-america"
	MarketDomestic     = "domestic"
	MarketEurope       = "europe"
	MarketChina        = "china"
	MarketJapan        = "japan"
	MarketCommon       = "common-country"
)

var markets = []string{
	MarketNorthAmerica, MarketDomestic, MarketEurope,
	MarketChina, MarketJapan, MarketCommon,
}
