package domain

type ModelName string

const (
	ModelSwitch     ModelName = "Switch"
	ModelDimmer     ModelName = "Dimmer"
	ModelFan        ModelName = "Fan"
	ModelThermostat ModelName = "Thermostat"
	ModelLock       ModelName = "Lock"
)

// Action names advertised in discovery.
const (
	ActionTurnOn                     = "turnOn"
	ActionTurnOff                    = "turnOff"
	ActionSetPercentage              = "setPercentage"
	ActionIncrementPercentage        = "incrementPercentage"
	ActionDecrementPercentage        = "decrementPercentage"
	ActionSetTargetTemperature       = "setTargetTemperature"
	ActionIncrementTargetTemperature = "incrementTargetTemperature"
	ActionDecrementTargetTemperature = "decrementTargetTemperature"
	ActionGetTargetTemperature       = "getTargetTemperature"
	ActionGetTemperatureReading      = "getTemperatureReading"
	ActionSetLockState               = "setLockState"
	ActionGetLockState               = "getLockState"
)

const SampleManufacturer = "Sample Manufacturer"

type Appliance struct {
	ApplianceID                string            `json:"applianceId" yaml:"applianceId"`
	ManufacturerName           string            `json:"manufacturerName" yaml:"manufacturerName"`
	ModelName                  ModelName         `json:"modelName" yaml:"modelName"`
	Version                    string            `json:"version" yaml:"version"`
	FriendlyName               string            `json:"friendlyName" yaml:"friendlyName"`
	FriendlyDescription        string            `json:"friendlyDescription" yaml:"friendlyDescription"`
	IsReachable                bool              `json:"isReachable" yaml:"isReachable"`
	Actions                    []string          `json:"actions" yaml:"actions"`
	AdditionalApplianceDetails map[string]string `json:"additionalApplianceDetails" yaml:"additionalApplianceDetails"`
}

// Clone returns a copy that shares no slices or maps with a.
func (a Appliance) Clone() Appliance {
	c := a
	c.Actions = append([]string(nil), a.Actions...)
	c.AdditionalApplianceDetails = make(map[string]string, len(a.AdditionalApplianceDetails))
	for k, v := range a.AdditionalApplianceDetails {
		c.AdditionalApplianceDetails[k] = v
	}
	return c
}

type TemperatureMode string

const (
	ModeAuto   TemperatureMode = "AUTO"
	ModeHeat   TemperatureMode = "HEAT"
	ModeCool   TemperatureMode = "COOL"
	ModeEco    TemperatureMode = "ECO"
	ModeCustom TemperatureMode = "CUSTOM"
	ModeOff    TemperatureMode = "OFF"
)

type LockState string

const (
	LockStateLocked   LockState = "LOCKED"
	LockStateUnlocked LockState = "UNLOCKED"
)
