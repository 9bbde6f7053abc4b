package domain

// EmptyPayload encodes as {}.
type EmptyPayload struct{}

type DiscoverAppliancesPayload struct {
	DiscoveredAppliances []Appliance `json:"discoveredAppliances"`
}

type ModeValue struct {
	Value TemperatureMode `json:"value"`
}

type NamedModeValue struct {
	Value        TemperatureMode `json:"value"`
	FriendlyName string          `json:"friendlyName"`
}

type PreviousTemperatureState struct {
	TargetTemperature Value     `json:"targetTemperature"`
	TemperatureMode   ModeValue `json:"temperatureMode"`
}

type TemperatureConfirmationPayload struct {
	TargetTemperature Value                    `json:"targetTemperature"`
	TemperatureMode   ModeValue                `json:"temperatureMode"`
	PreviousState     PreviousTemperatureState `json:"previousState"`
}

type TemperatureReadingPayload struct {
	TemperatureReading Value `json:"temperatureReading"`
}

// TargetTemperaturePayload carries either TargetTemperature or the
// Cooling/Heating pair, depending on the mode.
type TargetTemperaturePayload struct {
	ApplianceResponseTimestamp string         `json:"applianceResponseTimestamp"`
	TemperatureMode            NamedModeValue `json:"temperatureMode"`
	TargetTemperature          *Value         `json:"targetTemperature,omitempty"`
	CoolingTargetTemperature   *Value         `json:"coolingTargetTemperature,omitempty"`
	HeatingTargetTemperature   *Value         `json:"heatingTargetTemperature,omitempty"`
}

type LockStatePayload struct {
	LockState                  LockState `json:"lockState"`
	ApplianceResponseTimestamp string    `json:"applianceResponseTimestamp,omitempty"`
}

type ValueOutOfRangePayload struct {
	MinimumValue float64 `json:"minimumValue"`
	MaximumValue float64 `json:"maximumValue"`
}

type DependentServiceUnavailablePayload struct {
	DependentServiceName string `json:"dependentServiceName"`
}

type FirmwareOutdatedPayload struct {
	MinimumFirmwareVersion string `json:"minimumFirmwareVersion"`
	CurrentFirmwareVersion string `json:"currentFirmwareVersion"`
}

type ErrorInfo struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type ErrorInfoPayload struct {
	ErrorInfo ErrorInfo `json:"errorInfo"`
}

type RateLimitExceededPayload struct {
	RateLimit string `json:"rateLimit"`
	TimeUnit  string `json:"timeUnit"`
}

type NotSupportedInCurrentModePayload struct {
	CurrentDeviceMode string `json:"currentDeviceMode"`
}

type UnexpectedInformationPayload struct {
	FaultingParameter string `json:"faultingParameter"`
}
