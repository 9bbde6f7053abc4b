package domain

type Namespace string

const (
	NamespaceDiscovery Namespace = "Alexa.ConnectedHome.Discovery"
	NamespaceControl   Namespace = "Alexa.ConnectedHome.Control"
	NamespaceQuery     Namespace = "Alexa.ConnectedHome.Query"
)

const PayloadVersion = "2"

// Request names.
const (
	DiscoverAppliancesRequest         = "DiscoverAppliancesRequest"
	TurnOnRequest                     = "TurnOnRequest"
	TurnOffRequest                    = "TurnOffRequest"
	SetPercentageRequest              = "SetPercentageRequest"
	IncrementPercentageRequest        = "IncrementPercentageRequest"
	DecrementPercentageRequest        = "DecrementPercentageRequest"
	SetTargetTemperatureRequest       = "SetTargetTemperatureRequest"
	IncrementTargetTemperatureRequest = "IncrementTargetTemperatureRequest"
	DecrementTargetTemperatureRequest = "DecrementTargetTemperatureRequest"
	GetTargetTemperatureRequest       = "GetTargetTemperatureRequest"
	GetTemperatureReadingRequest      = "GetTemperatureReadingRequest"
	SetLockStateRequest               = "SetLockStateRequest"
	GetLockStateRequest               = "GetLockStateRequest"
)

// Response names for successful requests.
const (
	DiscoverAppliancesResponse             = "DiscoverAppliancesResponse"
	TurnOnConfirmation                     = "TurnOnConfirmation"
	TurnOffConfirmation                    = "TurnOffConfirmation"
	SetPercentageConfirmation              = "SetPercentageConfirmation"
	IncrementPercentageConfirmation        = "IncrementPercentageConfirmation"
	DecrementPercentageConfirmation        = "DecrementPercentageConfirmation"
	SetTargetTemperatureConfirmation       = "SetTargetTemperatureConfirmation"
	IncrementTargetTemperatureConfirmation = "IncrementTargetTemperatureConfirmation"
	DecrementTargetTemperatureConfirmation = "DecrementTargetTemperatureConfirmation"
	GetTargetTemperatureResponse           = "GetTargetTemperatureResponse"
	GetTemperatureReadingResponse          = "GetTemperatureReadingResponse"
	SetLockStateConfirmation               = "SetLockStateConfirmation"
	GetLockStateResponse                   = "GetLockStateResponse"
)

// TimestampLayout is the UTC layout used for applianceResponseTimestamp.
const TimestampLayout = "2006-01-02T15:04:05Z"

type Header struct {
	Namespace      Namespace `json:"namespace"`
	Name           string    `json:"name"`
	PayloadVersion string    `json:"payloadVersion"`
	MessageID      string    `json:"messageId"`
}

type Request struct {
	Header  Header         `json:"header"`
	Payload RequestPayload `json:"payload"`
}

type RequestPayload struct {
	AccessToken       string        `json:"accessToken,omitempty"`
	Appliance         *ApplianceRef `json:"appliance,omitempty"`
	TargetTemperature *Value        `json:"targetTemperature,omitempty"`
	DeltaTemperature  *Value        `json:"deltaTemperature,omitempty"`
	PercentageState   *Value        `json:"percentageState,omitempty"`
	DeltaPercentage   *Value        `json:"deltaPercentage,omitempty"`
	LockState         LockState     `json:"lockState,omitempty"`
}

type ApplianceRef struct {
	ApplianceID                string            `json:"applianceId"`
	AdditionalApplianceDetails map[string]string `json:"additionalApplianceDetails,omitempty"`
}

// ApplianceID returns the targeted appliance id, or "" when the request has none.
func (r *Request) ApplianceID() string {
	if r.Payload.Appliance == nil {
		return ""
	}
	return r.Payload.Appliance.ApplianceID
}

type Value struct {
	Value float64 `json:"value"`
}

// Response payloads are one of the types in payload.go.
type Response struct {
	Header  Header `json:"header"`
	Payload any    `json:"payload"`
}
