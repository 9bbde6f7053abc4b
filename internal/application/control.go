package application

import (
	"fmt"

	"smart-home-mock/internal/domain"
)

const (
	lockApplianceID        = "Lock-001"
	unreachableApplianceID = "SwitchUnreachable-001"
)

var thermostatModes = map[string]domain.TemperatureMode{
	"ThermostatAuto-001":   domain.ModeAuto,
	"ThermostatHeat-001":   domain.ModeHeat,
	"ThermostatCool-001":   domain.ModeCool,
	"ThermostatEco-001":    domain.ModeEco,
	"ThermostatCustom-001": domain.ModeCustom,
	"ThermostatOff-001":    domain.ModeOff,
}

var confirmations = map[string]string{
	domain.TurnOnRequest:              domain.TurnOnConfirmation,
	domain.TurnOffRequest:             domain.TurnOffConfirmation,
	domain.SetPercentageRequest:       domain.SetPercentageConfirmation,
	domain.IncrementPercentageRequest: domain.IncrementPercentageConfirmation,
	domain.DecrementPercentageRequest: domain.DecrementPercentageConfirmation,
}

type controlFunc func(req *domain.Request) (*domain.Response, error)

func (h *Handler) registerAppliances() {
	for id, mode := range thermostatModes {
		t := sampleThermostat(mode)
		h.appliances[id] = func(req *domain.Request) (*domain.Response, error) {
			return h.temperatureResponse(req, t)
		}
	}
	h.appliances[lockApplianceID] = h.lockResponse
}

func (h *Handler) control(req *domain.Request) (*domain.Response, error) {
	id := req.ApplianceID()
	if id == "" {
		return nil, fmt.Errorf("%w: missing appliance.applianceId", ErrMalformedRequest)
	}

	if fn, ok := h.appliances[id]; ok {
		return fn(req)
	}

	if h.catalog.IsErrorAppliance(id) {
		return errorApplianceResponse(req, id), nil
	}

	return ordinaryResponse(req)
}

func (h *Handler) lockResponse(req *domain.Request) (*domain.Response, error) {
	switch req.Header.Name {
	case domain.SetLockStateRequest:
		if req.Payload.LockState == "" {
			return nil, fmt.Errorf("%w: missing lockState", ErrMalformedRequest)
		}
		return buildResponse(buildHeader(req, domain.SetLockStateConfirmation), domain.LockStatePayload{
			LockState: req.Payload.LockState,
		}), nil

	case domain.GetLockStateRequest:
		return buildResponse(buildHeader(req, domain.GetLockStateResponse), domain.LockStatePayload{
			LockState:                  domain.LockStateUnlocked,
			ApplianceResponseTimestamp: h.timestamp(),
		}), nil

	default:
		return unexpectedRequestName(req), nil
	}
}

// ordinaryResponse answers switches, dimmers and fans. Temperature mutations
// are confirmed as if the appliance were an AUTO thermostat at 21.0.
func ordinaryResponse(req *domain.Request) (*domain.Response, error) {
	if req.ApplianceID() == unreachableApplianceID {
		return buildResponse(buildHeader(req, string(domain.TargetOfflineError)), domain.EmptyPayload{}), nil
	}

	name := req.Header.Name

	if responseName, ok := confirmations[name]; ok {
		return buildResponse(buildHeader(req, responseName), domain.EmptyPayload{}), nil
	}

	if responseName, ok := temperatureConfirmations[name]; ok {
		t := sampleThermostat(domain.ModeAuto)
		target, err := targetTemperature(req, t.PreviousTemperature)
		if err != nil {
			return nil, err
		}
		return buildResponse(buildHeader(req, responseName), temperatureConfirmation(target, t)), nil
	}

	return unexpectedRequestName(req), nil
}

func errorApplianceResponse(req *domain.Request, id string) *domain.Response {
	kind, code, _ := domain.ParseErrorApplianceID(id)

	header := buildHeader(req, string(kind))
	if kind == domain.UnableToGetValueError {
		header.Namespace = domain.NamespaceQuery
	}

	return buildResponse(header, errorPayload(kind, code))
}

func errorPayload(kind domain.ErrorKind, code string) any {
	switch kind {
	case domain.ValueOutOfRangeError:
		return domain.ValueOutOfRangePayload{
			MinimumValue: minimumTemperature,
			MaximumValue: maximumTemperature,
		}
	case domain.DependentServiceUnavailableError:
		return domain.DependentServiceUnavailablePayload{
			DependentServiceName: "Customer Credentials Database",
		}
	case domain.TargetFirmwareOutdatedError, domain.TargetBridgeFirmwareOutdatedError:
		return domain.FirmwareOutdatedPayload{
			MinimumFirmwareVersion: "17",
			CurrentFirmwareVersion: "6",
		}
	case domain.UnableToGetValueError, domain.UnableToSetValueError:
		return domain.ErrorInfoPayload{
			ErrorInfo: domain.ErrorInfo{
				Code:        code,
				Description: "The requested operation cannot be completed because the device is " + code,
			},
		}
	case domain.UnwillingToSetValueError:
		return domain.ErrorInfoPayload{
			ErrorInfo: domain.ErrorInfo{
				Code:        "ThermostatIsOff",
				Description: "The requested operation is unsafe because it requires changing the mode.",
			},
		}
	case domain.RateLimitExceededError:
		return domain.RateLimitExceededPayload{
			RateLimit: "10",
			TimeUnit:  "HOUR",
		}
	case domain.NotSupportedInCurrentModeError:
		return domain.NotSupportedInCurrentModePayload{
			CurrentDeviceMode: "AWAY",
		}
	case domain.UnexpectedInformationReceivedError:
		return domain.UnexpectedInformationPayload{
			FaultingParameter: "value",
		}
	default:
		return domain.EmptyPayload{}
	}
}
