package application

import (
	"fmt"

	"smart-home-mock/internal/domain"
)

// Simulated thermostat constants. No state survives between requests.
const (
	previousTemperature = 21.0
	minimumTemperature  = 5.0
	maximumTemperature  = 30.0

	simulatedReading       = 21.0
	simulatedTarget        = 21.0
	autoCoolingTarget      = 23.0
	autoHeatingTarget      = 19.0
	customModeFriendlyName = "Manufacturer custom mode"
)

var temperatureConfirmations = map[string]string{
	domain.SetTargetTemperatureRequest:       domain.SetTargetTemperatureConfirmation,
	domain.IncrementTargetTemperatureRequest: domain.IncrementTargetTemperatureConfirmation,
	domain.DecrementTargetTemperatureRequest: domain.DecrementTargetTemperatureConfirmation,
}

// thermostat is the state a simulated thermostat reports before a request.
// Minimum and Maximum bound the setpoint but are not enforced here.
type thermostat struct {
	PreviousTemperature float64
	PreviousMode        domain.TemperatureMode
	TargetMode          domain.TemperatureMode
	Minimum             float64
	Maximum             float64
}

func sampleThermostat(mode domain.TemperatureMode) thermostat {
	return thermostat{
		PreviousTemperature: previousTemperature,
		PreviousMode:        mode,
		TargetMode:          mode,
		Minimum:             minimumTemperature,
		Maximum:             maximumTemperature,
	}
}

func (h *Handler) temperatureResponse(req *domain.Request, t thermostat) (*domain.Response, error) {
	name := req.Header.Name

	if responseName, ok := temperatureConfirmations[name]; ok {
		target, err := targetTemperature(req, t.PreviousTemperature)
		if err != nil {
			return nil, err
		}
		return buildResponse(buildHeader(req, responseName), temperatureConfirmation(target, t)), nil
	}

	switch name {
	case domain.GetTemperatureReadingRequest:
		return buildResponse(buildHeader(req, domain.GetTemperatureReadingResponse), domain.TemperatureReadingPayload{
			TemperatureReading: domain.Value{Value: simulatedReading},
		}), nil

	case domain.GetTargetTemperatureRequest:
		return buildResponse(buildHeader(req, domain.GetTargetTemperatureResponse), h.targetTemperaturePayload(t.TargetMode)), nil

	default:
		return unexpectedRequestName(req), nil
	}
}

// targetTemperature computes the requested setpoint for the three mutation requests.
func targetTemperature(req *domain.Request, previous float64) (float64, error) {
	switch req.Header.Name {
	case domain.SetTargetTemperatureRequest:
		if req.Payload.TargetTemperature == nil {
			return 0, fmt.Errorf("%w: missing targetTemperature", ErrMalformedRequest)
		}
		return req.Payload.TargetTemperature.Value, nil
	case domain.IncrementTargetTemperatureRequest, domain.DecrementTargetTemperatureRequest:
		if req.Payload.DeltaTemperature == nil {
			return 0, fmt.Errorf("%w: missing deltaTemperature", ErrMalformedRequest)
		}
		delta := req.Payload.DeltaTemperature.Value
		if req.Header.Name == domain.DecrementTargetTemperatureRequest {
			delta = -delta
		}
		return previous + delta, nil
	default:
		return 0, fmt.Errorf("%w: %s does not set a temperature", ErrMalformedRequest, req.Header.Name)
	}
}

func temperatureConfirmation(target float64, t thermostat) domain.TemperatureConfirmationPayload {
	return domain.TemperatureConfirmationPayload{
		TargetTemperature: domain.Value{Value: target},
		TemperatureMode:   domain.ModeValue{Value: t.TargetMode},
		PreviousState: domain.PreviousTemperatureState{
			TargetTemperature: domain.Value{Value: t.PreviousTemperature},
			TemperatureMode:   domain.ModeValue{Value: t.PreviousMode},
		},
	}
}

func (h *Handler) targetTemperaturePayload(mode domain.TemperatureMode) domain.TargetTemperaturePayload {
	payload := domain.TargetTemperaturePayload{
		ApplianceResponseTimestamp: h.timestamp(),
		TemperatureMode:            domain.NamedModeValue{Value: mode},
	}

	switch mode {
	case domain.ModeHeat, domain.ModeCool, domain.ModeEco, domain.ModeCustom:
		payload.TargetTemperature = &domain.Value{Value: simulatedTarget}
	case domain.ModeAuto:
		payload.CoolingTargetTemperature = &domain.Value{Value: autoCoolingTarget}
		payload.HeatingTargetTemperature = &domain.Value{Value: autoHeatingTarget}
	}

	if mode == domain.ModeCustom {
		payload.TemperatureMode.FriendlyName = customModeFriendlyName
	}

	return payload
}
