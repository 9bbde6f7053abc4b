// Package validation checks invocation contexts and responses against the
// Smart Home payload version 2 contract.
package validation

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"smart-home-mock/internal/domain"
)

var (
	ErrInvalidContext  = errors.New("validation: invalid context")
	ErrInvalidResponse = errors.New("validation: invalid response")
)

const (
	maxDiscoveredAppliances = 300
	maxApplianceIDLength    = 256
	maxFieldLength          = 128
)

var applianceIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_\-=#;:?@&]+$`)

// responseNames maps each request to the response it must produce when it
// succeeds. Any error kind is also accepted for control and query requests.
var responseNames = map[string]string{
	domain.TurnOnRequest:                     domain.TurnOnConfirmation,
	domain.TurnOffRequest:                    domain.TurnOffConfirmation,
	domain.SetPercentageRequest:              domain.SetPercentageConfirmation,
	domain.IncrementPercentageRequest:        domain.IncrementPercentageConfirmation,
	domain.DecrementPercentageRequest:        domain.DecrementPercentageConfirmation,
	domain.SetTargetTemperatureRequest:       domain.SetTargetTemperatureConfirmation,
	domain.IncrementTargetTemperatureRequest: domain.IncrementTargetTemperatureConfirmation,
	domain.DecrementTargetTemperatureRequest: domain.DecrementTargetTemperatureConfirmation,
	domain.GetTargetTemperatureRequest:       domain.GetTargetTemperatureResponse,
	domain.GetTemperatureReadingRequest:      domain.GetTemperatureReadingResponse,
	domain.SetLockStateRequest:               domain.SetLockStateConfirmation,
	domain.GetLockStateRequest:               domain.GetLockStateResponse,
}

var validActions = map[string]struct{}{
	domain.ActionTurnOn:                     {},
	domain.ActionTurnOff:                    {},
	domain.ActionSetPercentage:              {},
	domain.ActionIncrementPercentage:        {},
	domain.ActionDecrementPercentage:        {},
	domain.ActionSetTargetTemperature:       {},
	domain.ActionIncrementTargetTemperature: {},
	domain.ActionDecrementTargetTemperature: {},
	domain.ActionGetTargetTemperature:       {},
	domain.ActionGetTemperatureReading:      {},
	domain.ActionSetLockState:               {},
	domain.ActionGetLockState:               {},
}

var validModes = map[domain.TemperatureMode]struct{}{
	domain.ModeAuto:   {},
	domain.ModeHeat:   {},
	domain.ModeCool:   {},
	domain.ModeEco:    {},
	domain.ModeCustom: {},
	domain.ModeOff:    {},
}

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateContext rejects contexts that are already cancelled or expired.
func (v *Validator) ValidateContext(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("%w: nil context", ErrInvalidContext)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidContext, err)
	}
	return nil
}

func (v *Validator) ValidateResponse(req *domain.Request, resp *domain.Response) error {
	if req == nil || resp == nil {
		return invalid("missing request or response")
	}
	if err := validateHeader(req, resp.Header); err != nil {
		return err
	}
	if resp.Payload == nil {
		return invalid("payload is missing")
	}
	return validatePayload(resp)
}

func validateHeader(req *domain.Request, header domain.Header) error {
	if header.PayloadVersion != domain.PayloadVersion {
		return invalid("header.payloadVersion must be %q, got %q", domain.PayloadVersion, header.PayloadVersion)
	}
	if header.MessageID == "" {
		return invalid("header.messageId is empty")
	}
	if header.MessageID != req.Header.MessageID {
		return invalid("header.messageId %q does not match request %q", header.MessageID, req.Header.MessageID)
	}
	if header.Name == "" {
		return invalid("header.name is empty")
	}

	wantNamespace := req.Header.Namespace
	if header.Name == string(domain.UnableToGetValueError) {
		wantNamespace = domain.NamespaceQuery
	}
	if header.Namespace != wantNamespace {
		return invalid("header.namespace must be %q for %s, got %q", wantNamespace, header.Name, header.Namespace)
	}

	if req.Header.Namespace == domain.NamespaceDiscovery {
		if header.Name != domain.DiscoverAppliancesResponse {
			return invalid("header.name %q is not a discovery response", header.Name)
		}
		return nil
	}

	if domain.IsErrorKind(header.Name) {
		return nil
	}
	if want, ok := responseNames[req.Header.Name]; !ok || header.Name != want {
		return invalid("header.name %q is not a valid response to %q", header.Name, req.Header.Name)
	}
	return nil
}

func validatePayload(resp *domain.Response) error {
	switch p := resp.Payload.(type) {
	case domain.DiscoverAppliancesPayload:
		return validateAppliances(p.DiscoveredAppliances)
	case domain.TemperatureConfirmationPayload:
		if err := validateMode(p.TemperatureMode.Value); err != nil {
			return err
		}
		return validateMode(p.PreviousState.TemperatureMode.Value)
	case domain.TargetTemperaturePayload:
		return validateTargetTemperature(p)
	case domain.LockStatePayload:
		if p.LockState != domain.LockStateLocked && p.LockState != domain.LockStateUnlocked {
			return invalid("payload.lockState %q is not LOCKED or UNLOCKED", p.LockState)
		}
		if resp.Header.Name == domain.GetLockStateResponse {
			return validateTimestamp(p.ApplianceResponseTimestamp)
		}
		return nil
	case domain.ValueOutOfRangePayload:
		if p.MinimumValue > p.MaximumValue {
			return invalid("payload.minimumValue %v exceeds maximumValue %v", p.MinimumValue, p.MaximumValue)
		}
		return nil
	case domain.ErrorInfoPayload:
		if p.ErrorInfo.Code == "" {
			return invalid("payload.errorInfo.code is empty")
		}
		return nil
	default:
		return nil
	}
}

func validateAppliances(appliances []domain.Appliance) error {
	if len(appliances) > maxDiscoveredAppliances {
		return invalid("discovered %d appliances, maximum is %d", len(appliances), maxDiscoveredAppliances)
	}

	seen := make(map[string]struct{}, len(appliances))
	for _, a := range appliances {
		if len(a.ApplianceID) > maxApplianceIDLength || !applianceIDPattern.MatchString(a.ApplianceID) {
			return invalid("applianceId %q is not valid", a.ApplianceID)
		}
		if _, dup := seen[a.ApplianceID]; dup {
			return invalid("applianceId %q is duplicated", a.ApplianceID)
		}
		seen[a.ApplianceID] = struct{}{}

		fields := map[string]string{
			"manufacturerName":    a.ManufacturerName,
			"modelName":           string(a.ModelName),
			"version":             a.Version,
			"friendlyName":        a.FriendlyName,
			"friendlyDescription": a.FriendlyDescription,
		}
		for field, value := range fields {
			if value == "" {
				return invalid("%s of %s is empty", field, a.ApplianceID)
			}
			if utf8.RuneCountInString(value) > maxFieldLength {
				return invalid("%s of %s exceeds %d characters", field, a.ApplianceID, maxFieldLength)
			}
		}

		if len(a.Actions) == 0 {
			return invalid("%s has no actions", a.ApplianceID)
		}
		for _, action := range a.Actions {
			if _, ok := validActions[action]; !ok {
				return invalid("%s has unknown action %q", a.ApplianceID, action)
			}
		}
	}
	return nil
}

func validateTargetTemperature(p domain.TargetTemperaturePayload) error {
	if err := validateTimestamp(p.ApplianceResponseTimestamp); err != nil {
		return err
	}
	if err := validateMode(p.TemperatureMode.Value); err != nil {
		return err
	}
	dual := p.CoolingTargetTemperature != nil || p.HeatingTargetTemperature != nil
	if dual && p.TargetTemperature != nil {
		return invalid("payload has both targetTemperature and a cooling/heating pair")
	}
	if (p.CoolingTargetTemperature == nil) != (p.HeatingTargetTemperature == nil) {
		return invalid("payload must carry both coolingTargetTemperature and heatingTargetTemperature")
	}
	return nil
}

func validateMode(mode domain.TemperatureMode) error {
	if _, ok := validModes[mode]; !ok {
		return invalid("temperatureMode %q is not valid", mode)
	}
	return nil
}

func validateTimestamp(ts string) error {
	if _, err := time.Parse(domain.TimestampLayout, ts); err != nil {
		return invalid("applianceResponseTimestamp %q is not %s", ts, domain.TimestampLayout)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidResponse, fmt.Sprintf(format, args...))
}
