package catalog

import (
	"fmt"

	"smart-home-mock/internal/domain"
)

var (
	switchActions = []string{domain.ActionTurnOn, domain.ActionTurnOff}
	lockActions   = []string{domain.ActionSetLockState, domain.ActionGetLockState}
	rangeActions  = []string{
		domain.ActionSetTargetTemperature,
		domain.ActionIncrementTargetTemperature,
		domain.ActionDecrementTargetTemperature,
	}
)

// GenerateErrorAppliances returns one appliance per error kind, and one per
// errorInfo code for the UnableTo{Get,Set}Value kinds. Device numbers run from 1
// across the whole list. The result is identical on every call.
func GenerateErrorAppliances() []domain.Appliance {
	var result []domain.Appliance
	next := 1
	for _, kind := range domain.ErrorKinds {
		var batch []domain.Appliance
		batch, next = errorAppliancesFor(kind, next)
		result = append(result, batch...)
	}
	return result
}

// IsErrorAppliance reports whether id belongs to a generated error appliance.
func IsErrorAppliance(id string) bool {
	for _, a := range GenerateErrorAppliances() {
		if a.ApplianceID == id {
			return true
		}
	}
	return false
}

// errorAppliancesFor returns the appliances for kind numbered from deviceNumber,
// and the number to use for the next kind.
func errorAppliancesFor(kind domain.ErrorKind, deviceNumber int) ([]domain.Appliance, int) {
	if kind.HasErrorCode() {
		result := make([]domain.Appliance, 0, len(domain.UnableErrorCodes))
		for _, code := range domain.UnableErrorCodes {
			result = append(result, lockErrorAppliance(kind, code, deviceNumber))
			deviceNumber++
		}
		return result, deviceNumber
	}

	name := errorFriendlyName(deviceNumber)
	a := newErrorAppliance(domain.ErrorApplianceID(kind, ""), domain.ModelSwitch, name, switchActions)
	a.FriendlyDescription = fmt.Sprintf("Utterance: Alexa, turn on %s. Response: %s", name, kind)

	if kind == domain.ValueOutOfRangeError {
		a.ModelName = domain.ModelThermostat
		a.Actions = append([]string(nil), rangeActions...)
		a.FriendlyDescription = fmt.Sprintf("Utterance: Alexa, set %s to 80 degrees. Response: %s", name, kind)
	}

	return []domain.Appliance{a}, deviceNumber + 1
}

func lockErrorAppliance(kind domain.ErrorKind, code string, deviceNumber int) domain.Appliance {
	name := errorFriendlyName(deviceNumber) + " door"
	a := newErrorAppliance(domain.ErrorApplianceID(kind, code), domain.ModelLock, name, lockActions)
	if kind == domain.UnableToGetValueError {
		a.FriendlyDescription = fmt.Sprintf("Utterance: Alexa, is %s locked? Response: %s code: %s", name, kind, code)
	} else {
		a.FriendlyDescription = fmt.Sprintf("Utterance: Alexa, lock %s. Response: %s code: %s", name, kind, code)
	}
	return a
}

func newErrorAppliance(id string, model domain.ModelName, name string, actions []string) domain.Appliance {
	return domain.Appliance{
		ApplianceID:                id,
		ManufacturerName:           domain.SampleManufacturer,
		ModelName:                  model,
		Version:                    "1",
		FriendlyName:               name,
		IsReachable:                true,
		Actions:                    append([]string(nil), actions...),
		AdditionalApplianceDetails: map[string]string{},
	}
}

func errorFriendlyName(deviceNumber int) string {
	return fmt.Sprintf("Device %d", deviceNumber)
}
