package domain

import "strings"

// ErrorKind names a simulated protocol error. Error responses use the kind as header name.
type ErrorKind string

const (
	ValueOutOfRangeError                  ErrorKind = "ValueOutOfRangeError"
	TargetOfflineError                    ErrorKind = "TargetOfflineError"
	BridgeOfflineError                    ErrorKind = "BridgeOfflineError"
	NoSuchTargetError                     ErrorKind = "NoSuchTargetError"
	DriverInternalError                   ErrorKind = "DriverInternalError"
	DependentServiceUnavailableError      ErrorKind = "DependentServiceUnavailableError"
	TargetConnectivityUnstableError       ErrorKind = "TargetConnectivityUnstableError"
	TargetBridgeConnectivityUnstableError ErrorKind = "TargetBridgeConnectivityUnstableError"
	TargetFirmwareOutdatedError           ErrorKind = "TargetFirmwareOutdatedError"
	TargetBridgeFirmwareOutdatedError     ErrorKind = "TargetBridgeFirmwareOutdatedError"
	TargetHardwareMalfunctionError        ErrorKind = "TargetHardwareMalfunctionError"
	TargetBridgeHardwareMalfunctionError  ErrorKind = "TargetBridgeHardwareMalfunctionError"
	UnableToGetValueError                 ErrorKind = "UnableToGetValueError"
	UnableToSetValueError                 ErrorKind = "UnableToSetValueError"
	UnwillingToSetValueError              ErrorKind = "UnwillingToSetValueError"
	RateLimitExceededError                ErrorKind = "RateLimitExceededError"
	NotSupportedInCurrentModeError        ErrorKind = "NotSupportedInCurrentModeError"
	ExpiredAccessTokenError               ErrorKind = "ExpiredAccessTokenError"
	InvalidAccessTokenError               ErrorKind = "InvalidAccessTokenError"
	UnsupportedTargetError                ErrorKind = "UnsupportedTargetError"
	UnsupportedOperationError             ErrorKind = "UnsupportedOperationError"
	UnsupportedTargetSettingError         ErrorKind = "UnsupportedTargetSettingError"
	UnexpectedInformationReceivedError    ErrorKind = "UnexpectedInformationReceivedError"
)

// ErrorKinds lists every control error kind in catalog order.
var ErrorKinds = []ErrorKind{
	ValueOutOfRangeError,
	TargetOfflineError,
	BridgeOfflineError,
	NoSuchTargetError,
	DriverInternalError,
	DependentServiceUnavailableError,
	TargetConnectivityUnstableError,
	TargetBridgeConnectivityUnstableError,
	TargetFirmwareOutdatedError,
	TargetBridgeFirmwareOutdatedError,
	TargetHardwareMalfunctionError,
	TargetBridgeHardwareMalfunctionError,
	UnableToGetValueError,
	UnableToSetValueError,
	UnwillingToSetValueError,
	RateLimitExceededError,
	NotSupportedInCurrentModeError,
	ExpiredAccessTokenError,
	InvalidAccessTokenError,
	UnsupportedTargetError,
	UnsupportedOperationError,
	UnsupportedTargetSettingError,
	UnexpectedInformationReceivedError,
}

// UnableErrorCodes are the errorInfo codes carried by the UnableTo{Get,Set}Value kinds.
var UnableErrorCodes = []string{
	"DEVICE_AJAR",
	"DEVICE_BUSY",
	"DEVICE_JAMMED",
	"DEVICE_OVERHEATED",
	"HARDWARE_FAILURE",
	"LOW_BATTERY",
	"NOT_CALIBRATED",
}

// ErrorApplianceSuffix terminates every error appliance id.
const ErrorApplianceSuffix = "-001"

// HasErrorCode reports whether the kind is expanded per errorInfo code.
func (k ErrorKind) HasErrorCode() bool {
	return k == UnableToGetValueError || k == UnableToSetValueError
}

// ErrorApplianceID builds "<kind>-001" or "<kind>-<code>-001".
func ErrorApplianceID(kind ErrorKind, code string) string {
	if code == "" {
		return string(kind) + ErrorApplianceSuffix
	}
	return string(kind) + "-" + code + ErrorApplianceSuffix
}

// ParseErrorApplianceID decodes an id produced by ErrorApplianceID.
// It does not check the kind against ErrorKinds.
func ParseErrorApplianceID(id string) (kind ErrorKind, code string, ok bool) {
	base, found := strings.CutSuffix(id, ErrorApplianceSuffix)
	if !found || base == "" {
		return "", "", false
	}
	for _, k := range []ErrorKind{UnableToGetValueError, UnableToSetValueError} {
		if c, found := strings.CutPrefix(base, string(k)+"-"); found {
			return k, c, true
		}
	}
	return ErrorKind(base), "", true
}

// IsErrorKind reports whether name is one of ErrorKinds.
func IsErrorKind(name string) bool {
	for _, k := range ErrorKinds {
		if string(k) == name {
			return true
		}
	}
	return false
}
