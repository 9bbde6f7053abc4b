package validation_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"smart-home-mock/internal/domain"
	"smart-home-mock/internal/validation"
)

func controlRequest(name, applianceID string) *domain.Request {
	return &domain.Request{
		Header: domain.Header{
			Namespace:      domain.NamespaceControl,
			Name:           name,
			PayloadVersion: domain.PayloadVersion,
			MessageID:      "m1",
		},
		Payload: domain.RequestPayload{
			Appliance: &domain.ApplianceRef{ApplianceID: applianceID},
		},
	}
}

func header(namespace domain.Namespace, name string) domain.Header {
	return domain.Header{
		Namespace:      namespace,
		Name:           name,
		PayloadVersion: domain.PayloadVersion,
		MessageID:      "m1",
	}
}

func validAppliance(id string) domain.Appliance {
	return domain.Appliance{
		ApplianceID:                id,
		ManufacturerName:           domain.SampleManufacturer,
		ModelName:                  domain.ModelSwitch,
		Version:                    "1",
		FriendlyName:               "Switch",
		FriendlyDescription:        "On/off switch",
		IsReachable:                true,
		Actions:                    []string{domain.ActionTurnOn},
		AdditionalApplianceDetails: map[string]string{},
	}
}

func TestValidateContext(t *testing.T) {
	v := validation.New()

	if err := v.ValidateContext(context.Background()); err != nil {
		t.Errorf("background context: unexpected error %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := v.ValidateContext(ctx)
	if !errors.Is(err, validation.ErrInvalidContext) {
		t.Errorf("cancelled context: got %v, want ErrInvalidContext", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled context: cause should be context.Canceled, got %v", err)
	}
}

func TestValidateResponse_Accepts(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name string
		req  *domain.Request
		resp *domain.Response
	}{
		{
			name: "turn on confirmation",
			req:  controlRequest(domain.TurnOnRequest, "Switch-001"),
			resp: &domain.Response{
				Header:  header(domain.NamespaceControl, domain.TurnOnConfirmation),
				Payload: domain.EmptyPayload{},
			},
		},
		{
			name: "error kind for any request",
			req:  controlRequest(domain.TurnOnRequest, "TargetOfflineError-001"),
			resp: &domain.Response{
				Header:  header(domain.NamespaceControl, string(domain.TargetOfflineError)),
				Payload: domain.EmptyPayload{},
			},
		},
		{
			name: "unable to get value switches to query",
			req:  controlRequest(domain.GetLockStateRequest, "UnableToGetValueError-LOW_BATTERY-001"),
			resp: &domain.Response{
				Header: header(domain.NamespaceQuery, string(domain.UnableToGetValueError)),
				Payload: domain.ErrorInfoPayload{
					ErrorInfo: domain.ErrorInfo{Code: "LOW_BATTERY", Description: "low"},
				},
			},
		},
		{
			name: "get lock state",
			req:  controlRequest(domain.GetLockStateRequest, "Lock-001"),
			resp: &domain.Response{
				Header: header(domain.NamespaceControl, domain.GetLockStateResponse),
				Payload: domain.LockStatePayload{
					LockState:                  domain.LockStateUnlocked,
					ApplianceResponseTimestamp: "2017-01-01T00:00:00Z",
				},
			},
		},
		{
			name: "discovery",
			req: &domain.Request{
				Header: header(domain.NamespaceDiscovery, domain.DiscoverAppliancesRequest),
			},
			resp: &domain.Response{
				Header: header(domain.NamespaceDiscovery, domain.DiscoverAppliancesResponse),
				Payload: domain.DiscoverAppliancesPayload{
					DiscoveredAppliances: []domain.Appliance{validAppliance("Switch-001"), validAppliance("Switch-002")},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := v.ValidateResponse(tt.req, tt.resp); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateResponse_Rejects(t *testing.T) {
	v := validation.New()

	longName := validAppliance("Switch-003")
	longName.FriendlyName = strings.Repeat("x", 129)

	badAction := validAppliance("Switch-004")
	badAction.Actions = []string{"explode"}

	tests := []struct {
		name    string
		req     *domain.Request
		resp    *domain.Response
		wantMsg string
	}{
		{
			name: "wrong payload version",
			req:  controlRequest(domain.TurnOnRequest, "Switch-001"),
			resp: &domain.Response{
				Header:  domain.Header{Namespace: domain.NamespaceControl, Name: domain.TurnOnConfirmation, PayloadVersion: "3", MessageID: "m1"},
				Payload: domain.EmptyPayload{},
			},
			wantMsg: "payloadVersion",
		},
		{
			name: "message id not echoed",
			req:  controlRequest(domain.TurnOnRequest, "Switch-001"),
			resp: &domain.Response{
				Header:  domain.Header{Namespace: domain.NamespaceControl, Name: domain.TurnOnConfirmation, PayloadVersion: "2", MessageID: "other"},
				Payload: domain.EmptyPayload{},
			},
			wantMsg: "messageId",
		},
		{
			name: "empty name",
			req:  controlRequest("FooRequest", "Switch-001"),
			resp: &domain.Response{
				Header:  header(domain.NamespaceControl, ""),
				Payload: domain.EmptyPayload{},
			},
			wantMsg: "header.name is empty",
		},
		{
			name: "mismatched confirmation",
			req:  controlRequest(domain.TurnOnRequest, "Switch-001"),
			resp: &domain.Response{
				Header:  header(domain.NamespaceControl, domain.TurnOffConfirmation),
				Payload: domain.EmptyPayload{},
			},
			wantMsg: "not a valid response",
		},
		{
			name: "query namespace on ordinary error",
			req:  controlRequest(domain.TurnOnRequest, "Switch-001"),
			resp: &domain.Response{
				Header:  header(domain.NamespaceQuery, string(domain.TargetOfflineError)),
				Payload: domain.EmptyPayload{},
			},
			wantMsg: "namespace",
		},
		{
			name: "missing payload",
			req:  controlRequest(domain.TurnOnRequest, "Switch-001"),
			resp: &domain.Response{
				Header: header(domain.NamespaceControl, domain.TurnOnConfirmation),
			},
			wantMsg: "payload is missing",
		},
		{
			name: "bad timestamp",
			req:  controlRequest(domain.GetLockStateRequest, "Lock-001"),
			resp: &domain.Response{
				Header:  header(domain.NamespaceControl, domain.GetLockStateResponse),
				Payload: domain.LockStatePayload{LockState: domain.LockStateUnlocked, ApplianceResponseTimestamp: "yesterday"},
			},
			wantMsg: "applianceResponseTimestamp",
		},
		{
			name: "bad lock state",
			req:  controlRequest(domain.SetLockStateRequest, "Lock-001"),
			resp: &domain.Response{
				Header:  header(domain.NamespaceControl, domain.SetLockStateConfirmation),
				Payload: domain.LockStatePayload{LockState: "AJAR"},
			},
			wantMsg: "lockState",
		},
		{
			name: "target and pair together",
			req:  controlRequest(domain.GetTargetTemperatureRequest, "ThermostatAuto-001"),
			resp: &domain.Response{
				Header: header(domain.NamespaceControl, domain.GetTargetTemperatureResponse),
				Payload: domain.TargetTemperaturePayload{
					ApplianceResponseTimestamp: "2017-01-01T00:00:00Z",
					TemperatureMode:            domain.NamedModeValue{Value: domain.ModeAuto},
					TargetTemperature:          &domain.Value{Value: 21},
					CoolingTargetTemperature:   &domain.Value{Value: 23},
					HeatingTargetTemperature:   &domain.Value{Value: 19},
				},
			},
			wantMsg: "both",
		},
		{
			name: "unknown temperature mode",
			req:  controlRequest(domain.SetTargetTemperatureRequest, "ThermostatAuto-001"),
			resp: &domain.Response{
				Header: header(domain.NamespaceControl, domain.SetTargetTemperatureConfirmation),
				Payload: domain.TemperatureConfirmationPayload{
					TemperatureMode: domain.ModeValue{Value: "TURBO"},
					PreviousState: domain.PreviousTemperatureState{
						TemperatureMode: domain.ModeValue{Value: domain.ModeAuto},
					},
				},
			},
			wantMsg: "temperatureMode",
		},
		{
			name: "discovery error name",
			req:  &domain.Request{Header: header(domain.NamespaceDiscovery, domain.DiscoverAppliancesRequest)},
			resp: &domain.Response{
				Header:  header(domain.NamespaceDiscovery, string(domain.DriverInternalError)),
				Payload: domain.EmptyPayload{},
			},
			wantMsg: "not a discovery response",
		},
		{
			name: "duplicate appliance",
			req:  &domain.Request{Header: header(domain.NamespaceDiscovery, domain.DiscoverAppliancesRequest)},
			resp: &domain.Response{
				Header: header(domain.NamespaceDiscovery, domain.DiscoverAppliancesResponse),
				Payload: domain.DiscoverAppliancesPayload{
					DiscoveredAppliances: []domain.Appliance{validAppliance("Switch-001"), validAppliance("Switch-001")},
				},
			},
			wantMsg: "duplicated",
		},
		{
			name: "invalid appliance id characters",
			req:  &domain.Request{Header: header(domain.NamespaceDiscovery, domain.DiscoverAppliancesRequest)},
			resp: &domain.Response{
				Header: header(domain.NamespaceDiscovery, domain.DiscoverAppliancesResponse),
				Payload: domain.DiscoverAppliancesPayload{
					DiscoveredAppliances: []domain.Appliance{validAppliance("Switch 001")},
				},
			},
			wantMsg: "applianceId",
		},
		{
			name: "friendly name too long",
			req:  &domain.Request{Header: header(domain.NamespaceDiscovery, domain.DiscoverAppliancesRequest)},
			resp: &domain.Response{
				Header:  header(domain.NamespaceDiscovery, domain.DiscoverAppliancesResponse),
				Payload: domain.DiscoverAppliancesPayload{DiscoveredAppliances: []domain.Appliance{longName}},
			},
			wantMsg: "friendlyName",
		},
		{
			name: "unknown action",
			req:  &domain.Request{Header: header(domain.NamespaceDiscovery, domain.DiscoverAppliancesRequest)},
			resp: &domain.Response{
				Header:  header(domain.NamespaceDiscovery, domain.DiscoverAppliancesResponse),
				Payload: domain.DiscoverAppliancesPayload{DiscoveredAppliances: []domain.Appliance{badAction}},
			},
			wantMsg: "unknown action",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateResponse(tt.req, tt.resp)
			if !errors.Is(err, validation.ErrInvalidResponse) {
				t.Fatalf("got %v, want ErrInvalidResponse", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestValidateResponse_TooManyAppliances(t *testing.T) {
	v := validation.New()

	appliances := make([]domain.Appliance, 301)
	for i := range appliances {
		appliances[i] = validAppliance("Switch-" + strings.Repeat("a", i%50) + string(rune('A'+i%26)))
	}

	err := v.ValidateResponse(
		&domain.Request{Header: header(domain.NamespaceDiscovery, domain.DiscoverAppliancesRequest)},
		&domain.Response{
			Header:  header(domain.NamespaceDiscovery, domain.DiscoverAppliancesResponse),
			Payload: domain.DiscoverAppliancesPayload{DiscoveredAppliances: appliances},
		},
	)
	if !errors.Is(err, validation.ErrInvalidResponse) {
		t.Errorf("got %v, want ErrInvalidResponse", err)
	}
}
