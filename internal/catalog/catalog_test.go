package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"smart-home-mock/internal/catalog"
	"smart-home-mock/internal/domain"
)

func TestLoad_DefaultCatalog(t *testing.T) {
	c, err := catalog.Load("")
	if err != nil {
		t.Fatalf("loading default catalog: %v", err)
	}

	static := c.StaticAppliances()
	if len(static) != 11 {
		t.Fatalf("static appliances: got %d, want 11", len(static))
	}

	wantOrder := []string{
		"Switch-001", "Dimmer-001", "Fan-001", "SwitchUnreachable-001",
		"ThermostatAuto-001", "ThermostatHeat-001", "ThermostatCool-001",
		"ThermostatEco-001", "ThermostatCustom-001", "ThermostatOff-001", "Lock-001",
	}
	for i, id := range wantOrder {
		if static[i].ApplianceID != id {
			t.Errorf("static[%d]: got %s, want %s", i, static[i].ApplianceID, id)
		}
	}

	unreachable, ok := c.Find("SwitchUnreachable-001")
	if !ok {
		t.Fatal("SwitchUnreachable-001 not found")
	}
	if unreachable.IsReachable {
		t.Error("SwitchUnreachable-001 should not be reachable")
	}
	if unreachable.AdditionalApplianceDetails == nil {
		t.Error("additionalApplianceDetails should be an empty map, not nil")
	}
}

func TestCatalog_DiscoverConcatenatesStaticAndErrors(t *testing.T) {
	c, err := catalog.Load("")
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}

	discovered := c.Discover()
	static := c.StaticAppliances()
	generated := c.ErrorAppliances()

	if len(discovered) != len(static)+len(generated) {
		t.Fatalf("discovered: got %d, want %d", len(discovered), len(static)+len(generated))
	}
	if len(discovered) != 46 {
		t.Errorf("discovered: got %d, want 46", len(discovered))
	}
	if discovered[len(static)].ApplianceID != generated[0].ApplianceID {
		t.Errorf("error appliances should follow static ones, got %s", discovered[len(static)].ApplianceID)
	}

	seen := make(map[string]bool)
	for _, a := range discovered {
		if seen[a.ApplianceID] {
			t.Errorf("duplicate appliance id %s", a.ApplianceID)
		}
		seen[a.ApplianceID] = true
	}
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	c, err := catalog.Load("")
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}

	first := c.Discover()
	first[0].Actions[0] = "mutated"
	first[0].FriendlyName = "mutated"

	second := c.Discover()
	if second[0].Actions[0] != domain.ActionTurnOn {
		t.Errorf("catalog actions were mutated through a returned slice: %v", second[0].Actions)
	}
	if second[0].FriendlyName != "Switch" {
		t.Errorf("friendly name: got %s, want Switch", second[0].FriendlyName)
	}
}

func TestCatalog_IsErrorAppliance(t *testing.T) {
	c, err := catalog.Load("")
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}

	for _, a := range catalog.GenerateErrorAppliances() {
		if !c.IsErrorAppliance(a.ApplianceID) {
			t.Errorf("%s should be an error appliance", a.ApplianceID)
		}
		if !catalog.IsErrorAppliance(a.ApplianceID) {
			t.Errorf("package IsErrorAppliance(%s) should be true", a.ApplianceID)
		}
	}

	for _, a := range c.StaticAppliances() {
		if c.IsErrorAppliance(a.ApplianceID) {
			t.Errorf("%s should not be an error appliance", a.ApplianceID)
		}
	}

	for _, id := range []string{"", "UnableToGetValueError-001", "ValueOutOfRangeError", "UnableToGetValueError-DEVICE_OPEN-001"} {
		if c.IsErrorAppliance(id) || catalog.IsErrorAppliance(id) {
			t.Errorf("%q should not be an error appliance", id)
		}
	}
}

func TestNew_RejectsDuplicates(t *testing.T) {
	tests := []struct {
		name   string
		static []domain.Appliance
		want   error
	}{
		{
			name: "duplicate static id",
			static: []domain.Appliance{
				{ApplianceID: "Switch-001"},
				{ApplianceID: "Switch-001"},
			},
			want: catalog.ErrDuplicateApplianceID,
		},
		{
			name:   "collides with error appliance",
			static: []domain.Appliance{{ApplianceID: "TargetOfflineError-001"}},
			want:   catalog.ErrDuplicateApplianceID,
		},
		{
			name:   "missing id",
			static: []domain.Appliance{{FriendlyName: "nameless"}},
			want:   catalog.ErrInvalidAppliance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.New(tt.static)
			if !errors.Is(err, tt.want) {
				t.Errorf("error: got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := []byte(`appliances:
  - applianceId: Plug-001
    manufacturerName: Sample Manufacturer
    modelName: Switch
    version: "1"
    friendlyName: Plug
    friendlyDescription: Plug that is functional and reachable
    isReachable: true
    actions: [turnOn, turnOff]
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing catalog: %v", err)
	}

	c, err := catalog.Load(path)
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}

	static := c.StaticAppliances()
	if len(static) != 1 || static[0].ApplianceID != "Plug-001" {
		t.Fatalf("static appliances: got %+v", static)
	}
	if !reflect.DeepEqual(static[0].Actions, []string{"turnOn", "turnOff"}) {
		t.Errorf("actions: got %v", static[0].Actions)
	}
	if c.Len() != 1+len(catalog.GenerateErrorAppliances()) {
		t.Errorf("len: got %d", c.Len())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := catalog.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
