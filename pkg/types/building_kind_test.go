package types

import "testing"

func TestBuildingKindRoundTrip(t *testing.T) {
	for _, kind := range BuildableKinds() {
		t.Run(kind.String(), func(t *testing.T) {
			if !kind.IsValid() {
				t.Fatalf("%+v should be valid", kind)
			}
			parsed, err := ParseBuildingKind(kind.String())
			if err != nil {
				t.Fatalf("ParseBuildingKind(%q) failed: %v", kind.String(), err)
			}
			if parsed != kind {
				t.Errorf("round trip mismatch: %+v != %+v", parsed, kind)
			}

			text, err := kind.MarshalText()
			if err != nil {
				t.Fatalf("MarshalText failed: %v", err)
			}
			var decoded BuildingKind
			if err := decoded.UnmarshalText(text); err != nil {
				t.Fatalf("UnmarshalText failed: %v", err)
			}
			if decoded != kind {
				t.Errorf("text round trip mismatch: %+v != %+v", decoded, kind)
			}
		})
	}
}

func TestParseBuildingKindUnknown(t *testing.T) {
	if _, err := ParseBuildingKind("barracks"); err == nil {
		t.Error("Expected error for unknown kind")
	}
	if _, err := (BuildingKind{}).MarshalText(); err == nil {
		t.Error("Expected error when marshaling the zero kind")
	}
}

func TestBuildingKindIsValid(t *testing.T) {
	tests := []struct {
		name string
		kind BuildingKind
		want bool
	}{
		{"零值", BuildingKind{}, false},
		{"大本营", TownHall(), true},
		{"大本营携带资源", BuildingKind{Tag: KindTownHall, Resource: ResourceElixir}, false},
		{"圣水仓库", Storage(ResourceElixir), true},
		{"越界资源", BuildingKind{Tag: KindCollector, Resource: ResourceKind(7)}, false},
		{"越界标签", BuildingKind{Tag: KindTag(42)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFootprintFor(t *testing.T) {
	tests := []struct {
		kind BuildingKind
		want Footprint
	}{
		{TownHall(), Footprint{4, 4}},
		{Storage(ResourceGold), Footprint{4, 4}},
		{Storage(ResourceElixir), Footprint{4, 4}},
		{Collector(ResourceGold), Footprint{3, 3}},
		{Collector(ResourceElixir), Footprint{3, 3}},
		{Defense(), Footprint{3, 3}},
		{Wall(), Footprint{1, 1}},
		{BuildingKind{}, Footprint{0, 0}},
	}
	for _, tt := range tests {
		if got := FootprintFor(tt.kind); got != tt.want {
			t.Errorf("FootprintFor(%s) = %+v, want %+v", tt.kind, got, tt.want)
		}
	}
}

func TestFootprintArea(t *testing.T) {
	if got := (Footprint{4, 4}).Area(); got != 16 {
		t.Errorf("Area of 4x4 = %d, want 16", got)
	}
	if got := (Footprint{0, 3}).Area(); got != 0 {
		t.Errorf("Area of 0x3 = %d, want 0", got)
	}
	if got := (Footprint{-2, 3}).Area(); got != 0 {
		t.Errorf("Area of -2x3 = %d, want 0", got)
	}
}

func TestDisplayName(t *testing.T) {
	if got := Collector(ResourceElixir).DisplayName(); got != "Elixir Collector" {
		t.Errorf("DisplayName = %q", got)
	}
	if got := TownHall().DisplayName(); got != "Town Hall" {
		t.Errorf("DisplayName = %q", got)
	}
}
