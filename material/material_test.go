package material

import (
	"testing"

	"github.com/pthm-cable/wavefield/config"
)

func TestParseBlendMode(t *testing.T) {
	tests := []struct {
		in      string
		want    BlendMode
		wantErr bool
	}{
		{"normal", BlendNormal, false},
		{"additive", BlendAdditive, false},
		{"subtract", BlendNormal, true},
		{"", BlendNormal, true},
	}

	for _, tc := range tests {
		got, err := ParseBlendMode(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseBlendMode(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseBlendMode(%q) = %v, want %v", tc.in, got, tc.want)
		}
		if !tc.wantErr && got.String() != tc.in {
			t.Errorf("String() = %q, want %q", got.String(), tc.in)
		}
	}
}

func TestFromConfigMatchesDefault(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}

	m, err := FromConfig(cfg.Material)
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if *m != *Default() {
		t.Errorf("config defaults %+v differ from Default() %+v", *m, *Default())
	}
}

func TestFromConfigBadBlend(t *testing.T) {
	_, err := FromConfig(config.MaterialConfig{Blending: "screen"})
	if err == nil {
		t.Error("expected error for unknown blend mode")
	}
}

func TestHasAlphaMap(t *testing.T) {
	m := Default()
	if !m.HasAlphaMap() {
		t.Error("default material should have an alpha map")
	}
	m.AlphaMap = ""
	if m.HasAlphaMap() {
		t.Error("empty path should mean no alpha map")
	}
}

func TestOpaque(t *testing.T) {
	tests := []struct {
		blend       BlendMode
		transparent bool
		opaque      bool
	}{
		{BlendNormal, false, true},
		{BlendNormal, true, false},
		{BlendAdditive, false, false},
		{BlendAdditive, true, false},
	}

	for _, tc := range tests {
		m := Default()
		m.Blending = tc.blend
		m.Transparent = tc.transparent
		if m.Opaque() != tc.opaque {
			t.Errorf("blend=%v transparent=%v: Opaque() = %v, want %v", tc.blend, tc.transparent, m.Opaque(), tc.opaque)
		}
		if m.UsesAlphaMap() == tc.opaque {
			t.Errorf("blend=%v transparent=%v: UsesAlphaMap() should be %v", tc.blend, tc.transparent, !tc.opaque)
		}
	}
}
