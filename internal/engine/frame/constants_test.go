package frame

import (
	"encoding/binary"
	"testing"

	"github.com/Faultbox/mirror-room/pkg/math"
)

func TestCalcConstantBufferByteSize(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 0},
		{1, 256},
		{128, 256},
		{256, 256},
		{257, 512},
		{1248, 1280},
	}
	for _, tt := range tests {
		if got := CalcConstantBufferByteSize(tt.in); got != tt.want {
			t.Errorf("CalcConstantBufferByteSize(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestConstantLayoutSizes(t *testing.T) {
	tests := []struct {
		name string
		got  int
		want int
	}{
		{"ObjectConstants", binary.Size(&ObjectConstants{}), 128},
		{"MaterialConstants", binary.Size(&MaterialConstants{}), 96},
		{"Light", binary.Size(&Light{}), 48},
		{"PassConstants", binary.Size(&PassConstants{}), 480 + MaxLights*48},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s size = %d, want %d", tt.name, tt.got, tt.want)
		}
		if tt.got%16 != 0 {
			t.Errorf("%s size %d is not a multiple of 16", tt.name, tt.got)
		}
	}
}

func TestEncodeWritesTransposedMatrices(t *testing.T) {
	obj := ObjectConstants{World: math.Translate(1, 2, 3), TexTransform: math.Identity()}
	data := Encode(ptr(obj.Transposed()))

	got, err := Decode[ObjectConstants](data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	// Row-major: translation is the last element of each of the first three rows.
	if got.World[3] != 1 || got.World[7] != 2 || got.World[11] != 3 {
		t.Errorf("expected row-major translation, got %v", got.World)
	}
	if got.World.Transpose() != obj.World {
		t.Error("transposing back should give the original world matrix")
	}
}

func TestPassConstantsLightOffset(t *testing.T) {
	var pc PassConstants
	pc.FogRange = 150
	pc.Lights[0].Strength = [3]float32{0.6, 0.6, 0.6}
	data := Encode(&pc)

	// Lights start right after the 480-byte header.
	got, err := Decode[Light](data[480:])
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got.Strength != pc.Lights[0].Strength {
		t.Errorf("light 0 strength = %v, want %v", got.Strength, pc.Lights[0].Strength)
	}
	fog, err := Decode[float32](data[468:])
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if fog != 150 {
		t.Errorf("FogRange at offset 468 = %v, want 150", fog)
	}
}

func ptr[T any](v T) *T { return &v }
