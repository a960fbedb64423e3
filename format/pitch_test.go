package format

import "testing"

func TestFormat_Pitch(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		w, h   int
		flags  PitchFlags
		row    int
		slice  int
	}{
		{"rgba8 4x4", R8G8B8A8Unorm, 4, 4, PitchNone, 16, 64},
		{"rgba8 1x1", R8G8B8A8Unorm, 1, 1, PitchNone, 4, 4},
		{"rgba32f 3x2", R32G32B32A32Float, 3, 2, PitchNone, 48, 96},
		{"r8 odd width", R8Unorm, 7, 3, PitchNone, 7, 21},
		{"r1 9 wide", R1Unorm, 9, 2, PitchNone, 2, 4},
		{"r8 legacy dword", R8Unorm, 7, 3, PitchLegacyDWORD, 8, 24},
		{"rgba8 as 24bpp", R8G8B8A8Unorm, 5, 1, PitchBPP24, 15, 15},
		{"rgba8 as 24bpp dword", R8G8B8A8Unorm, 5, 2, PitchBPP24 | PitchLegacyDWORD, 16, 32},
		{"rgba8 as 16bpp", R8G8B8A8Unorm, 5, 1, PitchBPP16, 10, 10},
		{"rgba8 as 8bpp", R8G8B8A8Unorm, 5, 1, PitchBPP8, 5, 5},
		{"packed even", R8G8B8G8Unorm, 4, 2, PitchNone, 8, 16},
		{"packed odd", G8R8G8B8Unorm, 5, 2, PitchNone, 12, 24},
		{"bc1 8x8", BC1Unorm, 8, 8, PitchNone, 16, 32},
		{"bc1 1x1", BC1Unorm, 1, 1, PitchNone, 8, 8},
		{"bc3 5x5", BC3Unorm, 5, 5, PitchNone, 32, 64},
		{"bc4 4x12", BC4Unorm, 4, 12, PitchNone, 8, 24},
		{"zero clamps", R8G8B8A8Unorm, 0, -3, PitchNone, 4, 4},
		{"unknown", Unknown, 4, 4, PitchNone, 0, 0},
		{"typeless", R8G8B8A8Typeless, 4, 4, PitchNone, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.format.Pitch(tt.w, tt.h, tt.flags)
			if got.RowPitch != tt.row {
				t.Errorf("RowPitch = %d, want %d", got.RowPitch, tt.row)
			}
			if got.SlicePitch != tt.slice {
				t.Errorf("SlicePitch = %d, want %d", got.SlicePitch, tt.slice)
			}
			if got.IsCompressed() != tt.format.IsCompressed() {
				t.Errorf("IsCompressed() = %v, want %v", got.IsCompressed(), tt.format.IsCompressed())
			}
		})
	}
}

func TestFormat_PitchBlocks(t *testing.T) {
	p := BC7Unorm.Pitch(13, 6, PitchNone)
	if p.BlocksWide != 4 || p.BlocksHigh != 2 {
		t.Errorf("blocks = %dx%d, want 4x2", p.BlocksWide, p.BlocksHigh)
	}
}

func TestFormat_Scanlines(t *testing.T) {
	tests := []struct {
		format Format
		height int
		want   int
	}{
		{R8G8B8A8Unorm, 16, 16},
		{R8G8B8A8Unorm, 0, 1},
		{BC1Unorm, 16, 4},
		{BC1Unorm, 2, 1},
		{BC5Unorm, 9, 3},
	}

	for _, tt := range tests {
		if got := tt.format.Scanlines(tt.height); got != tt.want {
			t.Errorf("%v.Scanlines(%d) = %d, want %d", tt.format, tt.height, got, tt.want)
		}
	}
}
