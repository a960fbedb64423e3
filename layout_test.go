package imgdata

import (
	"errors"
	"testing"

	"github.com/gogpu/imgdata/format"
)

func TestComputeLayout_RGBA8MipChain(t *testing.T) {
	l, err := ComputeLayout(Settings{Width: 4, Height: 4, Depth: 1, ArrayCount: 1, MipCount: 3, Format: format.R8G8B8A8Unorm})
	if err != nil {
		t.Fatalf("ComputeLayout() = %v", err)
	}
	if l.SizeInBytes != 84 {
		t.Errorf("SizeInBytes = %d, want 84", l.SizeInBytes)
	}

	want := []struct{ w, h, offset int }{{4, 4, 0}, {2, 2, 64}, {1, 1, 80}}
	if len(l.Units) != len(want) {
		t.Fatalf("len(Units) = %d, want %d", len(l.Units), len(want))
	}
	for i, w := range want {
		u := l.Units[i]
		if u.MipLevel != i || u.Width != w.w || u.Height != w.h || u.Offset != w.offset {
			t.Errorf("Units[%d] = mip %d %dx%d @%d, want mip %d %dx%d @%d",
				i, u.MipLevel, u.Width, u.Height, u.Offset, i, w.w, w.h, w.offset)
		}
	}
}

func TestComputeLayout_SizeIsSumOfSlices(t *testing.T) {
	tests := []Settings{
		{Width: 17, Height: 5, MipCount: 5, ArrayCount: 3, Format: format.R8Unorm},
		{Type: Image1D, Width: 64, Height: 9, MipCount: 7, ArrayCount: 2, Format: format.R16G16B16A16Float},
		{Type: ImageCube, Width: 8, Height: 8, MipCount: 4, ArrayCount: 6, Format: format.B8G8R8A8Unorm},
		{Type: Image3D, Width: 8, Height: 4, Depth: 6, MipCount: 4, Format: format.R32Float},
		{Width: 13, Height: 7, MipCount: 4, Format: format.BC3Unorm},
		{Width: 5, Height: 3, MipCount: 2, Format: format.R1Unorm},
	}

	for _, s := range tests {
		t.Run(s.Format.String(), func(t *testing.T) {
			l, err := ComputeLayout(s)
			if err != nil {
				t.Fatalf("ComputeLayout() = %v", err)
			}
			ss := l.Settings
			sum := 0
			for range ss.ArrayCount {
				for mip := range ss.MipCount {
					w, h, d := ss.MipSize(mip)
					if w != max(1, ss.Width>>mip) || h != max(1, ss.Height>>mip) || d != max(1, ss.Depth>>mip) {
						t.Errorf("MipSize(%d) = %dx%dx%d", mip, w, h, d)
					}
					sum += ss.Format.Pitch(w, h, format.PitchNone).SlicePitch * d
				}
			}
			if l.SizeInBytes != sum || sum <= 0 {
				t.Errorf("SizeInBytes = %d, want %d", l.SizeInBytes, sum)
			}

			offset := 0
			for i, u := range l.Units {
				if u.Offset != offset {
					t.Errorf("Units[%d].Offset = %d, want %d", i, u.Offset, offset)
				}
				offset += u.Pitch.SlicePitch
			}
		})
	}
}

func TestComputeLayout_3DOrdering(t *testing.T) {
	l, err := ComputeLayout(Settings{Type: Image3D, Width: 4, Height: 4, Depth: 4, ArrayCount: 5, MipCount: 3, Format: format.R8G8B8A8Unorm})
	if err != nil {
		t.Fatalf("ComputeLayout() = %v", err)
	}
	if l.Settings.ArrayCount != 1 {
		t.Errorf("ArrayCount = %d, want 1", l.Settings.ArrayCount)
	}
	if l.SizeInBytes != 64*4+16*2+4 {
		t.Errorf("SizeInBytes = %d, want %d", l.SizeInBytes, 64*4+16*2+4)
	}

	want := [][2]int{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {1, 0}, {1, 1}, {2, 0}}
	if len(l.Units) != len(want) {
		t.Fatalf("len(Units) = %d, want %d", len(l.Units), len(want))
	}
	for i, w := range want {
		if l.Units[i].MipLevel != w[0] || l.Units[i].SliceIndex != w[1] {
			t.Errorf("Units[%d] = (mip %d, slice %d), want (%d, %d)",
				i, l.Units[i].MipLevel, l.Units[i].SliceIndex, w[0], w[1])
		}
	}

	i, ok := l.Find(1, 1)
	if !ok || i != 5 {
		t.Errorf("Find(1, 1) = %d, %v, want 5, true", i, ok)
	}
	if _, ok := l.Find(1, 2); ok {
		t.Error("Find(1, 2) should be out of range at mip 1")
	}
}

func TestComputeLayout_ArrayMajor(t *testing.T) {
	l, err := ComputeLayout(Settings{Width: 4, Height: 4, ArrayCount: 2, MipCount: 2, Format: format.R8Unorm})
	if err != nil {
		t.Fatalf("ComputeLayout() = %v", err)
	}
	want := [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	for i, w := range want {
		if l.Units[i].ArrayIndex != w[0] || l.Units[i].MipLevel != w[1] {
			t.Errorf("Units[%d] = (array %d, mip %d), want (%d, %d)",
				i, l.Units[i].ArrayIndex, l.Units[i].MipLevel, w[0], w[1])
		}
	}
	if i, ok := l.Find(1, 1); !ok || i != 3 {
		t.Errorf("Find(1, 1) = %d, %v, want 3, true", i, ok)
	}
}

func TestComputeLayout_Sanitize(t *testing.T) {
	tests := []struct {
		name string
		in   Settings
		want Settings
	}{
		{
			"zero clamps to 1",
			Settings{Format: format.R8Unorm},
			Settings{Width: 1, Height: 1, Depth: 1, ArrayCount: 1, MipCount: 1, Format: format.R8Unorm},
		},
		{
			"negative clamps to 1",
			Settings{Width: -4, Height: -1, Depth: -2, ArrayCount: -9, MipCount: -1, Format: format.R8Unorm},
			Settings{Width: 1, Height: 1, Depth: 1, ArrayCount: 1, MipCount: 1, Format: format.R8Unorm},
		},
		{
			"1d drops height and depth",
			Settings{Type: Image1D, Width: 16, Height: 8, Depth: 3, MipCount: 10, Format: format.R8Unorm},
			Settings{Type: Image1D, Width: 16, Height: 1, Depth: 1, ArrayCount: 1, MipCount: 5, Format: format.R8Unorm},
		},
		{
			"cube rounds array count",
			Settings{Type: ImageCube, Width: 8, Height: 8, Depth: 2, ArrayCount: 7, Format: format.R8Unorm},
			Settings{Type: ImageCube, Width: 8, Height: 8, Depth: 1, ArrayCount: 12, MipCount: 1, Format: format.R8Unorm},
		},
		{
			"2d drops depth",
			Settings{Width: 8, Height: 2, Depth: 4, MipCount: 2, Format: format.R8Unorm},
			Settings{Width: 8, Height: 2, Depth: 1, ArrayCount: 1, MipCount: 2, Format: format.R8Unorm},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := ComputeLayout(tt.in)
			if err != nil {
				t.Fatalf("ComputeLayout() = %v", err)
			}
			if l.Settings != tt.want {
				t.Errorf("Settings = %+v, want %+v", l.Settings, tt.want)
			}
		})
	}
}

func TestComputeLayout_BlockCompressed(t *testing.T) {
	l, err := ComputeLayout(Settings{Width: 8, Height: 8, MipCount: 4, Format: format.BC1Unorm})
	if err != nil {
		t.Fatalf("ComputeLayout() = %v", err)
	}
	// 2x2 blocks, then 1x1 block for 4x4, 2x2 and 1x1.
	if l.SizeInBytes != 32+8+8+8 {
		t.Errorf("SizeInBytes = %d, want 56", l.SizeInBytes)
	}
	if l.Units[0].Pitch.RowPitch != 16 {
		t.Errorf("RowPitch = %d, want 16", l.Units[0].Pitch.RowPitch)
	}
}

func TestComputeLayoutWithFlags(t *testing.T) {
	s := Settings{Width: 3, Height: 2, Format: format.B5G6R5Unorm}
	plain, err := SizeInBytes(s)
	if err != nil {
		t.Fatalf("SizeInBytes() = %v", err)
	}
	if plain != 12 {
		t.Errorf("SizeInBytes = %d, want 12", plain)
	}

	l, err := ComputeLayoutWithFlags(s, format.PitchLegacyDWORD)
	if err != nil {
		t.Fatalf("ComputeLayoutWithFlags() = %v", err)
	}
	if l.SizeInBytes != 16 {
		t.Errorf("SizeInBytes = %d, want 16", l.SizeInBytes)
	}
}

func TestComputeLayout_InvalidFormat(t *testing.T) {
	for _, f := range []format.Format{format.Unknown, format.R8G8B8A8Typeless} {
		_, err := ComputeLayout(Settings{Width: 4, Height: 4, Format: f})
		if !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("ComputeLayout(%v) = %v, want ErrInvalidFormat", f, err)
		}
		if _, err := SizeInBytes(Settings{Format: f}); !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("SizeInBytes(%v) = %v, want ErrInvalidFormat", f, err)
		}
	}
}

func TestMaxMipCount(t *testing.T) {
	tests := []struct {
		w, h, d int
		want    int
	}{
		{1, 1, 1, 1},
		{4, 4, 1, 3},
		{5, 3, 1, 3},
		{256, 1, 1, 9},
		{1, 1, 16, 5},
		{0, -1, 0, 1},
	}
	for _, tt := range tests {
		if got := MaxMipCount(tt.w, tt.h, tt.d); got != tt.want {
			t.Errorf("MaxMipCount(%d, %d, %d) = %d, want %d", tt.w, tt.h, tt.d, got, tt.want)
		}
	}
}

func TestDepthSliceCount(t *testing.T) {
	tests := []struct {
		slices, mips int
		want         int
	}{
		{4, 1, 4},
		{4, 3, 7},
		{4, 5, 9},
		{1, 5, 5},
		{0, 0, 1},
	}
	for _, tt := range tests {
		if got := DepthSliceCount(tt.slices, tt.mips); got != tt.want {
			t.Errorf("DepthSliceCount(%d, %d) = %d, want %d", tt.slices, tt.mips, got, tt.want)
		}
	}
}

func TestImageType_String(t *testing.T) {
	tests := []struct {
		t    ImageType
		want string
	}{
		{Image1D, "1D"},
		{Image2D, "2D"},
		{ImageCube, "Cube"},
		{Image3D, "3D"},
		{ImageType(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
