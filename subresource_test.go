package imgdata

import (
	"testing"

	"github.com/gogpu/imgdata/format"
)

func TestSubresourceIndex(t *testing.T) {
	tests := []struct {
		name                         string
		mip, array, mipCount, arrays int
		want                         int
	}{
		{"mip 1 array 2", 1, 2, 4, 8, 9},
		{"first", 0, 0, 4, 8, 0},
		{"last", 3, 7, 4, 8, 31},
		{"negative mip", -1, 5, 4, 8, 20},
		{"mip past count", 9, 0, 4, 8, 3},
		{"array past count", 0, 12, 4, 8, 28},
		{"zero counts", 3, 3, 0, 0, 0},
		{"array count capped", 0, 5000, 1, 9999, MaxArrayCount - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SubresourceIndex(tt.mip, tt.array, tt.mipCount, tt.arrays); got != tt.want {
				t.Errorf("SubresourceIndex(%d, %d, %d, %d) = %d, want %d",
					tt.mip, tt.array, tt.mipCount, tt.arrays, got, tt.want)
			}
		})
	}

	if SubresourceIndex(-1, 5, 4, 8) != SubresourceIndex(0, 5, 4, 8) {
		t.Error("negative mip should clamp to 0")
	}
}

func TestSubresourceIndex_Injective(t *testing.T) {
	for _, counts := range [][2]int{{1, 1}, {4, 8}, {7, 3}, {11, 6}} {
		mips, arrays := counts[0], counts[1]
		seen := make(map[int]bool, mips*arrays)
		for array := range arrays {
			for mip := range mips {
				i := SubresourceIndex(mip, array, mips, arrays)
				if seen[i] {
					t.Fatalf("index %d repeated for mips=%d arrays=%d", i, mips, arrays)
				}
				if i < 0 || i >= mips*arrays {
					t.Fatalf("index %d out of [0, %d)", i, mips*arrays)
				}
				seen[i] = true
			}
		}
	}
}

func TestSettings_SubresourceIndex(t *testing.T) {
	s := Settings{Width: 8, Height: 8, ArrayCount: 3, MipCount: 4, Format: format.R8Unorm}
	if got := s.SubresourceIndex(2, 1); got != 6 {
		t.Errorf("SubresourceIndex(2, 1) = %d, want 6", got)
	}

	vol := Settings{Type: Image3D, Width: 8, Height: 8, Depth: 8, ArrayCount: 3, MipCount: 4, Format: format.R8Unorm}
	for mip := range 4 {
		if got := vol.SubresourceIndex(mip, 2); got != mip {
			t.Errorf("3D SubresourceIndex(%d, 2) = %d, want %d", mip, got, mip)
		}
	}
}

func TestImageBuffer_SubresourceIndex(t *testing.T) {
	d := newTestData(t, Settings{Width: 4, Height: 4, ArrayCount: 2, MipCount: 3, Format: format.R8Unorm})
	for i, b := range d.Buffers() {
		// Buffers are array-major then mip, matching the index ordering.
		if got := b.SubresourceIndex(); got != i {
			t.Errorf("Buffers()[%d].SubresourceIndex() = %d", i, got)
		}
	}

	vol := newTestData(t, Settings{Type: Image3D, Width: 4, Height: 4, Depth: 4, MipCount: 2, Format: format.R8Unorm})
	if got := vol.Buffer(0, 3).SubresourceIndex(); got != 0 {
		t.Errorf("3D slice 3 SubresourceIndex() = %d, want 0", got)
	}
	if got := vol.Buffer(1, 1).SubresourceIndex(); got != 1 {
		t.Errorf("3D mip 1 SubresourceIndex() = %d, want 1", got)
	}
}

func TestSettings_SubresourceRange(t *testing.T) {
	s := Settings{Width: 8, Height: 8, ArrayCount: 6, MipCount: 4, Format: format.R8G8B8A8Unorm}
	r := s.SubresourceRange(2, 5)
	if r.BaseMipLevel != 2 || r.BaseArrayLayer != 5 {
		t.Errorf("range = mip %d layer %d, want 2, 5", r.BaseMipLevel, r.BaseArrayLayer)
	}
	if r.MipLevelCount == nil || *r.MipLevelCount != 1 || r.ArrayLayerCount == nil || *r.ArrayLayerCount != 1 {
		t.Error("range should cover one level of one layer")
	}

	r = s.SubresourceRange(-3, 40)
	if r.BaseMipLevel != 0 || r.BaseArrayLayer != 5 {
		t.Errorf("clamped range = mip %d layer %d, want 0, 5", r.BaseMipLevel, r.BaseArrayLayer)
	}
}
