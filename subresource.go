package imgdata

import "github.com/gogpu/gputypes"

// SubresourceIndex returns the linear index of a (mip level, array index)
// pair: mip + array*mipCount.
//
// Out of range input is clamped, never rejected. arrayCount is clamped to
// [1, MaxArrayCount], mipCount to at least 1, and the indices to their counts.
func SubresourceIndex(mip, array, mipCount, arrayCount int) int {
	arrayCount = min(max(1, arrayCount), MaxArrayCount)
	mipCount = max(1, mipCount)
	mip = min(max(0, mip), mipCount-1)
	array = min(max(0, array), arrayCount-1)
	return mip + array*mipCount
}

// SubresourceIndex returns the linear index of a unit of an image with
// settings s. 3D images have a single array entry, so the index is the mip
// level.
func (s Settings) SubresourceIndex(mip, array int) int {
	s = s.Sanitize()
	if s.Type == Image3D {
		return SubresourceIndex(mip, 0, s.MipCount, 1)
	}
	return SubresourceIndex(mip, array, s.MipCount, s.ArrayCount)
}

// SubresourceRange returns the GPU range covering one mip level of one array
// layer, with indices clamped as in SubresourceIndex.
func (s Settings) SubresourceRange(mip, array int) gputypes.ImageSubresourceRange {
	s = s.Sanitize()
	arrayCount := min(s.ArrayCount, MaxArrayCount)
	if s.Type == Image3D {
		arrayCount = 1
	}
	one := uint32(1)
	levels, layers := one, one
	return gputypes.ImageSubresourceRange{
		Aspect:          textureAspect(s),
		BaseMipLevel:    uint32(min(max(0, mip), s.MipCount-1)),
		MipLevelCount:   &levels,
		BaseArrayLayer:  uint32(min(max(0, array), arrayCount-1)),
		ArrayLayerCount: &layers,
	}
}

// SubresourceIndex returns the linear index of the buffer's unit.
// Depth slices of a 3D mip level share an index.
func (b *ImageBuffer) SubresourceIndex() int {
	return b.parent.layout.Settings.SubresourceIndex(b.unit.MipLevel, b.unit.ArrayIndex)
}
