package render

import "image/color"

// fillBitmapRGBA expands a packed row-major bitmap into RGBA pixels in buf.
// stride is the number of source words per row.
func fillBitmapRGBA(buf []byte, bitmap []uint32, w, h, stride int, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	for y := 0; y < h; y++ {
		rowBase := y * stride
		for x := 0; x < w; x++ {
			base := (y*w + x) * 4
			word := bitmap[rowBase+x/32]
			if word>>uint(x%32)&1 != 0 {
				buf[base+0] = uint8(rOn >> 8)
				buf[base+1] = uint8(gOn >> 8)
				buf[base+2] = uint8(bOn >> 8)
				buf[base+3] = uint8(aOn >> 8)
				continue
			}
			buf[base+0] = uint8(rOff >> 8)
			buf[base+1] = uint8(gOff >> 8)
			buf[base+2] = uint8(bOff >> 8)
			buf[base+3] = uint8(aOff >> 8)
		}
	}
}

// fillOverlayRGBA converts overlay bytes into tinted RGBA pixels. Zero
// bytes become transparent; positive values scale the tint's alpha.
func fillOverlayRGBA(buf []byte, values []uint8, tint color.RGBA, maxAlpha uint8) {
	for i, v := range values {
		base := i * 4
		if v == 0 {
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
			continue
		}
		alpha := uint16(maxAlpha) * uint16(v) / 255
		buf[base+0] = tint.R
		buf[base+1] = tint.G
		buf[base+2] = tint.B
		buf[base+3] = uint8(alpha)
	}
}
