package capacity

import "math"

// AvailableBits returns how many payload bits a buffer of sampleCount samples can hold
// after reservedHeaderBits are set aside.
func AvailableBits(sampleCount, reservedHeaderBits int) int {
	return max(sampleCount-reservedHeaderBits, 0)
}

// Fits reports whether a payload of payloadByteLen bytes fits, one bit per sample.
func Fits(payloadByteLen, sampleCount, reservedHeaderBits int) bool {
	return FitsBits(payloadByteLen*8, sampleCount, reservedHeaderBits)
}

// FitsBits reports whether payloadBits fit, one bit per sample.
func FitsBits(payloadBits, sampleCount, reservedHeaderBits int) bool {
	return payloadBits >= 0 && payloadBits <= AvailableBits(sampleCount, reservedHeaderBits)
}

// MaxSecretPixels returns the raw byte budget of a cover, used as the pixel budget of a secret image.
func MaxSecretPixels(coverSampleCount, reservedHeaderBits int) int {
	return AvailableBits(coverSampleCount, reservedHeaderBits) / 8
}

// PlanResize scales width and height uniformly so that their product does not exceed maxPixels.
// Images already within the budget keep their size. Neither side drops below 1.
//
// The budget is a heuristic for the compressed size only; callers must check capacity
// again after compression.
func PlanResize(width, height, maxPixels int) (int, int) {
	if width <= 0 || height <= 0 || maxPixels <= 0 {
		return 0, 0
	}
	r := math.Min(math.Sqrt(float64(maxPixels)/(float64(width)*float64(height))), 1.0)
	w, h := int(math.Floor(float64(width)*r)), int(math.Floor(float64(height)*r))
	// a thin image keeps one row or column and spends the rest of the budget on the long side
	if h == 0 {
		h, w = 1, min(width, maxPixels)
	}
	if w == 0 {
		w, h = 1, min(height, maxPixels)
	}
	// float rounding can leave the product one row or column over budget
	for w*h > maxPixels {
		if w*height >= h*width {
			w--
		} else {
			h--
		}
	}
	return w, h
}
