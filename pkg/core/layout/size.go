package layout

const (
	// DefaultRawSize is the raw size assumed when a node carries none.
	DefaultRawSize = 10.0

	// MaxRawSize is the top of the raw size scale produced upstream
	// (in-degree mapped onto 10..150).
	MaxRawSize = 150.0

	// FocalMultiplier scales the focal node in detail mode.
	FocalMultiplier = 3.0

	// FallbackSize is used by placement for nodes without a positive size.
	FallbackSize = 5.0
)

// RawSize resolves an optional size hint. Missing, zero and negative hints
// all fall back to DefaultRawSize.
func RawSize(hint *float64) float64 {
	if hint == nil || *hint <= 0 {
		return DefaultRawSize
	}
	return *hint
}

// NormalizeSize maps a raw popularity size onto the rendering scale:
// ((raw/150)*45 + 5) / 2, tripled for the focal node of a detail layout.
func NormalizeSize(raw float64, focal bool) float64 {
	size := (raw*45/MaxRawSize + 5) / 2
	if focal {
		size *= FocalMultiplier
	}
	return size
}
