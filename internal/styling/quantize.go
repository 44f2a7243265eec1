package styling

// Xterm 256-color palette layout:
//
//	0-15     basic colors
//	16-231   6x6x6 cube, index = 16 + 36*r + 6*g + b, r,g,b in [0,5]
//	232-255  grayscale ramp, level = 8 + 10*(index-232)
const (
	cubeStart     = 16
	grayStart     = 232
	graySteps     = 24
	FallbackIndex = 15 // white, used for absent colors
)

var cubeLevels = [6]int{0, 95, 135, 175, 215, 255}

// QuantizeHex maps a hex color string to the nearest 256-color palette index.
// Malformed input maps to FallbackIndex.
func QuantizeHex(hex string) uint8 {
	return Quantize(ParseColor(hex))
}

// Quantize maps c to the nearest entry of the cube or the grayscale ramp,
// whichever is closer in RGB space. Ties prefer the cube.
func Quantize(c Color) uint8 {
	if !c.Valid {
		return FallbackIndex
	}
	r, g, b := int(c.R), int(c.G), int(c.B)

	ri, gi, bi := nearestCubeLevel(r), nearestCubeLevel(g), nearestCubeLevel(b)
	cubeDist := distSq(r, g, b, cubeLevels[ri], cubeLevels[gi], cubeLevels[bi])
	cubeIdx := cubeStart + 36*ri + 6*gi + bi

	gi2 := nearestGrayStep((r + g + b) / 3)
	level := grayLevel(gi2)
	grayDist := distSq(r, g, b, level, level, level)

	if grayDist < cubeDist {
		return uint8(grayStart + gi2)
	}
	return uint8(cubeIdx)
}

// PaletteRGB returns the color of a cube or grayscale palette index.
// Basic indices 0-15 are terminal-defined; only 15 (white) is reported.
func PaletteRGB(index uint8) (Color, bool) {
	switch {
	case index >= grayStart:
		l := uint8(grayLevel(int(index) - grayStart))
		return RGB(l, l, l), true
	case index >= cubeStart:
		n := int(index) - cubeStart
		return RGB(uint8(cubeLevels[n/36]), uint8(cubeLevels[(n%36)/6]), uint8(cubeLevels[n%6])), true
	case index == FallbackIndex:
		return RGB(255, 255, 255), true
	}
	return Color{}, false
}

func nearestCubeLevel(v int) int {
	best := 0
	bestDist := abs(v - cubeLevels[0])
	for i := 1; i < len(cubeLevels); i++ {
		if d := abs(v - cubeLevels[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func nearestGrayStep(v int) int {
	step := (v - 8 + 5) / 10
	if v < 8 {
		step = 0
	}
	if step >= graySteps {
		step = graySteps - 1
	}
	return step
}

func grayLevel(step int) int {
	return 8 + 10*step
}

func distSq(r1, g1, b1, r2, g2, b2 int) int {
	dr, dg, db := r1-r2, g1-g2, b1-b2
	return dr*dr + dg*dg + db*db
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
