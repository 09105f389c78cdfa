package mosaic

import "math"

// fieldNoise is a smooth analytic noise over grid coordinates that drifts
// slowly with t. The result is in [0,1].
func fieldNoise(x, y, t float64) float64 {
	v := math.Sin(x*0.73+t*0.21)*math.Cos(y*0.61-t*0.17) +
		0.5*math.Sin((x+y)*0.37+t*0.13)
	return clampF((v+1.5)/3, 0, 1)
}

// accepts is the placement gate: a cell passes when its noise reaches
// 1-noiseChance, so noiseChance 1 accepts every cell.
func accepts(x, y, t, noiseChance float64) bool {
	return fieldNoise(x, y, t) >= 1-clampF(noiseChance, 0, 1)
}
