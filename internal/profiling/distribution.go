package profiling

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// DistributionStats describes the shape of a numeric column's distribution
type DistributionStats struct {
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"` // total kurtosis, 3.0 for a normal
	IsNormal bool    `json:"is_normal"`
	NormalP  float64 `json:"normal_p"`
}

// analyzeDistribution computes shape statistics over non-missing values
func analyzeDistribution(valid []float64, mean, stdDev float64) DistributionStats {
	skewness := sampleSkewness(valid, mean, stdDev)
	kurtosis := sampleKurtosis(valid, mean, stdDev)
	isNormal, pValue := jarqueBera(valid, skewness, kurtosis-3)
	return DistributionStats{
		Skewness: skewness,
		Kurtosis: kurtosis,
		IsNormal: isNormal,
		NormalP:  pValue,
	}
}

// sampleSkewness returns the adjusted Fisher-Pearson skewness coefficient
func sampleSkewness(data []float64, mean, stdDev float64) float64 {
	if len(data) < 3 || stdDev == 0 {
		return 0
	}

	n := float64(len(data))
	sumCubed := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sumCubed += d * d * d
	}

	skewness := sumCubed / n
	correction := math.Sqrt(n*(n-1)) / (n - 2)
	return skewness * correction
}

// sampleKurtosis returns bias-corrected total kurtosis
func sampleKurtosis(data []float64, mean, stdDev float64) float64 {
	if len(data) < 4 || stdDev == 0 {
		return 3.0 // normal kurtosis
	}

	n := float64(len(data))
	sumFourth := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sumFourth += d * d * d * d
	}

	kurtosis := sumFourth / n
	if n > 3 {
		correction := (n - 1) / ((n - 2) * (n - 3))
		kurtosis = kurtosis*correction + 6/(n+1)
	}
	return kurtosis + 3
}

// jarqueBera runs the Jarque-Bera normality test on precomputed skewness and
// excess kurtosis. The statistic is asymptotically chi-squared with two
// degrees of freedom.
func jarqueBera(data []float64, skewness, excessKurtosis float64) (isNormal bool, pValue float64) {
	if len(data) < 8 {
		return false, 1.0
	}

	n := float64(len(data))
	jb := n / 6 * (skewness*skewness + excessKurtosis*excessKurtosis/4)

	chi2 := distuv.ChiSquared{K: 2}
	pValue = 1 - chi2.CDF(jb)
	isNormal = pValue > 0.05
	return isNormal, pValue
}
