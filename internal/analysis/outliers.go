package analysis

import "math"

// IQRFactor scales the interquartile range into the fences.
const IQRFactor = 1.5

// Outliers reports the IQR fences of the ndvi column.
type Outliers struct {
	Q1, Q3 float64
	IQR    float64
	Lower  float64
	Upper  float64
	Count  int
}

// DetectOutliers counts values strictly outside [Q1-1.5*IQR, Q3+1.5*IQR].
func DetectOutliers(values []float64) Outliers {
	if len(values) == 0 {
		nan := math.NaN()
		return Outliers{Q1: nan, Q3: nan, IQR: nan, Lower: nan, Upper: nan}
	}
	sorted := sortedCopy(values)
	o := Outliers{Q1: Quantile(sorted, 0.25), Q3: Quantile(sorted, 0.75)}
	o.IQR = o.Q3 - o.Q1
	o.Lower = o.Q1 - IQRFactor*o.IQR
	o.Upper = o.Q3 + IQRFactor*o.IQR
	for _, v := range values {
		if v < o.Lower || v > o.Upper {
			o.Count++
		}
	}
	return o
}
