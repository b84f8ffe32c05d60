package analysis

import (
	"math"
	"math/cmplx"
)

// FFT is a recursive radix-2 transform. len(data) must be a power of two.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)

	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

// PowerSpectrum returns |X_k| for k < n/2 where n is len(data) rounded up
// to a power of two. The mean is removed and the tail zero-padded first.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	n := nextPow2(len(data))
	padded := make([]float64, n)

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))
	for i, v := range data {
		padded[i] = v - mean
	}

	fft := FFT(padded)
	ps := make([]float64, len(fft)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}

	return ps
}

// DominantPeriod returns the period, in ticks, of the strongest non-DC bin
// of the series' spectrum, or 0 when the series is flat or too short.
// sampleEvery is the tick spacing between consecutive values.
func DominantPeriod(data []float64, sampleEvery int) float64 {
	if sampleEvery < 1 {
		sampleEvery = 1
	}
	ps := PowerSpectrum(data)
	if len(ps) < 2 {
		return 0
	}

	best := 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > ps[best] || best == 0 {
			best = k
		}
	}
	if ps[best] < 1e-12 {
		return 0
	}

	n := nextPow2(len(data))
	return float64(n) / float64(best) * float64(sampleEvery)
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
