// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.19
//

package gnssviz

import (
	"gonum.org/v1/gonum/mat"
)

// Savitzky-Golay smoothing.
// Each output value is the value at the window centre of a least squares
// polynomial fitted to the surrounding window. The first and last window/2
// values are taken from a polynomial fitted to the first/last full window.
func SavGol(y []float64, window, order int) ([]float64, error) {
	if err := checkSavGol(len(y), window, order); err != nil {
		return nil, err
	}
	half := window / 2
	n := len(y)
	out := make([]float64, n)

	// Abscissae scaled into [-1, 1] to keep the normal matrix well conditioned
	scale := float64(half)
	if half == 0 {
		scale = 1
	}
	t := make([]float64, window)
	for i := range t {
		t[i] = float64(i-half) / scale
	}

	h, err := savGolWeights(t, order)
	if err != nil {
		return nil, err
	}

	// Interior points. Weights sum to 1, so work on differences to the
	// centre value to keep precision on large ECEF coordinates.
	for i := half; i < n-half; i++ {
		s := 0.0
		for k := 0; k < window; k++ {
			s += h[k] * (y[i-half+k] - y[i])
		}
		out[i] = y[i] + s
	}

	// Edges
	if half > 0 {
		if err := fitEdge(y[:window], t, order, out[:half], t[:half]); err != nil {
			return nil, err
		}
		if err := fitEdge(y[n-window:], t, order, out[n-half:], t[window-half:]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Smooth each axis of a track
func SavGolXYZ(xyzs []PosXYZ, window, order int) ([]PosXYZ, error) {
	x := make([]float64, len(xyzs))
	y := make([]float64, len(xyzs))
	z := make([]float64, len(xyzs))
	for i, p := range xyzs {
		x[i], y[i], z[i] = p.X, p.Y, p.Z
	}
	var err error
	if x, err = SavGol(x, window, order); err != nil {
		return nil, err
	}
	if y, err = SavGol(y, window, order); err != nil {
		return nil, err
	}
	if z, err = SavGol(z, window, order); err != nil {
		return nil, err
	}
	out := make([]PosXYZ, len(xyzs))
	for i := range out {
		out[i] = PosXYZ{X: x[i], Y: y[i], Z: z[i]}
	}
	return out, nil
}

func checkSavGol(n, window, order int) error {
	perr := func(reason string) error {
		return &FilterParameterError{Window: window, Order: order, Len: n, Reason: reason}
	}
	switch {
	case window <= 0 || window%2 == 0:
		return perr("window length must be a positive odd number")
	case order < 0:
		return perr("polynomial order must not be negative")
	case order >= window:
		return perr("polynomial order must be less than window length")
	case window > n:
		return perr("window length must not exceed the number of samples")
	}
	return nil
}

// Convolution weights giving the fitted value at t=0:
// first row of (G^t G)^-1 G^t
func savGolWeights(t []float64, order int) ([]float64, error) {
	G := vander(t, order)
	_, cov, err := SolveLS(G, mat.NewVecDense(len(t), nil), identity(len(t)))
	if err != nil {
		return nil, err
	}
	c0 := mat.NewVecDense(order+1, mat.Row(nil, 0, cov))
	var h mat.VecDense
	h.MulVec(G, c0)
	return h.RawVector().Data, nil
}

// Fit y over t and write the polynomial evaluated at at into out
func fitEdge(y, t []float64, order int, out, at []float64) error {
	ref := y[len(y)/2]
	d := make([]float64, len(y))
	for i, v := range y {
		d[i] = v - ref
	}
	c, err := PolyFit(t, d, order)
	if err != nil {
		return err
	}
	for i, ti := range at {
		out[i] = ref + PolyVal(c, ti)
	}
	return nil
}
