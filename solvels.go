// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.19
//

package gnssviz

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Solve the observation equation using weighted least squares
// - dx = (G^t W G)^-1 G^t W dr
// - Return the error covariance matrix (G^t W G)^-1 as cov
func SolveLS(G mat.Matrix, dr mat.Vector, W mat.Matrix) (dx mat.Vector, cov mat.Matrix, err error) {

	n1, m1 := G.Dims()
	n2, m2 := W.Dims()
	if n1 != n2 {
		return nil, nil, fmt.Errorf("invalid matrix size. G^T(%d x %d), W(%d x %d)", m1, n1, n2, m2)
	}
	l1 := dr.Len()
	if l1 != m2 {
		return nil, nil, fmt.Errorf("invalid matrix size. W(%d x %d), dr(%d x 1)", n2, m2, l1)
	}

	// A (G^t W G)
	var WG mat.Dense
	WG.Mul(W, G)
	var A mat.Dense
	A.Mul(G.T(), &WG)

	// b (G^t W dr)
	var GtW mat.Dense
	GtW.Mul(G.T(), W)
	var b mat.VecDense
	b.MulVec(&GtW, dr)

	// Solve for x (x = A^-1 b)
	var x mat.VecDense
	err = x.SolveVec(&A, &b)
	if err != nil {
		return nil, nil, err
	}
	dx = &x

	// Set (G^T W G)^-1 as the covariance matrix
	var c mat.Dense
	err = c.Inverse(&A)
	if err != nil {
		return nil, nil, err
	}
	cov = &c

	return
}

// Vandermonde design matrix for a polynomial of the given order at abscissae t
func vander(t []float64, order int) *mat.Dense {
	G := mat.NewDense(len(t), order+1, nil)
	for i, ti := range t {
		v := 1.0
		for j := 0; j <= order; j++ {
			G.Set(i, j, v)
			v *= ti
		}
	}
	return G
}

// Least squares polynomial fit of y over t. Coefficients are in ascending powers.
func PolyFit(t, y []float64, order int) ([]float64, error) {
	if len(t) != len(y) {
		return nil, fmt.Errorf("length mismatch t(%d), y(%d)", len(t), len(y))
	}
	if len(t) < order+1 {
		return nil, fmt.Errorf("%d points are not enough for order %d", len(t), order)
	}
	G := vander(t, order)
	W := identity(len(t))
	dx, _, err := SolveLS(G, mat.NewVecDense(len(y), y), W)
	if err != nil {
		return nil, err
	}
	c := make([]float64, order+1)
	for i := range c {
		c[i] = dx.AtVec(i)
	}
	return c, nil
}

// Evaluate polynomial coefficients (ascending powers) at t
func PolyVal(c []float64, t float64) float64 {
	v := 0.0
	for i := len(c) - 1; i >= 0; i-- {
		v = v*t + c[i]
	}
	return v
}

func identity(n int) *mat.DiagDense {
	d := make([]float64, n)
	for i := range d {
		d[i] = 1
	}
	return mat.NewDiagDense(n, d)
}
