package interp

import "math"

// band is a square matrix stored by diagonals: kl sub-diagonals,
// ku super-diagonals.
type band struct {
	n, kl, ku int
	width     int
	data      []float64
}

func newBand(n, kl, ku int) *band {
	w := kl + ku + 1

	return &band{
		n:     n,
		kl:    kl,
		ku:    ku,
		width: w,
		data:  make([]float64, n*w),
	}
}

func (m *band) at(i, j int) float64 {
	return m.data[i*m.width+j-i+m.kl]
}

func (m *band) set(i, j int, v float64) {
	m.data[i*m.width+j-i+m.kl] = v
}

// solve overwrites rhs with the solution of m*x = rhs. m is destroyed.
// Gaussian elimination without row exchanges keeps the fill-in inside the
// band.
func (m *band) solve(rhs []float64) error {
	n := m.n

	for p := range n {
		piv := m.at(p, p)
		if piv == 0 || math.IsNaN(piv) {
			return ErrSingular
		}

		last := min(n-1, p+m.ku)

		for r := p + 1; r <= min(n-1, p+m.kl); r++ {
			f := m.at(r, p)
			if f == 0 {
				continue
			}

			f /= piv
			m.set(r, p, 0)

			for c := p + 1; c <= last; c++ {
				m.set(r, c, m.at(r, c)-f*m.at(p, c))
			}

			rhs[r] -= f * rhs[p]
		}
	}

	for i := n - 1; i >= 0; i-- {
		s := rhs[i]
		for c := i + 1; c <= min(n-1, i+m.ku); c++ {
			s -= m.at(i, c) * rhs[c]
		}

		rhs[i] = s / m.at(i, i)
	}

	return nil
}
