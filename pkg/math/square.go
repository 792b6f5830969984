package math

// square is an n×n scratch matrix (n <= 4) backing the recursive
// determinant. It lives on the stack; minors are copies.
type square struct {
	n int
	a [4][4]float32
}

// det expands cofactors along row 0. A 1×1 determinant is its sole element.
func (s square) det() float32 {
	if s.n == 1 {
		return s.a[0][0]
	}
	var d float32
	for j := 0; j < s.n; j++ {
		d += s.a[0][j] * s.cofactor(0, j)
	}
	return d
}

// minor returns s with the given row and column removed.
func (s square) minor(row, col int) square {
	m := square{n: s.n - 1}
	for i := 0; i < m.n; i++ {
		si := i
		if i >= row {
			si++
		}
		for j := 0; j < m.n; j++ {
			sj := j
			if j >= col {
				sj++
			}
			m.a[i][j] = s.a[si][sj]
		}
	}
	return m
}

func (s square) cofactor(row, col int) float32 {
	c := s.minor(row, col).det()
	if (row+col)%2 == 1 {
		return -c
	}
	return c
}
