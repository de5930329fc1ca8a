package quad

import "math"

const kronrodPoints = 15

// 15-point Kronrod abscissae (positive half, descending) and weights, with
// the embedded 7-point Gauss weights. The Gauss nodes are the odd entries of
// xgk plus the centre.
var (
	xgk = [8]float64{
		0.991455371120812639206854697526329,
		0.949107912342758524526189684047851,
		0.864864423359769072789712788640926,
		0.741531185599394439863864773280788,
		0.586087235467691130294144845693013,
		0.405845151377397166906606412076961,
		0.207784955007898467600689403773245,
		0.000000000000000000000000000000000,
	}
	wgk = [8]float64{
		0.022935322010529224963732008058970,
		0.063092092629978553290700663189204,
		0.104790010322250183839876322541518,
		0.140653259715525918745189590510238,
		0.169004726639267902826583426598550,
		0.190350578064785409913256402421014,
		0.204432940075298892414161999234649,
		0.209482141084727828012999174891714,
	}
	wg = [4]float64{
		0.129484966168869693270611432679082,
		0.279705391489276667901467771423780,
		0.381830050505118944950369775488975,
		0.417959183673469387755102040816327,
	}
)

type segment struct {
	a, b  float64
	value float64
	err   float64
}

func (s segment) finite() bool {
	return !math.IsNaN(s.value) && !math.IsInf(s.value, 0) && !math.IsNaN(s.err)
}

// kronrod applies the G7-K15 pair on [a, b]. The error estimate is the
// difference between the two rules.
func kronrod(f func(float64) float64, a, b float64) segment {
	center := 0.5 * (a + b)
	half := 0.5 * (b - a)

	fc := f(center)
	resK := fc * wgk[7]
	resG := fc * wg[3]

	for j := 0; j < 7; j++ {
		dx := half * xgk[j]
		sum := f(center-dx) + f(center+dx)
		resK += wgk[j] * sum
		if j%2 == 1 {
			resG += wg[j/2] * sum
		}
	}

	return segment{
		a:     a,
		b:     b,
		value: resK * half,
		err:   math.Abs((resK - resG) * half),
	}
}

// segmentHeap is a max-heap on the error estimate.
type segmentHeap []segment

func (h segmentHeap) Len() int           { return len(h) }
func (h segmentHeap) Less(i, j int) bool { return h[i].err > h[j].err }
func (h segmentHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *segmentHeap) Push(x any) { *h = append(*h, x.(segment)) }

func (h *segmentHeap) Pop() any {
	old := *h
	n := len(old)
	s := old[n-1]
	*h = old[:n-1]
	return s
}
