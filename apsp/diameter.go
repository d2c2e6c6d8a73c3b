// SPDX-License-Identifier: MIT

package apsp

// Diameter returns the longest finite distance over ordered pairs i ≠ j and
// every pair attaining it, row-major. Unreachable pairs are ignored; a table
// without any reachable pair yields the zero Diameter.
func (t *Table) Diameter() Diameter {
	var out Diameter
	for i := 0; i < t.n; i++ {
		row := t.dist[i*t.n : (i+1)*t.n]
		for j, d := range row {
			if i == j || d < 0 {
				continue
			}
			switch dd := int(d); {
			case dd > out.Distance:
				out.Distance = dd
				out.Endpoints = out.Endpoints[:0]
				fallthrough
			case dd == out.Distance:
				out.Endpoints = append(out.Endpoints, Pair{From: t.m.At(i).ID, To: t.m.At(j).ID})
			}
		}
	}

	return out
}
