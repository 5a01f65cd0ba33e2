package align

import "math"

// distance computes the minimal edit cost to turn observed into
// reference (match/substitute, insert, delete), optionally returning
// the optimal alignment path. It is the same row-rotating
// windowed DP recurrence as the teacher's dtw.DTW, with the numeric
// |a[i]-b[j]| local cost replaced by a label-equality cost.
//
// Unlike dtw.DTW, empty sequences are not an error: aligning an empty
// trace against a reference of length M costs M deletions, and
// vice-versa, which is the ordinary edit-distance base case.
func distance(observed, reference []string, opts *Options) (dist float64, path []Coord, err error) {
	n, m := len(observed), len(reference)

	if err = opts.Validate(); err != nil {
		return 0, nil, err
	}

	window := opts.Window
	mode := opts.MemoryMode
	needPath := opts.ReturnPath
	prevRow := make([]float64, m+1)
	currRow := make([]float64, m+1)

	var dpMatrix [][]float64
	if mode == FullMatrix {
		dpMatrix = make([][]float64, n+1)
		dpMatrix[0] = make([]float64, m+1)
	}

	// Row 0: aligning an empty observed prefix with reference[0:j]
	// costs j deletions.
	for j := 1; j <= m; j++ {
		prevRow[j] = prevRow[j-1] + opts.DeleteCost
	}
	if mode == FullMatrix {
		copy(dpMatrix[0], prevRow)
	}

	for i := 1; i <= n; i++ {
		// Column 0: aligning observed[0:i] with an empty reference
		// costs i insertions.
		currRow[0] = currRow0(i, opts)

		for j := 1; j <= m; j++ {
			if window >= 0 && absInt(i-j) > window {
				currRow[j] = infinity()
				continue
			}

			localCost := 0.0
			if observed[i-1] != reference[j-1] {
				localCost = opts.SubstituteCost
			}

			matchCost := prevRow[j-1] + localCost
			insertCost := prevRow[j] + opts.InsertCost
			deleteCost := currRow[j-1] + opts.DeleteCost

			currRow[j] = min3(matchCost, insertCost, deleteCost)
		}

		if mode == FullMatrix {
			rowCopy := make([]float64, m+1)
			copy(rowCopy, currRow)
			dpMatrix[i] = rowCopy
		}

		prevRow, currRow = currRow, prevRow
	}

	dist = prevRow[m]

	if needPath {
		path, err = backtrack(dpMatrix, observed, reference, opts)
	}

	return dist, path, err
}

// currRow0 computes the column-0 boundary value without rebuilding the
// running sum each row: i insertions from an empty reference.
func currRow0(i int, opts *Options) float64 {
	return float64(i) * opts.InsertCost
}

// backtrack reconstructs the optimal alignment path from dpMatrix,
// walking backward from (N,M) to (0,0) the way dtw.backtrack does.
func backtrack(dp [][]float64, observed, reference []string, opts *Options) ([]Coord, error) {
	i, j := len(observed), len(reference)
	path := make([]Coord, 0, i+j)

	for i > 0 || j > 0 {
		var x, y int
		switch {
		case i > 0 && j > 0:
			x, y = i-1, j-1
		case i > 0:
			x, y = i-1, 0
		default:
			x, y = 0, j-1
		}
		path = append(path, Coord{I: x, J: y})

		moved := false

		if i > 0 && j > 0 {
			localCost := 0.0
			if observed[i-1] != reference[j-1] {
				localCost = opts.SubstituteCost
			}
			if almostEqual(dp[i][j], dp[i-1][j-1]+localCost) {
				i, j = i-1, j-1
				moved = true
			}
		}
		if !moved && i > 0 && almostEqual(dp[i][j], dp[i-1][j]+opts.InsertCost) {
			i--
			moved = true
		}
		if !moved && j > 0 && almostEqual(dp[i][j], dp[i][j-1]+opts.DeleteCost) {
			j--
			moved = true
		}

		if !moved {
			return nil, ErrIncompletePath
		}
	}

	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path, nil
}

func min3(a, b, c float64) float64 {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func almostEqual(a, b float64) bool {
	const eps = 1e-9
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func infinity() float64 {
	return math.Inf(1)
}
