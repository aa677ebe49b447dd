package utils

// Index is an ordered list of point or row indices.
type Index []int

// NewRange returns the inclusive index range [rmin, rmax].
func NewRange(rmin, rmax int) (r Index) {
	r = make(Index, rmax-rmin+1)
	for i := range r {
		r[i] = i + rmin
	}
	return
}

// Split1D partitions [0,iMax) into numThreads contiguous chunks for parallel
// row assembly. Leading chunks absorb the remainder.
func Split1D(iMax, numThreads int) (ranges [][2]int) {
	if numThreads < 1 {
		numThreads = 1
	}
	if numThreads > iMax {
		numThreads = iMax
	}
	var (
		chunk = iMax / numThreads
		rem   = iMax % numThreads
		begin int
	)
	for n := 0; n < numThreads; n++ {
		size := chunk
		if n < rem {
			size++
		}
		ranges = append(ranges, [2]int{begin, begin + size})
		begin += size
	}
	return
}
