package calculator

import (
	"fmt"
)

// EqualSplit divides total into n integer shares that sum to total exactly.
// The remainder of the integer division goes one unit at a time to the
// first participants in list order.
//
// Example: EqualSplit(100, 3) = [34, 33, 33]
func EqualSplit(total int64, n int) ([]int64, error) {
	if total <= 0 {
		return nil, fmt.Errorf("total must be positive")
	}
	if n <= 0 {
		return nil, fmt.Errorf("must have at least one participant")
	}

	base := total / int64(n)
	remainder := total % int64(n)

	shares := make([]int64, n)
	for i := range shares {
		shares[i] = base
		if int64(i) < remainder {
			shares[i]++
		}
	}
	return shares, nil
}

// Sum adds up amounts.
func Sum(amounts []int64) int64 {
	var total int64
	for _, a := range amounts {
		total += a
	}
	return total
}
