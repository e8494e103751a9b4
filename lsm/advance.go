package lsm

// Advance returns the number of elements at the front of slice for
// which pred holds, assuming pred is true on a prefix of slice and
// false from then on (the caller's invariant, not checked here).
//
// It gallops: exponential doubling to find a range containing the
// boundary, then exponentially-shrinking steps to pin it down exactly,
// giving a result in time logarithmic in the answer rather than linear
// in len(slice). Grounded on
// original_source/src/timely_rule/mod.rs's `pub fn advance`.
func Advance[T any](slice []T, pred func(T) bool) int {
	index := 0
	if index < len(slice) && pred(slice[index]) {
		step := 1
		for index+step < len(slice) && pred(slice[index+step]) {
			index += step
			step <<= 1
		}

		step >>= 1
		for step > 0 {
			if index+step < len(slice) && pred(slice[index+step]) {
				index += step
			}
			step >>= 1
		}

		index++
	}
	return index
}
