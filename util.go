package keyedmap

// defaultBuckets is the bucket count given to a map with no storage on its
// first insert
const defaultBuckets = 8

// growthNeeded reports whether count pairs over buckets slots meets the 0.75
// load factor that triggers doubling. Kept in integer arithmetic so the
// threshold is exact.
func growthNeeded(count, buckets uintptr) bool {
	return count*4 >= buckets*3
}
