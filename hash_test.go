package keyedmap

import (
	"fmt"
	"testing"
)

func TestDigestDeterministic(t *testing.T) {
	m := New[int]()
	for i := 0; i < 100; i++ {
		key := fmt.Sprintf("key%d", i)
		if m.keyer.digest(key) != m.keyer.digest(key) {
			t.Fatalf("digest for %q is not stable within one table.", key)
		}
	}
}

func TestDigestReproducibleFromSecret(t *testing.T) {
	a := NewWithSecretSource[int](fixedSecret(42))
	b := NewWithSecretSource[int](fixedSecret(42))
	for i := 0; i < 100; i++ {
		key := fmt.Sprintf("key%d", i)
		if a.keyer.digest(key) != b.keyer.digest(key) {
			t.Fatalf("tables built from the same secret disagree on %q.", key)
		}
	}
}

func TestDistinctTablesDistinctSecrets(t *testing.T) {
	a := New[int]()
	b := New[int]()

	same := 0
	for i := 0; i < 64; i++ {
		key := fmt.Sprintf("key%d", i)
		if a.keyer.digest(key) == b.keyer.digest(key) {
			same++
		}
	}
	// two independent secrets colliding on even one 64-bit digest is
	// vanishingly unlikely
	if same != 0 {
		t.Errorf("independent tables agreed on %d of 64 digests.", same)
	}
}

func TestDigestDistribution(t *testing.T) {
	m := New[int]()

	var occupied [defaultBuckets]int
	for i := 0; i < 1024; i++ {
		occupied[m.keyer.digest(fmt.Sprintf("key%d", i))%defaultBuckets]++
	}
	for bucket, n := range occupied {
		if n == 0 {
			t.Errorf("bucket %d received none of 1024 keys, distribution is skewed.", bucket)
		}
	}
}
