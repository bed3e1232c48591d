package datagen

import "strconv"

type Key int

func (k Key) String() string {
	return strconv.Itoa(int(k))
}

// KeyRange is the half-open interval [Start, End).
type KeyRange struct {
	Start Key
	End   Key
}

func (r KeyRange) Len() int {
	if r.End <= r.Start {
		return 0
	}
	return int(r.End - r.Start)
}

func (r KeyRange) Contains(k Key) bool {
	return k >= r.Start && k < r.End
}

func (r KeyRange) Keys() []Key {
	keys := make([]Key, 0, r.Len())
	for k := r.Start; k < r.End; k++ {
		keys = append(keys, k)
	}
	return keys
}

// GenerateKeys returns the primary range [0, size) and the disjoint
// secondary range [size, 2*size).
func GenerateKeys(size int) (primary, secondary KeyRange) {
	primary = KeyRange{Start: 0, End: Key(size)}
	secondary = KeyRange{Start: Key(size), End: Key(2 * size)}
	return primary, secondary
}
