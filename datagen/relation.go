package datagen

import "fmt"

// Relation ties a primary key to the secondary key that references it.
type Relation struct {
	Primary   Key
	Secondary Key
}

// GenerateRelations pairs every primary key, in ascending order, with a
// secondary key drawn without replacement. The pool is owned here and
// shrinks by swap-remove, so the result is a bijection.
func GenerateRelations(primary, secondary KeyRange, rnd Source) ([]Relation, error) {
	if primary.Len() != secondary.Len() {
		return nil, fmt.Errorf("%w: primary has %d keys, secondary has %d",
			ErrRangeMismatch, primary.Len(), secondary.Len())
	}

	pool := secondary.Keys()
	relations := make([]Relation, 0, primary.Len())
	for k := primary.Start; k < primary.End; k++ {
		i := rnd.Intn(len(pool))
		relations = append(relations, Relation{Primary: k, Secondary: pool[i]})

		last := len(pool) - 1
		pool[i] = pool[last]
		pool = pool[:last]
	}
	return relations, nil
}
