package datagen

// Shuffle permutes records uniformly at random in place.
func Shuffle(records []Record, rnd Source) {
	rnd.Shuffle(len(records), func(i, j int) {
		records[i], records[j] = records[j], records[i]
	})
}
