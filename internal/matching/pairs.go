package matching

// Pair assigns one mate-call row: the caller and their partner, both as
// indices into the active roster. Indices are -1 when the pool is empty.
type Pair struct {
	CallerIdx  int
	PartnerIdx int
}

// refillStep spaces the seeds of successive pool refills so each batch is
// a distinct but reproducible permutation.
const refillStep = 541

// interleaveOffset reseeds the final slot shuffle that mixes caller and
// partner roles.
const interleaveOffset = 9999

// GeneratePairs builds rowCount caller/partner pairs from a pool of
// poolSize active mates. Every pool member appears at least once whenever
// rowCount*2 >= poolSize. Self-pairings are resolved by a single forward
// pass of partner swaps with the next row; a residual conflict the pass
// leaves behind is accepted rather than re-resolved.
func GeneratePairs(rowCount, poolSize, seed int) []Pair {
	pairs := make([]Pair, rowCount)
	if poolSize == 0 {
		for i := range pairs {
			pairs[i] = Pair{CallerIdx: -1, PartnerIdx: -1}
		}
		return pairs
	}

	indices := make([]int, poolSize)
	for i := range indices {
		indices[i] = i
	}

	// First batch guarantees coverage; refills top the pool up to the
	// slot count with fresh permutations.
	pool := Shuffle(indices, seed)
	totalSlots := rowCount * 2
	extraSeed := seed
	for len(pool) < totalSlots {
		extraSeed += refillStep
		pool = append(pool, Shuffle(indices, extraSeed)...)
	}
	slots := Shuffle(pool[:totalSlots], seed+interleaveOffset)

	for i := 0; i < rowCount; i++ {
		pairs[i] = Pair{CallerIdx: slots[2*i], PartnerIdx: slots[2*i+1]}
	}

	if poolSize > 1 {
		for i := 0; i < rowCount; i++ {
			if pairs[i].CallerIdx == pairs[i].PartnerIdx {
				next := (i + 1) % rowCount
				pairs[i].PartnerIdx, pairs[next].PartnerIdx = pairs[next].PartnerIdx, pairs[i].PartnerIdx
			}
		}
	}
	return pairs
}

// SelfPairCount reports how many rows pair a caller with themselves.
func SelfPairCount(pairs []Pair) int {
	n := 0
	for _, p := range pairs {
		if p.CallerIdx >= 0 && p.CallerIdx == p.PartnerIdx {
			n++
		}
	}
	return n
}
