package jobposting

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Split is a partition of a dataset into train and test records. Both keep the order
// the records were loaded in.
type Split struct {
	Train []Record
	Test  []Record
}

// TrainTestSplit moves round(len(records)*fraction) records, picked pseudo-randomly
// from seed, to the test set and the rest to the train set. With stratify each label
// class is sampled separately, its share of the test quota given by the largest
// remainder method.
func TrainTestSplit(records []Record, fraction float64, seed int64, stratify bool) (Split, error) {
	if fraction <= 0 || fraction >= 1 {
		return Split{}, fmt.Errorf("test fraction %v not in (0, 1)", fraction)
	}

	if len(records) == 0 {
		return Split{}, nil
	}

	rng := rand.New(rand.NewSource(seed))
	nTest := int(math.Round(float64(len(records)) * fraction))

	var test []int
	if stratify {
		test = stratifiedSample(records, nTest, rng)
	} else {
		test = rng.Perm(len(records))[:nTest]
	}

	inTest := make([]bool, len(records))
	for _, i := range test {
		inTest[i] = true
	}

	var split Split
	for i, r := range records {
		if inTest[i] {
			split.Test = append(split.Test, r)
		} else {
			split.Train = append(split.Train, r)
		}
	}
	return split, nil
}

func stratifiedSample(records []Record, nTest int, rng *rand.Rand) []int {
	// classes[0] holds legit postings, classes[1] fraudulent ones
	var classes [2][]int
	for i, r := range records {
		if r.Fraudulent {
			classes[1] = append(classes[1], i)
		} else {
			classes[0] = append(classes[0], i)
		}
	}

	type share struct {
		class     int
		take      int
		remainder float64
	}
	var shares []share
	assigned := 0
	for c, idxs := range classes {
		quota := float64(len(idxs)) * float64(nTest) / float64(len(records))
		take := int(math.Floor(quota))
		shares = append(shares, share{class: c, take: take, remainder: quota - float64(take)})
		assigned += take
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].remainder > shares[j].remainder
	})
	for i := 0; assigned < nTest && i < len(shares); i++ {
		if shares[i].take < len(classes[shares[i].class]) {
			shares[i].take++
			assigned++
		}
	}

	take := make([]int, len(classes))
	for _, s := range shares {
		take[s.class] = s.take
	}

	var test []int
	for c, idxs := range classes {
		for _, p := range rng.Perm(len(idxs))[:take[c]] {
			test = append(test, idxs[p])
		}
	}
	return test
}
