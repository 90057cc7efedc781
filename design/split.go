package design

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/eleanorharrisonn/Diabetic-Readmissions/glm"
)

// Split partitions the data set into training and held-out subsets.  A
// seeded permutation assigns ceil(frac*n) rows to the training set; every
// row lands in exactly one partition, and the assignment is reproducible
// for a fixed seed and row order.  Row order within each partition follows
// the original data set.
func Split(ds glm.Dataset, frac float64, seed int64) (train, test glm.Dataset, err error) {

	if frac <= 0 || frac >= 1 {
		return glm.Dataset{}, glm.Dataset{}, fmt.Errorf("design: training fraction %v out of (0, 1)", frac)
	}

	n := ds.NumObs()
	ntrain := int(math.Ceil(frac * float64(n)))
	if ntrain >= n {
		return glm.Dataset{}, glm.Dataset{}, fmt.Errorf("design: %d rows leave an empty held-out set", n)
	}

	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)

	trainIdx := append([]int(nil), perm[0:ntrain]...)
	testIdx := append([]int(nil), perm[ntrain:n]...)
	sort.Ints(trainIdx)
	sort.Ints(testIdx)

	return ds.Subset(trainIdx), ds.Subset(testIdx), nil
}
