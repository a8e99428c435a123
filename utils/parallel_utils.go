package utils

import (
	"runtime"
	"sort"
	"sync"
)

type PartitionMap struct {
	MaxIndex       int // MaxIndex is partitioned into ParallelDegree partitions
	ParallelDegree int
	Partitions     [][2]int // Beginning and end index of partitions
}

func NewPartitionMap(ParallelDegree, maxIndex int) (pm *PartitionMap) {
	if ParallelDegree < 1 {
		ParallelDegree = 1
	}
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: ParallelDegree,
		Partitions:     make([][2]int, ParallelDegree),
	}
	for n := 0; n < ParallelDegree; n++ {
		pm.Partitions[n] = pm.Split1D(n)
	}
	return
}

// NewCPUPartitionMap splits maxIndex over the available CPUs, never using more partitions than items
func NewCPUPartitionMap(maxIndex int) (pm *PartitionMap) {
	np := runtime.NumCPU()
	if maxIndex < np {
		np = maxIndex
	}
	return NewPartitionMap(np, maxIndex)
}

// Partition returns the partition holding index k, or -1 when k is outside [0, MaxIndex)
func (pm *PartitionMap) Partition(k int) (bn int) {
	if k < 0 || k >= pm.MaxIndex {
		return -1
	}
	// Partition ends are non decreasing, empty partitions never hold k
	return sort.Search(pm.ParallelDegree, func(n int) bool { return pm.Partitions[n][1] > k })
}

func (pm *PartitionMap) GetBucketRange(bucketNum int) (kMin, kMax int) {
	kMin, kMax = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

func (pm *PartitionMap) Split1D(threadNum int) (bucket [2]int) {
	// This routine splits one dimension into c.ParallelDegree pieces, with a maximum imbalance of one item
	var (
		Npart            = pm.MaxIndex / (pm.ParallelDegree)
		startAdd, endAdd int
		remainder        int
	)
	remainder = pm.MaxIndex % pm.ParallelDegree
	if remainder != 0 { // spread the remainder over the first chunks evenly
		if threadNum+1 > remainder {
			startAdd = remainder
			endAdd = 0
		} else {
			startAdd = threadNum
			endAdd = 1
		}
	}
	bucket[0] = threadNum*Npart + startAdd
	bucket[1] = bucket[0] + Npart + endAdd
	return
}

/*
ParallelFor runs f once per partition, each in its own goroutine, and returns when all are done.
f receives the partition number and its half open index range [kMin, kMax). The first error
reported by any partition, in partition order, is returned.
*/
func (pm *PartitionMap) ParallelFor(f func(bn, kMin, kMax int) error) (err error) {
	var (
		wg   = sync.WaitGroup{}
		errs = make([]error, pm.ParallelDegree)
	)
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			kMin, kMax := pm.GetBucketRange(np)
			errs[np] = f(np, kMin, kMax)
		}(np)
	}
	wg.Wait()
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return
}
