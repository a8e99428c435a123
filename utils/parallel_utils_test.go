package utils

import (
	"fmt"
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionMap(t *testing.T) {
	{ // Test PartitionMap
		getHisto := func(K, Np int) (histo map[int]int) {
			pm := NewPartitionMap(Np, K)
			histo = make(map[int]int)
			for np := 0; np < pm.ParallelDegree; np++ {
				kMin, kMax := pm.GetBucketRange(np)
				histo[kMax-kMin]++
			}
			return
		}
		getTotal := func(histo map[int]int) (total int) {
			for key, count := range histo {
				total += key * count
			}
			return
		}
		assert.Equal(t, map[int]int{0: 30, 1: 2}, getHisto(2, 32))
		assert.Equal(t, map[int]int{1: 32}, getHisto(32, 32))
		assert.Equal(t, map[int]int{8: 32}, getHisto(256, 32))
		assert.Equal(t, map[int]int{8: 1, 9: 31}, getHisto(287, 32))
		assert.Equal(t, 287, getTotal(getHisto(287, 32)))
		for n := 64; n < 2000; n++ {
			var (
				keys   [2]float64
				keyNum int
			)
			histo := getHisto(n, 32)
			for key := range histo {
				keys[keyNum] = float64(key)
				keyNum++
			}
			if keyNum == 2 {
				assert.Equal(t, 1., math.Abs(keys[0]-keys[1])) // Maximum imbalance of 1
			}
			assert.Equal(t, n, getTotal(histo))
		}
	}
	{ // Every index maps back to the partition whose range holds it
		for maxIndex := 1; maxIndex < 300; maxIndex++ {
			for _, np := range []int{1, 5, 32} {
				pm := NewPartitionMap(np, maxIndex)
				for k := 0; k < maxIndex; k++ {
					bn := pm.Partition(k)
					kMin, kMax := pm.GetBucketRange(bn)
					assert.True(t, k >= kMin && k < kMax, "index %d partition %d range [%d,%d)", k, bn, kMin, kMax)
				}
				assert.Equal(t, -1, pm.Partition(-1))
				assert.Equal(t, -1, pm.Partition(maxIndex))
			}
		}
	}
	{ // Test CPU partition never exceeds the item count
		pm := NewCPUPartitionMap(1)
		assert.Equal(t, 1, pm.ParallelDegree)
		pm = NewCPUPartitionMap(0)
		assert.Equal(t, 1, pm.ParallelDegree)
		kMin, kMax := pm.GetBucketRange(0)
		assert.Equal(t, 0, kMax-kMin)
		assert.Equal(t, -1, pm.Partition(0))
	}
}

func TestParallelFor(t *testing.T) {
	{ // Every index is visited exactly once
		var (
			K      = 1001
			pm     = NewPartitionMap(7, K)
			visits = make([]int32, K)
		)
		err := pm.ParallelFor(func(bn, kMin, kMax int) error {
			for k := kMin; k < kMax; k++ {
				atomic.AddInt32(&visits[k], 1)
			}
			return nil
		})
		assert.NoError(t, err)
		for k := range visits {
			assert.Equal(t, int32(1), visits[k])
		}
	}
	{ // The lowest numbered failing partition wins
		pm := NewPartitionMap(4, 100)
		err := pm.ParallelFor(func(bn, kMin, kMax int) error {
			if bn >= 2 {
				return fmt.Errorf("partition %d failed", bn)
			}
			return nil
		})
		assert.EqualError(t, err, "partition 2 failed")
	}
}
