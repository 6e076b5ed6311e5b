package abstraction

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lox/cfreval/internal/game"
)

// Buckets maps, per street, the canonical (board, hole-card-pair) composite
// index to a bucket id. Streets with bucketing "none" have no map at all;
// the strategy for those streets is laid out by hole-card pair directly.
type Buckets struct {
	none       []bool
	numBuckets []int
	buckets    [][]uint32
}

// LoadBuckets resolves every street of a card abstraction, reading bucket
// files from the game's static directory under staticBase.
func LoadBuckets(g *game.Game, ca *CardAbstraction, staticBase string) (*Buckets, error) {
	maxStreet := g.MaxStreet()
	b := &Buckets{
		none:       make([]bool, maxStreet+1),
		numBuckets: make([]int, maxStreet+1),
		buckets:    make([][]uint32, maxStreet+1),
	}
	for st := 0; st <= maxStreet; st++ {
		if ca.Bucketings[st] == BucketingNone {
			b.none[st] = true
			continue
		}
		path := BucketPath(g, staticBase, ca.Bucketings[st], st)
		numBuckets, data, err := ReadBucketFile(path)
		if err != nil {
			return nil, fmt.Errorf("street %d: %w", st, err)
		}
		b.numBuckets[st] = numBuckets
		b.buckets[st] = data
	}
	return b, nil
}

// NewBuckets builds an in-memory bucket map; streets with a nil entry have
// no abstraction. Used by tests and tools.
func NewBuckets(maps [][]uint32) *Buckets {
	b := &Buckets{
		none:       make([]bool, len(maps)),
		numBuckets: make([]int, len(maps)),
		buckets:    maps,
	}
	for st, m := range maps {
		if m == nil {
			b.none[st] = true
			continue
		}
		max := uint32(0)
		for _, v := range m {
			if v > max {
				max = v
			}
		}
		b.numBuckets[st] = int(max) + 1
	}
	return b
}

// None reports whether street st has no card abstraction.
func (b *Buckets) None(st int) bool { return b.none[st] }

// NumBuckets returns the bucket count for street st; zero when None(st).
func (b *Buckets) NumBuckets(st int) int { return b.numBuckets[st] }

// Bucket returns the bucket id for the composite index h on street st.
func (b *Buckets) Bucket(st, h int) int { return int(b.buckets[st][h]) }

// BucketPath names the bucket file for one street of a bucketing.
func BucketPath(g *game.Game, staticBase, bucketing string, st int) string {
	dir := fmt.Sprintf("%s.%d.%d", g.GameName(), g.NumRanks(), g.NumSuits())
	return filepath.Join(staticBase, dir, fmt.Sprintf("buckets.%s.%d", bucketing, st))
}

// ReadBucketFile loads a bucket file: a little-endian uint32 bucket count
// followed by one uint32 per composite index.
func ReadBucketFile(path string) (int, []uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, fmt.Errorf("open bucket file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, nil, fmt.Errorf("stat bucket file: %w", err)
	}
	if info.Size() < 4 || info.Size()%4 != 0 {
		return 0, nil, fmt.Errorf("bucket file %s has malformed size %d", path, info.Size())
	}

	r := bufio.NewReader(f)
	var numBuckets uint32
	if err := binary.Read(r, binary.LittleEndian, &numBuckets); err != nil {
		return 0, nil, fmt.Errorf("read bucket count: %w", err)
	}
	data := make([]uint32, info.Size()/4-1)
	if err := binary.Read(r, binary.LittleEndian, data); err != nil {
		return 0, nil, fmt.Errorf("read bucket map %s: %w", path, err)
	}
	for i, v := range data {
		if v >= numBuckets {
			return 0, nil, fmt.Errorf("bucket file %s: entry %d has bucket %d >= %d", path, i, v, numBuckets)
		}
	}
	return int(numBuckets), data, nil
}

// WriteBucketFile writes a bucket file in the format ReadBucketFile expects.
func WriteBucketFile(path string, numBuckets int, data []uint32) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create bucket dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create bucket file: %w", err)
	}
	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, uint32(numBuckets)); err != nil {
		f.Close()
		return fmt.Errorf("write bucket count: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, data); err != nil {
		f.Close()
		return fmt.Errorf("write bucket map: %w", err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush bucket file: %w", err)
	}
	return f.Close()
}
