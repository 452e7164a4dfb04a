package tastematch

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	"github.com/botirk38/tastematch/types"
	"github.com/cespare/xxhash/v2"
)

// fingerprint hashes the contents of m. Entities and items are visited in
// sorted order and every string is length-prefixed, so equal matrices hash
// equally and a rating moving between rows changes the hash.
func fingerprint(m types.Ratings) uint64 {
	d := xxhash.New()
	var buf [8]byte

	writeUint := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}
	writeString := func(s string) {
		writeUint(uint64(len(s)))
		_, _ = d.WriteString(s)
	}

	writeUint(uint64(len(m)))
	for _, entity := range Entities(m) {
		row := m[entity]
		writeString(entity)
		writeUint(uint64(len(row)))

		items := make([]string, 0, len(row))
		for item := range row {
			items = append(items, item)
		}
		sort.Strings(items)

		for _, item := range items {
			writeString(item)
			writeUint(math.Float64bits(row[item]))
		}
	}

	return d.Sum64()
}

// snapshotNamespace is the cache key prefix of a matrix snapshot.
func snapshotNamespace(m types.Ratings) string {
	return fmt.Sprintf("%016x:", fingerprint(m))
}
