package semantic

import "github.com/minio/highwayhash"

var hashKey = []byte("sinergia-embedding-cache-key-v01")

// hash64 returns the 64-bit HighwayHash of data.
func hash64(data []byte) uint64 {
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		// Only a key of the wrong size fails, and hashKey is 32 bytes.
		panic(err)
	}
	h.Write(data)
	return h.Sum64()
}
