package cache

import (
	"github.com/dgraph-io/ristretto"
	ristrettoStore "github.com/eko/gocache/store/ristretto/v4"
)

var (
	R *ristretto.Cache
	S *ristrettoStore.RistrettoStore
)

func NewStore() error {
	inner, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     64 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return err
	}

	R = inner
	S = ristrettoStore.NewRistretto(inner)
	return nil
}
