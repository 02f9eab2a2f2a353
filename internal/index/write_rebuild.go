package index

import (
	"encoding/json"
	"errors"
	"strings"

	bolt "go.etcd.io/bbolt"
	"writings/internal/domain/build"
	"writings/internal/domain/content"
)

// Rebuild replaces the whole index with listing, keeping its order for
// entries on the same date, and records stamp as the last build. It runs in
// one transaction; nothing from a previous build survives.
func (s *Store) Rebuild(listing content.Listing, stamp build.Stamp) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bMeta, bIdxDate, bBuild} {
			if err := tx.DeleteBucket(name); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
				return err
			}
		}

		metaB, err := tx.CreateBucket(bMeta)
		if err != nil {
			return err
		}
		idxB, err := tx.CreateBucket(bIdxDate)
		if err != nil {
			return err
		}
		buildB, err := tx.CreateBucket(bBuild)
		if err != nil {
			return err
		}

		for i, sum := range listing {
			slug := strings.TrimSpace(sum.Slug)
			if slug == "" {
				continue
			}
			mb, err := json.Marshal(sum)
			if err != nil {
				return err
			}
			if err := metaB.Put([]byte(slug), mb); err != nil {
				return err
			}
			key := makeDateSeqSlugKey(sum.Date, uint32(i), slug)
			if err := idxB.Put(key, []byte{1}); err != nil {
				return err
			}
		}

		sb, err := json.Marshal(stamp)
		if err != nil {
			return err
		}
		return buildB.Put(kLastStamp, sb)
	})
}
