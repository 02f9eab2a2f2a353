package index

import (
	"encoding/json"
	"errors"
	"strings"

	bolt "go.etcd.io/bbolt"
	"writings/internal/domain/build"
	"writings/internal/domain/content"
)

var ErrNotFound = errors.New("not found")

func (s *Store) Get(slug string) (content.Summary, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return content.Summary{}, ErrNotFound
	}
	var sum content.Summary
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bMeta)
		if b == nil {
			return ErrNotFound
		}
		v := b.Get([]byte(slug))
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &sum)
	})
	return sum, err
}

// List returns every indexed summary, newest first.
func (s *Store) List() (content.Listing, error) {
	var out content.Listing
	err := s.db.View(func(tx *bolt.Tx) error {
		idx := tx.Bucket(bIdxDate)
		metaB := tx.Bucket(bMeta)
		if idx == nil || metaB == nil {
			return nil
		}

		cur := idx.Cursor()
		for k, _ := cur.First(); k != nil; k, _ = cur.Next() {
			slug := slugFromDateSeqSlugKey(k)
			if slug == "" {
				continue
			}
			v := metaB.Get([]byte(slug))
			if v == nil {
				continue
			}
			var sum content.Summary
			if err := json.Unmarshal(v, &sum); err != nil {
				return err
			}
			out = append(out, sum)
		}
		return nil
	})
	return out, err
}

func (s *Store) LastStamp() (build.Stamp, error) {
	var st build.Stamp
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bBuild)
		if b == nil {
			return ErrNotFound
		}
		v := b.Get(kLastStamp)
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &st)
	})
	return st, err
}
