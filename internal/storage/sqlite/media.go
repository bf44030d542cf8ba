package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/fivemin/internal/models"
)

func (s *Store) GetMedia(ref string) (models.CachedMedia, error) {
	var (
		m         models.CachedMedia
		fetchedAt string
	)
	err := s.db.QueryRow(
		"SELECT ref, content_type, data, fetched_at FROM media_cache WHERE ref = ?", ref,
	).Scan(&m.Ref, &m.ContentType, &m.Data, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CachedMedia{}, fmt.Errorf("media %s: %w", ref, ErrNotFound)
	}
	if err != nil {
		return models.CachedMedia{}, err
	}
	m.FetchedAt, err = time.Parse(timeLayout, fetchedAt)
	if err != nil {
		return models.CachedMedia{}, fmt.Errorf("parsing fetched_at for %s: %w", ref, err)
	}
	return m, nil
}

func (s *Store) PutMedia(m models.CachedMedia) error {
	if m.FetchedAt.IsZero() {
		m.FetchedAt = time.Now()
	}
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO media_cache (ref, content_type, data, fetched_at) VALUES (?, ?, ?, ?)",
		m.Ref, m.ContentType, m.Data, m.FetchedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to cache media %s: %w", m.Ref, err)
	}
	return nil
}

func (s *Store) PruneMedia(before time.Time) (int, error) {
	res, err := s.db.Exec(
		"DELETE FROM media_cache WHERE fetched_at < ?", before.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
