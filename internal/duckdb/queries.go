package duckdb

import (
	"fmt"
	"time"

	"github.com/cratestats/cratestats/internal/model"
)

// versionAnd returns an "AND versions.num = ?" fragment and its argument
// when version is non-empty. Use this where a WHERE clause already exists.
func versionAnd(version string) (clause string, args []interface{}) {
	if version != "" {
		return " AND versions.num = ?", []interface{}{version}
	}
	return "", nil
}

// DownloadTimeseries returns daily download totals for a crate, ascending
// by date. An empty version aggregates all versions of the crate together;
// otherwise only the named version is counted. Names and versions match
// case-sensitively and are bound positionally, never interpolated.
func (s *Store) DownloadTimeseries(name, version string) ([]model.DownloadPoint, error) {
	ctx, cancel := s.queryCtx()
	defer cancel()

	vAnd, vArgs := versionAnd(version)
	query := fmt.Sprintf(`
		SELECT version_downloads.date, CAST(SUM(version_downloads.downloads) AS BIGINT) AS downloads
		FROM crates
		JOIN versions ON crates.id = versions.crate_id
		JOIN version_downloads ON versions.id = version_downloads.version_id
		WHERE crates.name = ?%s
		GROUP BY version_downloads.date
		ORDER BY version_downloads.date ASC`, vAnd)

	args := append([]interface{}{name}, vArgs...)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := make([]model.DownloadPoint, 0)
	for rows.Next() {
		var day time.Time
		var downloads int64
		if err := rows.Scan(&day, &downloads); err != nil {
			return nil, fmt.Errorf("scanning download point: %w", err)
		}
		points = append(points, model.DownloadPoint{
			Date:      model.NewDate(day),
			Downloads: downloads,
		})
	}
	return points, rows.Err()
}

// CratesPerCategory returns the number of crates filed under each category,
// most populated first.
func (s *Store) CratesPerCategory() ([]model.CategoryCount, error) {
	ctx, cancel := s.queryCtx()
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT categories.category, COUNT(crates_categories.crate_id) AS crate_count
		FROM categories
		JOIN crates_categories ON categories.id = crates_categories.category_id
		GROUP BY categories.category
		ORDER BY crate_count DESC, categories.category ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]model.CategoryCount, 0)
	for rows.Next() {
		var cc model.CategoryCount
		if err := rows.Scan(&cc.Category, &cc.CrateCount); err != nil {
			return nil, fmt.Errorf("scanning category count: %w", err)
		}
		counts = append(counts, cc)
	}
	return counts, rows.Err()
}

// TotalCrateCount returns the number of known crates.
func (s *Store) TotalCrateCount() (int64, error) {
	ctx, cancel := s.queryCtx()
	defer cancel()

	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM crates").Scan(&count)
	return count, err
}
