package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shoplens/internal/seo"
	"shoplens/internal/session"
)

// SaveProject inserts or updates a project. When the save would exceed
// the project or asset quota, the oldest projects are evicted until it
// fits. Evicted project ids are returned so callers can report them.
func (s *Store) SaveProject(ctx context.Context, project Project) (evicted []string, err error) {
	if project.ID == "" {
		return nil, errors.New("project id required")
	}
	if len(project.Assets) > s.maxAssets {
		return nil, ErrProjectTooLarge
	}

	now := time.Now().UTC()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}
	project.UpdatedAt = now

	evicted, err = s.makeRoom(ctx, project)
	if err != nil {
		return nil, err
	}

	assetsJSON, err := json.Marshal(project.Assets)
	if err != nil {
		return evicted, fmt.Errorf("marshal assets: %w", err)
	}
	var seoJSON any
	if project.SEO != nil {
		data, err := json.Marshal(project.SEO)
		if err != nil {
			return evicted, fmt.Errorf("marshal seo result: %w", err)
		}
		seoJSON = string(data)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO projects (
            id, name, marketplace, asset_count, assets_json,
            active_id, gallery_id, seo_json, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            name = excluded.name,
            marketplace = excluded.marketplace,
            asset_count = excluded.asset_count,
            assets_json = excluded.assets_json,
            active_id = excluded.active_id,
            gallery_id = excluded.gallery_id,
            seo_json = excluded.seo_json,
            updated_at = excluded.updated_at`,
		project.ID,
		project.Name,
		string(project.Marketplace),
		len(project.Assets),
		string(assetsJSON),
		project.ActiveID,
		project.GalleryID,
		seoJSON,
		project.CreatedAt.Format(time.RFC3339Nano),
		project.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return evicted, fmt.Errorf("save project: %w", err)
	}
	return evicted, nil
}

// makeRoom evicts oldest projects until the incoming save fits both
// quotas. The project being updated never counts against itself.
func (s *Store) makeRoom(ctx context.Context, incoming Project) ([]string, error) {
	var evicted []string
	for {
		var count, assets int
		err := s.db.QueryRowContext(ctx,
			"SELECT COUNT(1), COALESCE(SUM(asset_count), 0) FROM projects WHERE id != ?",
			incoming.ID,
		).Scan(&count, &assets)
		if err != nil {
			return evicted, fmt.Errorf("count projects: %w", err)
		}

		if count+1 <= s.maxProjects && assets+len(incoming.Assets) <= s.maxAssets {
			return evicted, nil
		}

		var oldest string
		err = s.db.QueryRowContext(ctx,
			"SELECT id FROM projects WHERE id != ? ORDER BY updated_at ASC LIMIT 1",
			incoming.ID,
		).Scan(&oldest)
		if errors.Is(err, sql.ErrNoRows) {
			// Nothing left to evict; the incoming project alone busts
			// the quota.
			return evicted, ErrProjectTooLarge
		}
		if err != nil {
			return evicted, fmt.Errorf("find oldest project: %w", err)
		}
		if _, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", oldest); err != nil {
			return evicted, fmt.Errorf("evict project %s: %w", oldest, err)
		}
		evicted = append(evicted, oldest)
	}
}

// GetProject loads one project by id.
func (s *Store) GetProject(ctx context.Context, id string) (Project, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, marketplace, assets_json, active_id, gallery_id,
            seo_json, created_at, updated_at
        FROM projects WHERE id = ?`, id)
	return scanProject(row)
}

// ListProjects returns all projects, most recently updated first.
func (s *Store) ListProjects(ctx context.Context) ([]Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, marketplace, assets_json, active_id, gallery_id,
            seo_json, created_at, updated_at
        FROM projects ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var projects []Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

// DeleteProject removes one project.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if affected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// DeleteAllProjects clears the library.
func (s *Store) DeleteAllProjects(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM projects"); err != nil {
		return fmt.Errorf("clear projects: %w", err)
	}
	return nil
}

// StorageUsage reports current occupancy against the quotas.
func (s *Store) StorageUsage(ctx context.Context) (Usage, error) {
	usage := Usage{MaxProjects: s.maxProjects, MaxAssets: s.maxAssets}
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1), COALESCE(SUM(asset_count), 0) FROM projects",
	).Scan(&usage.Projects, &usage.Assets)
	if err != nil {
		return usage, fmt.Errorf("storage usage: %w", err)
	}
	return usage, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (Project, error) {
	var (
		project       Project
		marketplace   string
		assetsJSON    string
		seoJSON       sql.NullString
		createdAtText string
		updatedAtText string
	)
	err := row.Scan(
		&project.ID, &project.Name, &marketplace, &assetsJSON,
		&project.ActiveID, &project.GalleryID, &seoJSON,
		&createdAtText, &updatedAtText,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Project{}, ErrProjectNotFound
	}
	if err != nil {
		return Project{}, fmt.Errorf("scan project: %w", err)
	}

	project.Marketplace = seo.Marketplace(marketplace)
	if assetsJSON != "" {
		if err := json.Unmarshal([]byte(assetsJSON), &project.Assets); err != nil {
			return Project{}, fmt.Errorf("decode assets for %s: %w", project.ID, err)
		}
	}
	if seoJSON.Valid && seoJSON.String != "" {
		var result seo.Result
		if err := json.Unmarshal([]byte(seoJSON.String), &result); err != nil {
			return Project{}, fmt.Errorf("decode seo result for %s: %w", project.ID, err)
		}
		project.SEO = &result
	}
	if project.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAtText); err != nil {
		return Project{}, fmt.Errorf("parse created_at for %s: %w", project.ID, err)
	}
	if project.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAtText); err != nil {
		return Project{}, fmt.Errorf("parse updated_at for %s: %w", project.ID, err)
	}
	return project, nil
}

// NewProjectID builds a project identifier in the same shape as asset
// ids so the two sort together in logs.
func NewProjectID() string {
	return session.NewAssetID("project")
}
