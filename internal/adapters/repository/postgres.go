package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as database/sql driver

	"github.com/okian/cookoff/internal/domain/model"
	"github.com/okian/cookoff/internal/domain/ranking"
	"github.com/okian/cookoff/pkg/metrics"
)

var openDB = sql.Open //nolint:gochecknoglobals // swapped in tests

// Connect opens a *sql.DB using the pgx driver and verifies connectivity.
func Connect(ctx context.Context, databaseURL string, opts Options) (*sql.DB, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, ErrEmptyDatabaseURL
	}

	db, err := openDB("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	applyOptions(db, opts)

	pingTimeout := opts.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func applyOptions(db *sql.DB, opts Options) {
	if opts.MaxOpenConns <= 0 {
		opts.MaxOpenConns = 4
	}
	if opts.MaxIdleConns <= 0 {
		opts.MaxIdleConns = 2
	}
	if opts.ConnMaxLifetime <= 0 {
		opts.ConnMaxLifetime = time.Hour
	}
	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	if opts.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	}
}

// PostgresStore reads and writes the contest schema in Postgres.
type PostgresStore struct {
	DB *sql.DB
}

// NewPostgresStore wraps an open database.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

// LoadReference implements Store.
func (s *PostgresStore) LoadReference(ctx context.Context) (model.Reference, error) {
	start := time.Now()
	defer observe("load_reference", start)

	var ref model.Reference
	err := queryRows(ctx, s.DB, selectNationalities, func(rows *sql.Rows) error {
		var n model.Nationality
		if err := rows.Scan(&n.ID, &n.Name); err != nil {
			return err
		}
		ref.Nationalities = append(ref.Nationalities, n)
		return nil
	})
	if err != nil {
		return model.Reference{}, fmt.Errorf("load nationalities: %w", err)
	}

	err = queryRows(ctx, s.DB, selectCooks, func(rows *sql.Rows) error {
		var (
			c     model.Cook
			title string
		)
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &title); err != nil {
			return err
		}
		r, err := ranking.Parse(title)
		if err != nil {
			return fmt.Errorf("cook %d: %w", c.ID, err)
		}
		c.Ranking = r
		ref.Cooks = append(ref.Cooks, c)
		return nil
	})
	if err != nil {
		return model.Reference{}, fmt.Errorf("load cooks: %w", err)
	}

	err = queryRows(ctx, s.DB, selectRecipes, func(rows *sql.Rows) error {
		var r model.Recipe
		if err := rows.Scan(&r.ID, &r.NationalityID, &r.Name); err != nil {
			return err
		}
		ref.Recipes = append(ref.Recipes, r)
		return nil
	})
	if err != nil {
		return model.Reference{}, fmt.Errorf("load recipes: %w", err)
	}

	err = queryRows(ctx, s.DB, selectNationalityCooks, func(rows *sql.Rows) error {
		var nc model.NationalityCook
		if err := rows.Scan(&nc.NationalityID, &nc.CookID); err != nil {
			return err
		}
		ref.NationalityCooks = append(ref.NationalityCooks, nc)
		return nil
	})
	if err != nil {
		return model.Reference{}, fmt.Errorf("load nationality cooks: %w", err)
	}

	err = queryRows(ctx, s.DB, selectRecipeCooks, func(rows *sql.Rows) error {
		var rc model.RecipeCook
		if err := rows.Scan(&rc.RecipeID, &rc.CookID); err != nil {
			return err
		}
		ref.RecipeCooks = append(ref.RecipeCooks, rc)
		return nil
	})
	if err != nil {
		return model.Reference{}, fmt.Errorf("load recipe cooks: %w", err)
	}
	return ref, nil
}

// LoadHistory implements Store.
func (s *PostgresStore) LoadHistory(ctx context.Context) (model.History, error) {
	start := time.Now()
	defer observe("load_history", start)

	var h model.History
	err := queryRows(ctx, s.DB, selectEpisodes, func(rows *sql.Rows) error {
		var e model.EpisodeRecord
		if err := rows.Scan(&e.ID, &e.Season, &e.Number, &e.ImageID, &e.WinnerID); err != nil {
			return err
		}
		h.Episodes = append(h.Episodes, e)
		return nil
	})
	if err != nil {
		return model.History{}, fmt.Errorf("load episodes: %w", err)
	}

	err = queryRows(ctx, s.DB, selectContestants, func(rows *sql.Rows) error {
		var (
			c       model.ContestantRecord
			ratings [ratingColumnsCount]sql.NullInt64
		)
		if err := rows.Scan(&c.EpisodeID, &c.CookID, &c.RecipeID, &ratings[0], &ratings[1], &ratings[2]); err != nil {
			return err
		}
		for _, r := range ratings {
			if r.Valid {
				c.Ratings = append(c.Ratings, int(r.Int64))
			}
		}
		h.Contestants = append(h.Contestants, c)
		return nil
	})
	if err != nil {
		return model.History{}, fmt.Errorf("load contestants: %w", err)
	}

	err = queryRows(ctx, s.DB, selectJudges, func(rows *sql.Rows) error {
		var j model.JudgeRecord
		if err := rows.Scan(&j.EpisodeID, &j.CookID, &j.JudgeNumber); err != nil {
			return err
		}
		h.Judges = append(h.Judges, j)
		return nil
	})
	if err != nil {
		return model.History{}, fmt.Errorf("load judges: %w", err)
	}

	err = queryRows(ctx, s.DB, selectEpisodeNats, func(rows *sql.Rows) error {
		var n model.NationalityRecord
		if err := rows.Scan(&n.EpisodeID, &n.NationalityID); err != nil {
			return err
		}
		h.Nationalities = append(h.Nationalities, n)
		return nil
	})
	if err != nil {
		return model.History{}, fmt.Errorf("load episode nationalities: %w", err)
	}

	err = queryRows(ctx, s.DB, selectImages, func(rows *sql.Rows) error {
		var img model.Image
		if err := rows.Scan(&img.ID, &img.URL, &img.Description); err != nil {
			return err
		}
		h.Images = append(h.Images, img)
		return nil
	})
	if err != nil {
		return model.History{}, fmt.Errorf("load images: %w", err)
	}
	return h, nil
}

// SaveEpisode implements Store. Every row is written in one transaction;
// any failure rolls the whole episode back.
func (s *PostgresStore) SaveEpisode(ctx context.Context, ep model.Episode) (saved model.Episode, err error) {
	start := time.Now()
	defer observe("save_episode", start)

	ratings := ep.Outcome.Ratings()
	for _, r := range ep.Selection.Recipes {
		if len(ratings[r.CookID]) > ratingColumnsCount {
			return model.Episode{}, fmt.Errorf("%w: cook %d has %d", ErrTooManyRatings, r.CookID, len(ratings[r.CookID]))
		}
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Episode{}, fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			metrics.RecordErrorByComponent("repository", "save_episode")
		}
	}()

	if err = tx.QueryRowContext(ctx, insertImage, ep.Image.URL, ep.Image.Description).Scan(&ep.Image.ID); err != nil {
		return model.Episode{}, fmt.Errorf("insert image: %w", err)
	}

	if _, err = tx.ExecContext(ctx, insertEpisode, ep.ID, ep.Season, ep.Number, ep.Image.ID, ep.Outcome.WinnerID); err != nil {
		return model.Episode{}, fmt.Errorf("insert episode %d: %w", ep.ID, err)
	}

	for _, r := range ep.Selection.Recipes {
		args := []any{ep.ID, r.CookID, r.RecipeID}
		args = append(args, ratingArgs(ratings[r.CookID])...)
		if _, err = tx.ExecContext(ctx, insertContestant, args...); err != nil {
			return model.Episode{}, fmt.Errorf("insert contestant %d: %w", r.CookID, err)
		}
	}

	for _, id := range ep.Selection.Nationalities {
		if _, err = tx.ExecContext(ctx, insertEpisodeNat, id, ep.ID); err != nil {
			return model.Episode{}, fmt.Errorf("insert nationality %d: %w", id, err)
		}
	}

	for i, id := range ep.Selection.Judges {
		if _, err = tx.ExecContext(ctx, insertJudge, ep.ID, id, i+1); err != nil {
			return model.Episode{}, fmt.Errorf("insert judge %d: %w", id, err)
		}
	}

	for _, rc := range ep.NewRecipeCooks {
		if _, err = tx.ExecContext(ctx, insertRecipeCook, rc.RecipeID, rc.CookID); err != nil {
			return model.Episode{}, fmt.Errorf("insert recipe cook %d/%d: %w", rc.RecipeID, rc.CookID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return model.Episode{}, fmt.Errorf("commit: %w", err)
	}
	return ep, nil
}

// ratingArgs pads ratings to the fixed rating columns with NULLs.
func ratingArgs(ratings []int) []any {
	out := make([]any, ratingColumnsCount)
	for i := range out {
		if i < len(ratings) {
			out[i] = ratings[i]
		}
	}
	return out
}

func queryRows(ctx context.Context, db *sql.DB, query string, scan func(*sql.Rows) error) error {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
