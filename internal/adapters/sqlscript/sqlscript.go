// Package sqlscript appends the INSERT statements of saved episodes to a
// replayable SQL script.
package sqlscript

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/okian/cookoff/internal/domain/model"
)

// Writer appends statements to a single script file.
type Writer struct {
	mu   sync.Mutex
	path string
}

// New creates a Writer for path. The file and its directory are created on
// first append.
func New(path string) *Writer {
	return &Writer{path: path}
}

// Path returns the script file path.
func (w *Writer) Path() string {
	return w.path
}

// Append writes a header comment and the statements of ep.
func (w *Writer) Append(ctx context.Context, ep model.Episode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: mkdir: %w", ErrWrite, err)
		}
	}
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open: %w", ErrWrite, err)
	}
	defer func() { _ = f.Close() }()

	var b strings.Builder
	fmt.Fprintf(&b, "-- Episode %d (season %d, episode %d)\n", ep.ID, ep.Season, ep.Number)
	for _, stmt := range Statements(ep) {
		b.WriteString(stmt)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// Statements renders ep as literal INSERT statements in insertion order:
// image, episode, contestants, nationalities, judges, new recipe/cook pairs.
func Statements(ep model.Episode) []string {
	out := make([]string, 0, 2+len(ep.Selection.Recipes)+len(ep.Selection.Nationalities)+
		len(ep.Selection.Judges)+len(ep.NewRecipeCooks))

	out = append(out,
		fmt.Sprintf("INSERT INTO image (image_url, description) VALUES (%s, %s);",
			quote(ep.Image.URL), quote(ep.Image.Description)),
		fmt.Sprintf("INSERT INTO episode (episode_id, season, name, image_id, winner) VALUES (%d, %d, %d, %d, %d);",
			ep.ID, ep.Season, ep.Number, ep.Image.ID, ep.Outcome.WinnerID),
	)

	ratings := ep.Outcome.Ratings()
	for _, r := range ep.Selection.Recipes {
		out = append(out, fmt.Sprintf(
			"INSERT INTO cook_episode_contestants (episode_id, cook_id, recipe_id, rating_1, rating_2, rating_3) VALUES (%d, %d, %d, %s);",
			ep.ID, r.CookID, r.RecipeID, ratingList(ratings[r.CookID])))
	}
	for _, id := range ep.Selection.Nationalities {
		out = append(out, fmt.Sprintf(
			"INSERT INTO nationality_episode (nationality_id, episode_id) VALUES (%d, %d);", id, ep.ID))
	}
	for i, id := range ep.Selection.Judges {
		out = append(out, fmt.Sprintf(
			"INSERT INTO cook_episode_judge (episode_id, cook_id, judge_number) VALUES (%d, %d, %d);", ep.ID, id, i+1))
	}
	for _, rc := range ep.NewRecipeCooks {
		out = append(out, fmt.Sprintf(
			"INSERT INTO recipe_cook (recipe_id, cook_id) VALUES (%d, %d);", rc.RecipeID, rc.CookID))
	}
	return out
}

// ratingList fills the three rating columns, NULL where no judge rated.
func ratingList(ratings []int) string {
	cols := []string{"NULL", "NULL", "NULL"}
	for i := 0; i < len(cols) && i < len(ratings); i++ {
		cols[i] = fmt.Sprint(ratings[i])
	}
	return strings.Join(cols, ", ")
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
