package model

// ContestantRecord is one contestant row of a past episode.
type ContestantRecord struct {
	EpisodeID int   `koanf:"episode_id" json:"episode_id"`
	CookID    int   `koanf:"cook_id" json:"cook_id"`
	RecipeID  int   `koanf:"recipe_id" json:"recipe_id"`
	Ratings   []int `koanf:"ratings" json:"ratings"`
}

// JudgeRecord is one judge seat of a past episode.
type JudgeRecord struct {
	EpisodeID   int `koanf:"episode_id" json:"episode_id"`
	CookID      int `koanf:"cook_id" json:"cook_id"`
	JudgeNumber int `koanf:"judge_number" json:"judge_number"`
}

// NationalityRecord assigns a nationality to a past episode.
type NationalityRecord struct {
	EpisodeID     int `koanf:"episode_id" json:"episode_id"`
	NationalityID int `koanf:"nationality_id" json:"nationality_id"`
}

// EpisodeRecord is the header row of a past episode. Number is the episode
// index within its season.
type EpisodeRecord struct {
	ID       int `koanf:"id" json:"id"`
	Season   int `koanf:"season" json:"season"`
	Number   int `koanf:"number" json:"number"`
	ImageID  int `koanf:"image_id" json:"image_id"`
	WinnerID int `koanf:"winner_id" json:"winner_id"`
}

// Image is a stored episode illustration.
type Image struct {
	ID          int    `koanf:"id" json:"id"`
	URL         string `koanf:"url" json:"url"`
	Description string `koanf:"description" json:"description"`
}

// History is the append-only record of every episode created so far.
type History struct {
	Episodes      []EpisodeRecord     `koanf:"episodes"`
	Contestants   []ContestantRecord  `koanf:"contestants"`
	Judges        []JudgeRecord       `koanf:"judges"`
	Nationalities []NationalityRecord `koanf:"episode_nationalities"`
	Images        []Image             `koanf:"images"`
}

// NextEpisodeID returns the highest known episode id plus one, or 1 when no
// episode exists. Ids from association rows count too.
func (h History) NextEpisodeID() int {
	maxID := 0
	bump := func(id int) {
		if id > maxID {
			maxID = id
		}
	}
	for _, e := range h.Episodes {
		bump(e.ID)
	}
	for _, c := range h.Contestants {
		bump(c.EpisodeID)
	}
	for _, j := range h.Judges {
		bump(j.EpisodeID)
	}
	for _, n := range h.Nationalities {
		bump(n.EpisodeID)
	}
	return maxID + 1
}

// LastEpisode returns the episode with the highest id.
func (h History) LastEpisode() (EpisodeRecord, bool) {
	var last EpisodeRecord
	found := false
	for _, e := range h.Episodes {
		if !found || e.ID > last.ID {
			last = e
			found = true
		}
	}
	return last, found
}

// NextImageID returns the highest known image id plus one, or 1.
func (h History) NextImageID() int {
	maxID := 0
	for _, img := range h.Images {
		if img.ID > maxID {
			maxID = img.ID
		}
	}
	return maxID + 1
}
