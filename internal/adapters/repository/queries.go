package repository

const (
	selectNationalities    = `SELECT nationality_id, name FROM nationality ORDER BY nationality_id`
	selectCooks            = `SELECT cook_id, first_name, last_name, ranking FROM cook ORDER BY cook_id`
	selectRecipes          = `SELECT recipe_id, nationality_id, name FROM recipe ORDER BY recipe_id`
	selectNationalityCooks = `SELECT nationality_id, cook_id FROM nationality_cook ORDER BY nationality_id, cook_id`
	selectRecipeCooks      = `SELECT recipe_id, cook_id FROM recipe_cook ORDER BY recipe_id, cook_id`

	selectEpisodes     = `SELECT episode_id, season, name, image_id, winner FROM episode ORDER BY episode_id`
	selectContestants  = `SELECT episode_id, cook_id, recipe_id, rating_1, rating_2, rating_3 FROM cook_episode_contestants ORDER BY episode_id, cook_id`
	selectJudges       = `SELECT episode_id, cook_id, judge_number FROM cook_episode_judge ORDER BY episode_id, judge_number`
	selectEpisodeNats  = `SELECT episode_id, nationality_id FROM nationality_episode ORDER BY episode_id, nationality_id`
	selectImages       = `SELECT image_id, image_url, description FROM image ORDER BY image_id`
	insertImage        = `INSERT INTO image (image_url, description) VALUES ($1, $2) RETURNING image_id`
	insertEpisode      = `INSERT INTO episode (episode_id, season, name, image_id, winner) VALUES ($1, $2, $3, $4, $5)`
	insertContestant   = `INSERT INTO cook_episode_contestants (episode_id, cook_id, recipe_id, rating_1, rating_2, rating_3) VALUES ($1, $2, $3, $4, $5, $6)`
	insertEpisodeNat   = `INSERT INTO nationality_episode (nationality_id, episode_id) VALUES ($1, $2)`
	insertJudge        = `INSERT INTO cook_episode_judge (episode_id, cook_id, judge_number) VALUES ($1, $2, $3)`
	insertRecipeCook   = `INSERT INTO recipe_cook (recipe_id, cook_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	ratingColumnsCount = 3
)
