package warehouse

import "context"

// AnalyticsQuery is a canned read-only query against the star schema.
type AnalyticsQuery struct {
	Summary string
	Columns []string
	SQL     string
}

// AnalyticsQueries returns the built-in verification queries, in menu
// order.
func AnalyticsQueries() []AnalyticsQuery {
	return []AnalyticsQuery{
		{
			Summary: "Show five songplays",
			Columns: []string{"start_time", "user_id", "level", "location"},
			SQL:     `SELECT start_time, user_id, level, location FROM songplays LIMIT 5`,
		},
		{
			Summary: "Show top 10 most popular songs",
			Columns: []string{"title", "name", "num_plays"},
			SQL: `SELECT s.title, a.name, COUNT(sp.songplay_id) as num_plays
FROM songplays AS sp
JOIN artists AS a ON sp.artist_id = a.artist_id
JOIN songs AS s ON sp.song_id = s.song_id
GROUP BY s.title, a.name
ORDER BY num_plays DESC
LIMIT 10`,
		},
		{
			Summary: "Show five most popular artists",
			Columns: []string{"name", "num_plays"},
			SQL: `SELECT a.name, COUNT(sp.songplay_id) as num_plays
FROM artists AS a JOIN songplays AS sp ON a.artist_id = sp.artist_id
GROUP BY a.name
ORDER BY num_plays DESC
LIMIT 5`,
		},
		{
			Summary: "Show the top five users with the most songplays",
			Columns: []string{"first_name", "last_name", "num_plays"},
			SQL: `SELECT u.first_name, u.last_name, COUNT(sp.songplay_id) AS num_plays
FROM songplays AS sp
JOIN users AS u ON u.user_id = sp.user_id
GROUP BY u.first_name, u.last_name
ORDER BY num_plays DESC
LIMIT 5`,
		},
		{
			Summary: "Show the number of users in each level",
			Columns: []string{"level", "count"},
			SQL:     `SELECT level, COUNT(user_id) FROM users GROUP BY level`,
		},
	}
}

// loadErrorsSQL joins the load error log with its per-column detail,
// newest first.
const loadErrorsSQL = `SELECT le.starttime, d.query, d.line_number, d.colname, d.value, le.err_reason
FROM stl_loaderror_detail AS d
JOIN stl_load_errors AS le ON d.query = le.query
ORDER BY le.starttime DESC
LIMIT 10`

// LoadErrors returns the ten most recent COPY failures with their
// offending column and value.
func (db *DB) LoadErrors(ctx context.Context) (*Rows, error) {
	return db.Select(ctx, loadErrorsSQL)
}

// RunAnalytics executes a canned query by its position in
// AnalyticsQueries.
func (db *DB) RunAnalytics(ctx context.Context, q AnalyticsQuery) (*Rows, error) {
	rows, err := db.Select(ctx, q.SQL)
	if err != nil {
		return nil, err
	}
	// The cluster reports generated column names inconsistently across
	// versions; the curated names read better in tables.
	if len(rows.Columns) == len(q.Columns) {
		rows.Columns = q.Columns
	}
	return rows, nil
}
