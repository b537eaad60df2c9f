package warehouse

import (
	"fmt"
	"strings"

	"github.com/imamik/dwhctl/internal/config"
)

// Statement is a SQL statement labeled with the table it targets.
type Statement struct {
	Table string
	SQL   string
}

// Sample paths restrict a load to one day of events and one song
// prefix, enough to exercise the full pipeline in minutes.
const (
	sampleEventSuffix = "/2018/11/2018-11-01-events.json"
	sampleSongSuffix  = "/A"
)

// CopyStatements builds the COPY statements that load the staging
// tables from the source buckets. With sample set, only a small slice
// of each dataset is loaded.
func CopyStatements(src config.Sources, roleARN string, sample bool) []Statement {
	logData := src.LogData
	songData := src.SongData
	if sample {
		logData += sampleEventSuffix
		songData += sampleSongSuffix
	}

	events := fmt.Sprintf(`COPY event_staging
FROM %s
IAM_ROLE %s
TIMEFORMAT AS 'epochmillisecs'
TRUNCATECOLUMNS
JSON %s`,
		quoteLiteral(logData), quoteLiteral(roleARN), quoteLiteral(src.LogJSONPath))

	songs := fmt.Sprintf(`COPY song_staging
FROM %s
IAM_ROLE %s
TRUNCATECOLUMNS
JSON 'auto'`,
		quoteLiteral(songData), quoteLiteral(roleARN))

	return []Statement{
		{Table: "event_staging", SQL: events},
		{Table: "song_staging", SQL: songs},
	}
}

// InsertStatements returns the INSERT..SELECT statements that populate
// the star schema from staging. The cluster does not enforce primary
// keys, so each statement deduplicates on its own: the fact join keeps
// NextSong events only, users keeps the most recent event per user,
// artists keeps one arbitrary row per artist, and the rest use
// SELECT DISTINCT.
func InsertStatements() []Statement {
	return []Statement{
		{Table: "songplays", SQL: `INSERT INTO songplays
(start_time, user_id, level, song_id,
  artist_id, session_id, location, user_agent)
SELECT e.ts, CAST(e.userId AS INT), e.level, s.song_id, s.artist_id,
  CAST(e.sessionId AS INTEGER), e.location, e.userAgent
FROM event_staging as e
JOIN song_staging as s
ON e.song = s.title AND e.artist = s.artist_name
WHERE e.page = 'NextSong'`},

		{Table: "users", SQL: `INSERT INTO users (user_id, first_name, last_name, gender, level)
SELECT a, b, c, d, e FROM
  (SELECT CAST(userId AS INT) AS a, firstName AS b,
   lastName AS c, gender AS d, level AS e,
   rank() OVER (PARTITION BY userId ORDER BY ts DESC) AS rnk
   FROM event_staging
   WHERE auth != 'Logged Out') as subquery
WHERE rnk = 1`},

		{Table: "songs", SQL: `INSERT INTO songs (song_id, title, artist_id, year, duration)
SELECT DISTINCT sstg.song_id, sstg.title, sstg.artist_id, sstg.year, sstg.duration
FROM song_staging as sstg`},

		{Table: "artists", SQL: `INSERT INTO artists (artist_id, name, location, latitude, longitude)
SELECT a, b, c, d, e FROM
(SELECT artist_id AS a, artist_name AS b, artist_location AS c,
    artist_latitude AS d, artist_longitude AS e,
    row_number() OVER (PARTITION BY artist_id) AS row_num
    FROM song_staging) as subquery
WHERE row_num = 1`},

		{Table: "time", SQL: `INSERT INTO time (start_time, hour, day, week, month, year, weekday)
SELECT DISTINCT ts, date_part(h, ts), date_part(d, ts), date_part(w, ts),
date_part(mon, ts), date_part(y, ts), (CASE WHEN date_part(dow, ts) BETWEEN 1 AND 5 THEN true ELSE false END)
FROM event_staging`},
	}
}

// quoteLiteral wraps s in single quotes, doubling any embedded quote.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
