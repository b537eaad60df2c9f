package warehouse

import (
	"context"
	"fmt"
)

// Staging tables mirror the raw JSON shapes. The identifier column and
// permissive TEXT types keep COPY from rejecting rows; typing is
// enforced on insert into the star schema.
const (
	eventStagingCreate = `CREATE TABLE event_staging (
id BIGINT IDENTITY(0, 1),
artist TEXT,
auth TEXT,
firstName TEXT,
gender TEXT,
itemInSession INT,
lastName TEXT,
length DECIMAL,
level TEXT,
location TEXT,
method TEXT,
page TEXT,
registration DECIMAL,
sessionId TEXT,
song TEXT,
status TEXT,
ts TIMESTAMP,
userAgent TEXT,
userId TEXT)`

	songStagingCreate = `CREATE TABLE song_staging (
id BIGINT IDENTITY(0, 1),
song_id TEXT,
num_songs INT,
title TEXT,
artist_name TEXT,
artist_latitude DECIMAL,
year INTEGER,
duration DECIMAL,
artist_id TEXT,
artist_longitude DECIMAL,
artist_location TEXT)`

	songplaysCreate = `CREATE TABLE IF NOT EXISTS songplays (
songplay_id BIGINT IDENTITY(0,1) PRIMARY KEY,
start_time timestamp NOT NULL,
user_id integer NOT NULL,
level char(4),
song_id char(18) NOT NULL,
artist_id char(18) NOT NULL,
session_id integer,
location varchar,
user_agent varchar)`

	usersCreate = `CREATE TABLE IF NOT EXISTS users (
user_id integer PRIMARY KEY,
first_name varchar,
last_name varchar,
gender varchar,
level char(4))`

	songsCreate = `CREATE TABLE IF NOT EXISTS songs (
song_id char(18) PRIMARY KEY,
title varchar,
artist_id char(18),
year smallint,
duration numeric(9, 5))`

	artistsCreate = `CREATE TABLE IF NOT EXISTS artists (
artist_id varchar(18) PRIMARY KEY,
name varchar,
location varchar,
latitude numeric(7, 5),
longitude numeric(8, 5))`

	timeCreate = `CREATE TABLE IF NOT EXISTS time (
start_time timestamp PRIMARY KEY,
hour smallint,
day smallint,
week smallint,
month smallint,
year smallint,
weekday boolean)`
)

// Tables lists every managed table, staging first.
var Tables = []string{
	"event_staging",
	"song_staging",
	"songplays",
	"users",
	"songs",
	"artists",
	"time",
}

// CreateStatements returns the DDL for all tables in creation order.
func CreateStatements() []Statement {
	return []Statement{
		{Table: "event_staging", SQL: eventStagingCreate},
		{Table: "song_staging", SQL: songStagingCreate},
		{Table: "songplays", SQL: songplaysCreate},
		{Table: "users", SQL: usersCreate},
		{Table: "songs", SQL: songsCreate},
		{Table: "artists", SQL: artistsCreate},
		{Table: "time", SQL: timeCreate},
	}
}

// DropStatements returns DROP TABLE IF EXISTS for all tables.
func DropStatements() []Statement {
	stmts := make([]Statement, 0, len(Tables))
	for _, table := range Tables {
		stmts = append(stmts, Statement{
			Table: table,
			SQL:   fmt.Sprintf("DROP TABLE IF EXISTS %s", table),
		})
	}
	return stmts
}

// DropTables removes every managed table. Missing tables are no-ops
// thanks to IF EXISTS.
func (db *DB) DropTables(ctx context.Context) error {
	for _, stmt := range DropStatements() {
		if err := db.Exec(ctx, stmt.SQL); err != nil {
			return fmt.Errorf("drop table %s: %w", stmt.Table, err)
		}
	}
	return nil
}

// ResetTables drops every managed table and recreates it, leaving the
// warehouse empty and ready for a load.
func (db *DB) ResetTables(ctx context.Context) error {
	if err := db.DropTables(ctx); err != nil {
		return err
	}
	for _, stmt := range CreateStatements() {
		if err := db.Exec(ctx, stmt.SQL); err != nil {
			if IsDuplicateTable(err) {
				continue
			}
			return fmt.Errorf("create table %s: %w", stmt.Table, err)
		}
	}
	return nil
}
