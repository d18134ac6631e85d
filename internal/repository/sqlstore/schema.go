package sqlstore

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS planets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name VARCHAR(100) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS jedi (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name VARCHAR(100) NOT NULL,
		planet_id INTEGER NOT NULL REFERENCES planets(id),
		padawan_count INTEGER NOT NULL DEFAULT 0 CHECK (padawan_count >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS candidates (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name VARCHAR(100) NOT NULL,
		planet_id INTEGER NOT NULL REFERENCES planets(id),
		age INTEGER NOT NULL CHECK (age BETWEEN 20 AND 100),
		email VARCHAR(254) NOT NULL UNIQUE,
		jedi_id INTEGER REFERENCES jedi(id)
	)`,
	`CREATE INDEX IF NOT EXISTS candidates_planet_jedi_idx ON candidates (planet_id, jedi_id)`,
	`CREATE TABLE IF NOT EXISTS questions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		text VARCHAR(200) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name VARCHAR(100) NOT NULL,
		code INTEGER NOT NULL UNIQUE CHECK (code >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS challenges (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		order_id INTEGER NOT NULL UNIQUE REFERENCES orders(id)
	)`,
	`CREATE TABLE IF NOT EXISTS challenge_questions (
		challenge_id INTEGER NOT NULL REFERENCES challenges(id),
		question_id INTEGER NOT NULL REFERENCES questions(id),
		position INTEGER NOT NULL,
		PRIMARY KEY (challenge_id, position),
		UNIQUE (challenge_id, question_id)
	)`,
	`CREATE TABLE IF NOT EXISTS answers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		question_id INTEGER NOT NULL REFERENCES questions(id),
		candidate_id INTEGER NOT NULL REFERENCES candidates(id),
		value BOOLEAN NOT NULL,
		UNIQUE (question_id, candidate_id)
	)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS planets (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS jedi (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		planet_id BIGINT NOT NULL REFERENCES planets(id),
		padawan_count INTEGER NOT NULL DEFAULT 0 CHECK (padawan_count >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS candidates (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		planet_id BIGINT NOT NULL REFERENCES planets(id),
		age INTEGER NOT NULL CHECK (age BETWEEN 20 AND 100),
		email VARCHAR(254) NOT NULL UNIQUE,
		jedi_id BIGINT REFERENCES jedi(id)
	)`,
	`CREATE INDEX IF NOT EXISTS candidates_planet_jedi_idx ON candidates (planet_id, jedi_id)`,
	`CREATE TABLE IF NOT EXISTS questions (
		id BIGSERIAL PRIMARY KEY,
		text VARCHAR(200) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		code INTEGER NOT NULL UNIQUE CHECK (code >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS challenges (
		id BIGSERIAL PRIMARY KEY,
		order_id BIGINT NOT NULL UNIQUE REFERENCES orders(id)
	)`,
	`CREATE TABLE IF NOT EXISTS challenge_questions (
		challenge_id BIGINT NOT NULL REFERENCES challenges(id),
		question_id BIGINT NOT NULL REFERENCES questions(id),
		position INTEGER NOT NULL,
		PRIMARY KEY (challenge_id, position),
		UNIQUE (challenge_id, question_id)
	)`,
	`CREATE TABLE IF NOT EXISTS answers (
		id BIGSERIAL PRIMARY KEY,
		question_id BIGINT NOT NULL REFERENCES questions(id),
		candidate_id BIGINT NOT NULL REFERENCES candidates(id),
		value BOOLEAN NOT NULL,
		UNIQUE (question_id, candidate_id)
	)`,
}
