package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    major TEXT NOT NULL,
    selfie_url TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS hints (
    id INTEGER PRIMARY KEY,
    question TEXT NOT NULL,
    answer TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS groups (
    id TEXT PRIMARY KEY,
    photo_url TEXT NOT NULL DEFAULT '',
    found INTEGER NOT NULL DEFAULT 0,
    location_is_solved INTEGER NOT NULL DEFAULT 0,
    assembly_solved INTEGER NOT NULL DEFAULT 0,
    finished INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS group_slots (
    group_id TEXT NOT NULL,
    slot INTEGER NOT NULL,
    user_id TEXT NOT NULL,
    progress INTEGER NOT NULL DEFAULT 0,
    solved INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (group_id, slot),
    FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE CASCADE,
    FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS slot_questions (
    group_id TEXT NOT NULL,
    slot INTEGER NOT NULL,
    position INTEGER NOT NULL,
    hint_id INTEGER NOT NULL,
    PRIMARY KEY (group_id, slot, position),
    FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE CASCADE,
    FOREIGN KEY (hint_id) REFERENCES hints(id)
);

CREATE TABLE IF NOT EXISTS globals (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    game_has_started INTEGER NOT NULL DEFAULT 0,
    checkpoint1_completed INTEGER NOT NULL DEFAULT 0,
    checkpoint2_completed INTEGER NOT NULL DEFAULT 0,
    checkpoint3_completed INTEGER NOT NULL DEFAULT 0,
    building TEXT NOT NULL DEFAULT '',
    floor INTEGER NOT NULL DEFAULT 0,
    aisle INTEGER NOT NULL DEFAULT 0,
    section TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS image_allocations (
    name TEXT PRIMARY KEY
);

CREATE INDEX IF NOT EXISTS idx_group_slots_user_id ON group_slots(user_id);
CREATE INDEX IF NOT EXISTS idx_slot_questions_group_id ON slot_questions(group_id);

INSERT OR IGNORE INTO globals (id, game_has_started) VALUES (1, 0);

INSERT OR IGNORE INTO hints (id, question, answer) VALUES
    (1, 'I hold thousands of stories but never speak a word. Students visit me to borrow what I keep. What am I?', 'Library'),
    (2, 'How many sides does a triangle have?', '3'),
    (3, 'How many dots are on a standard six-sided die in total?', '21'),
    (4, 'Which letter comes right after B in the alphabet?', 'C');
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
