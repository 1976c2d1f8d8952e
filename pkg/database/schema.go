package database

// SQLiteSchema is the table layout written by SQLiteExporter. Every row is
// keyed by the export run id so several exports can share one file.
const SQLiteSchema = `
CREATE TABLE IF NOT EXISTS exports (
    id          TEXT PRIMARY KEY,
    version     TEXT NOT NULL DEFAULT '',
    author      TEXT NOT NULL DEFAULT '',
    created_at  TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS assets (
    export_id   TEXT NOT NULL REFERENCES exports(id) ON DELETE CASCADE,
    kind        TEXT NOT NULL CHECK(kind IN ('actor', 'item', 'location', 'variable')),
    id          INTEGER NOT NULL,
    name        TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (export_id, kind, id)
);

CREATE TABLE IF NOT EXISTS conversations (
    export_id     TEXT NOT NULL REFERENCES exports(id) ON DELETE CASCADE,
    id            INTEGER NOT NULL,
    title         TEXT NOT NULL DEFAULT '',
    actor_id      INTEGER NOT NULL DEFAULT 0,
    conversant_id INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (export_id, id)
);

CREATE TABLE IF NOT EXISTS entries (
    export_id              TEXT NOT NULL REFERENCES exports(id) ON DELETE CASCADE,
    conversation_id        INTEGER NOT NULL,
    id                     INTEGER NOT NULL,
    title                  TEXT NOT NULL DEFAULT '',
    is_root                INTEGER NOT NULL DEFAULT 0,
    is_group               INTEGER NOT NULL DEFAULT 0,
    actor_id               INTEGER NOT NULL DEFAULT 0,
    conversant_id          INTEGER NOT NULL DEFAULT 0,
    conditions             TEXT NOT NULL DEFAULT '',
    user_script            TEXT NOT NULL DEFAULT '',
    false_condition_action TEXT NOT NULL DEFAULT '',
    condition_priority     TEXT NOT NULL DEFAULT 'Normal',
    PRIMARY KEY (export_id, conversation_id, id)
);

CREATE TABLE IF NOT EXISTS fields (
    export_id   TEXT NOT NULL REFERENCES exports(id) ON DELETE CASCADE,
    owner_kind  TEXT NOT NULL,
    owner_id    INTEGER NOT NULL,
    entry_id    INTEGER NOT NULL DEFAULT -1,
    position    INTEGER NOT NULL,
    title       TEXT NOT NULL,
    value       TEXT NOT NULL DEFAULT '',
    type        TEXT NOT NULL DEFAULT 'Text'
);

CREATE TABLE IF NOT EXISTS links (
    export_id                   TEXT NOT NULL REFERENCES exports(id) ON DELETE CASCADE,
    origin_conversation_id      INTEGER NOT NULL,
    origin_dialogue_id          INTEGER NOT NULL,
    position                    INTEGER NOT NULL,
    destination_conversation_id INTEGER NOT NULL,
    destination_dialogue_id     INTEGER NOT NULL,
    is_connector                INTEGER NOT NULL DEFAULT 0,
    priority                    TEXT NOT NULL DEFAULT 'Normal'
);

CREATE INDEX IF NOT EXISTS idx_fields_owner ON fields(export_id, owner_kind, owner_id, entry_id);
CREATE INDEX IF NOT EXISTS idx_links_origin ON links(export_id, origin_conversation_id, origin_dialogue_id);
`
