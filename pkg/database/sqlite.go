package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/hansbonini/dialoguetools/pkg/common"
)

// SQLiteExporter writes databases into a SQLite file.
type SQLiteExporter struct {
	db *sql.DB
}

// ExportSummary counts the rows written by one export.
type ExportSummary struct {
	ExportID      string
	Version       string
	Author        string
	Assets        int
	Conversations int
	Entries       int
	Fields        int
	Links         int
}

// OpenSQLite opens (creating when needed) the SQLite file at dbPath and
// applies the schema.
func OpenSQLite(dbPath string) (*SQLiteExporter, error) {
	db, err := sql.Open("sqlite3", "file:"+dbPath+"?_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToOpenSQLite, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, common.FormatError(common.ErrFailedToOpenSQLite, err)
	}
	if _, err := db.Exec(SQLiteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteExporter{db: db}, nil
}

// Close closes the underlying connection.
func (s *SQLiteExporter) Close() error {
	return s.db.Close()
}

// Export writes database in a single transaction and returns the export id.
func (s *SQLiteExporter) Export(database *Database) (string, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	exportID := uuid.New().String()
	if _, err := tx.Exec(
		`INSERT INTO exports (id, version, author) VALUES (?, ?, ?)`,
		exportID, database.Version, database.Author,
	); err != nil {
		return "", fmt.Errorf("insert export: %w", err)
	}

	w := &exportWriter{tx: tx, exportID: exportID}
	for _, actor := range database.Actors {
		w.asset("actor", &actor.Asset)
	}
	for _, item := range database.Items {
		w.asset("item", &item.Asset)
	}
	for _, location := range database.Locations {
		w.asset("location", &location.Asset)
	}
	for _, variable := range database.Variables {
		w.asset("variable", &variable.Asset)
	}
	for _, conversation := range database.Conversations {
		w.conversation(conversation)
	}
	if w.err != nil {
		return "", common.FormatError(common.ErrFailedToWriteSQLite, w.err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return exportID, nil
}

// exportWriter inserts rows until the first error, which it keeps.
type exportWriter struct {
	tx       *sql.Tx
	exportID string
	err      error
}

func (w *exportWriter) exec(query string, args ...interface{}) {
	if w.err != nil {
		return
	}
	if _, err := w.tx.Exec(query, append([]interface{}{w.exportID}, args...)...); err != nil {
		w.err = err
	}
}

func (w *exportWriter) asset(kind string, asset *Asset) {
	w.exec(`INSERT INTO assets (export_id, kind, id, name) VALUES (?, ?, ?, ?)`,
		kind, asset.ID, asset.Name())
	w.fields(kind, asset.ID, -1, asset.Fields)
}

func (w *exportWriter) conversation(c *Conversation) {
	w.exec(`INSERT INTO conversations (export_id, id, title, actor_id, conversant_id) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Title(), c.ActorID, c.ConversantID)
	w.fields("conversation", c.ID, -1, c.Fields)

	for _, entry := range c.Entries {
		w.exec(`INSERT INTO entries (export_id, conversation_id, id, title, is_root, is_group, actor_id, conversant_id,
			conditions, user_script, false_condition_action, condition_priority)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, entry.ID, entry.Title(), entry.IsRoot, entry.IsGroup, entry.ActorID, entry.ConversantID,
			entry.ConditionsString, entry.UserScript, entry.FalseConditionAction, entry.ConditionPriority.String())
		w.fields("entry", c.ID, entry.ID, entry.Fields)

		for position, link := range entry.OutgoingLinks {
			w.exec(`INSERT INTO links (export_id, origin_conversation_id, origin_dialogue_id, position,
				destination_conversation_id, destination_dialogue_id, is_connector, priority)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				link.OriginConversationID, link.OriginDialogueID, position,
				link.DestinationConversationID, link.DestinationDialogueID, link.IsConnector, link.Priority.String())
		}
	}
}

func (w *exportWriter) fields(ownerKind string, ownerID, entryID int, fields Fields) {
	for position, field := range fields {
		if field == nil {
			continue
		}
		w.exec(`INSERT INTO fields (export_id, owner_kind, owner_id, entry_id, position, title, value, type)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			ownerKind, ownerID, entryID, position, field.Title, field.Value, field.Type.String())
	}
}

// Summary counts the rows stored for exportID.
func (s *SQLiteExporter) Summary(exportID string) (*ExportSummary, error) {
	summary := &ExportSummary{ExportID: exportID}
	err := s.db.QueryRow(`SELECT version, author FROM exports WHERE id = ?`, exportID).
		Scan(&summary.Version, &summary.Author)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("export %q not found", exportID)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup export %q: %w", exportID, err)
	}

	counts := []struct {
		table string
		dest  *int
	}{
		{"assets", &summary.Assets},
		{"conversations", &summary.Conversations},
		{"entries", &summary.Entries},
		{"fields", &summary.Fields},
		{"links", &summary.Links},
	}
	for _, c := range counts {
		if err := s.db.QueryRow(`SELECT COUNT(*) FROM `+c.table+` WHERE export_id = ?`, exportID).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("count %s: %w", c.table, err)
		}
	}
	return summary, nil
}

// ExportSQLiteFile writes database to the SQLite file at dbPath.
func ExportSQLiteFile(database *Database, dbPath string) (*ExportSummary, error) {
	exporter, err := OpenSQLite(dbPath)
	if err != nil {
		return nil, err
	}
	defer exporter.Close()

	exportID, err := exporter.Export(database)
	if err != nil {
		return nil, err
	}
	common.LogInfo(common.InfoDatabaseExported, dbPath, "sqlite export "+exportID)
	return exporter.Summary(exportID)
}
