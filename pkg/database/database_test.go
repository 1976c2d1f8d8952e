package database

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestFields_SetAndRemove(t *testing.T) {
	var fields Fields
	fields.Set(FieldTitle, "first", FieldTypeText)
	fields.Set(FieldTitle, "second", FieldTypeLocalization)
	fields.SetValue("Custom", "x")
	fields.Add("Custom", "y", FieldTypeNumber)

	if len(fields) != 3 {
		t.Fatalf("len(fields) = %d, want 3", len(fields))
	}
	if got := fields.Lookup(FieldTitle); got.Value != "second" || got.Type != FieldTypeLocalization {
		t.Errorf("Lookup(Title) = %+v, want second/Localization", got)
	}
	if got := fields.LookupValue("Custom"); got != "x" {
		t.Errorf("LookupValue(Custom) = %q, want %q", got, "x")
	}
	if !fields.Remove("Custom") {
		t.Errorf("Remove(Custom) = false, want true")
	}
	if fields.Remove("Custom") {
		t.Errorf("second Remove(Custom) = true, want false")
	}
	if len(fields) != 1 {
		t.Errorf("len(fields) after Remove = %d, want 1", len(fields))
	}
}

func TestFields_Copy(t *testing.T) {
	fields := Fields{{Title: "A", Value: "1"}, nil, {Title: "B", Value: "2", Type: FieldTypeNumber}}
	copied := fields.Copy()
	copied[0].Value = "changed"

	if fields[0].Value != "1" {
		t.Errorf("Copy() shares fields with the original")
	}
	if len(copied) != 2 {
		t.Errorf("len(Copy()) = %d, want 2", len(copied))
	}
}

func TestColorToPriority(t *testing.T) {
	tests := []struct {
		color string
		want  Priority
	}{
		{"#FF0000", PriorityHigh},
		{"ff0000", PriorityHigh},
		{"#FFC000", PriorityAboveNormal},
		{"#ffff00", PriorityBelowNormal},
		{" #92D050 ", PriorityLow},
		{"", PriorityNormal},
		{"#123456", PriorityNormal},
	}
	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			if got := ColorToPriority(tt.color); got != tt.want {
				t.Errorf("ColorToPriority(%q) = %v, want %v", tt.color, got, tt.want)
			}
		})
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		name   string
		want   Priority
		wantOK bool
	}{
		{"High", PriorityHigh, true},
		{"belownormal", PriorityBelowNormal, true},
		{"Low", PriorityLow, true},
		{"Urgent", PriorityNormal, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParsePriority(tt.name)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParsePriority(%q) = %v, %v, want %v, %v", tt.name, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNewLink_Connector(t *testing.T) {
	a := &DialogueEntry{ID: 3, ConversationID: 1}
	b := &DialogueEntry{ID: 4, ConversationID: 1}
	c := &DialogueEntry{ID: 0, ConversationID: 2}

	if link := NewLink(a, b, PriorityHigh); link.IsConnector {
		t.Errorf("NewLink() within a conversation is a connector")
	}
	link := NewLink(a, c, PriorityLow)
	want := &Link{
		OriginConversationID:      1,
		OriginDialogueID:          3,
		DestinationConversationID: 2,
		DestinationDialogueID:     0,
		IsConnector:               true,
		Priority:                  PriorityLow,
	}
	if diff := cmp.Diff(want, link); diff != "" {
		t.Errorf("NewLink() mismatch (-want +got):\n%s", diff)
	}
}

func TestConversation_SealLinkPriorities(t *testing.T) {
	conversation := &Conversation{ID: 1}
	start := DefaultTemplate{}.CreateDialogueEntry(0, 1, StartEntryTitle)
	line := DefaultTemplate{}.CreateDialogueEntry(1, 1, "line")
	line.ConditionPriority = PriorityLow
	other := DefaultTemplate{}.CreateDialogueEntry(0, 2, StartEntryTitle)
	other.ConditionPriority = PriorityHigh
	conversation.Entries = []*DialogueEntry{start, line}

	inner := start.AddLink(line, PriorityHigh)
	outer := start.AddLink(other, PriorityBelowNormal)
	conversation.SealLinkPriorities()

	if inner.Priority != PriorityLow {
		t.Errorf("inner link priority = %v, want %v", inner.Priority, PriorityLow)
	}
	if outer.Priority != PriorityBelowNormal {
		t.Errorf("cross-conversation link priority = %v, want %v", outer.Priority, PriorityBelowNormal)
	}
}

func newSplitConversation() (*Conversation, *DialogueEntry, *DialogueEntry) {
	tmpl := DefaultTemplate{}
	conversation := tmpl.CreateConversation(1, "Split")
	start := tmpl.CreateDialogueEntry(0, 1, StartEntryTitle)
	line := tmpl.CreateDialogueEntry(1, 1, "line")
	line.SetDialogueText("A | B | C")
	line.SetMenuText("a|b|c")
	line.SetAudioFiles("[x.wav;y.wav;z.wav]")
	line.Fields.Set("es", "uno|dos|tres", FieldTypeLocalization)
	line.Canvas = NewCanvasRect(100, 200)
	next := tmpl.CreateDialogueEntry(5, 1, "next")
	start.AddLink(line, PriorityNormal)
	line.AddLink(next, PriorityHigh)
	conversation.Entries = []*DialogueEntry{start, line, next}
	return conversation, line, next
}

func TestConversation_SplitPipesIntoEntries(t *testing.T) {
	conversation, line, _ := newSplitConversation()
	conversation.SplitPipesIntoEntries(false, true)

	if len(conversation.Entries) != 5 {
		t.Fatalf("len(Entries) = %d, want 5", len(conversation.Entries))
	}

	tests := []struct {
		id        int
		text      string
		menu      string
		audio     string
		localized string
		y         float64
	}{
		{1, "A", "a", "[x.wav]", "uno", 200},
		{6, "B", "b", "[y.wav]", "dos", 210},
		{7, "C", "c", "[z.wav]", "tres", 220},
	}
	for _, tt := range tests {
		entry := conversation.Entry(tt.id)
		if entry == nil {
			t.Fatalf("Entry(%d) = nil", tt.id)
		}
		got := []string{entry.DialogueText(), entry.MenuText(), entry.AudioFiles(), entry.Fields.LookupValue("es")}
		want := []string{tt.text, tt.menu, tt.audio, tt.localized}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Entry(%d) mismatch (-want +got):\n%s", tt.id, diff)
		}
		if entry.Canvas.Y != tt.y {
			t.Errorf("Entry(%d).Canvas.Y = %v, want %v", tt.id, entry.Canvas.Y, tt.y)
		}
	}

	wantFirst := []*Link{{OriginConversationID: 1, OriginDialogueID: 1, DestinationConversationID: 1, DestinationDialogueID: 6, Priority: PriorityHigh}}
	if diff := cmp.Diff(wantFirst, line.OutgoingLinks); diff != "" {
		t.Errorf("first entry links mismatch (-want +got):\n%s", diff)
	}
	wantLast := []*Link{{OriginConversationID: 1, OriginDialogueID: 7, DestinationConversationID: 1, DestinationDialogueID: 5, Priority: PriorityHigh}}
	if diff := cmp.Diff(wantLast, conversation.Entry(7).OutgoingLinks); diff != "" {
		t.Errorf("last entry links mismatch (-want +got):\n%s", diff)
	}
}

func TestConversation_SplitPipesEndSequence(t *testing.T) {
	conversation, line, _ := newSplitConversation()
	line.SetSequence("AnimatorPlay(Talk); Delay({{end}})")
	conversation.SplitPipesIntoEntries(true, true)

	want := map[int]string{
		1: "AnimatorPlay(Talk); Delay({{end}})",
		6: "Delay({{end}})",
		7: "Delay({{end}}); ",
	}
	for id, sequence := range want {
		if got := conversation.Entry(id).Sequence(); got != sequence {
			t.Errorf("Entry(%d).Sequence() = %q, want %q", id, got, sequence)
		}
	}
}

func TestDatabase_RemoveConversations(t *testing.T) {
	db := NewDatabase()
	for i, title := range []string{"Intro", "DocumentsSubmenu/Letter", "Outro"} {
		db.Conversations = append(db.Conversations, DefaultTemplate{}.CreateConversation(i+1, title))
	}
	removed := db.RemoveConversations(func(c *Conversation) bool { return c.ID == 2 })

	if removed != 1 {
		t.Errorf("RemoveConversations() = %d, want 1", removed)
	}
	if db.ConversationByTitle("DocumentsSubmenu/Letter") != nil {
		t.Errorf("removed conversation still present")
	}
	if db.Conversation(3) == nil {
		t.Errorf("Conversation(3) = nil, want Outro")
	}
}

func newSampleDatabase() *Database {
	tmpl := DefaultTemplate{}
	db := NewDatabase()
	db.Version = "2024-01-01"
	db.Author = "articy 3.2"
	db.Actors = []*Actor{tmpl.CreateActor(1, "Player", true)}
	db.Variables = []*Variable{tmpl.CreateVariable(1, "Quest.Done", "False")}
	db.Variables[0].SetType(FieldTypeBoolean)

	conversation := tmpl.CreateConversation(1, "Intro")
	start := tmpl.CreateDialogueEntry(0, 1, StartEntryTitle)
	start.IsRoot = true
	line := tmpl.CreateDialogueEntry(1, 1, "Hello")
	line.ConditionsString = `Variable["Quest.Done"] == false`
	start.AddLink(line, PriorityAboveNormal)
	conversation.Entries = []*DialogueEntry{start, line}
	db.Conversations = []*Conversation{conversation}
	return db
}

func TestExportYAML_RoundTrip(t *testing.T) {
	db := newSampleDatabase()
	var buf bytes.Buffer
	if err := ExportYAML(db, &buf); err != nil {
		t.Fatalf("ExportYAML() error = %v", err)
	}
	got, err := LoadYAML(&buf)
	if err != nil {
		t.Fatalf("LoadYAML() error = %v", err)
	}
	if diff := cmp.Diff(db, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestExportSQLiteFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "dialogue.db")
	summary, err := ExportSQLiteFile(newSampleDatabase(), dbPath)
	if err != nil {
		t.Fatalf("ExportSQLiteFile() error = %v", err)
	}

	want := &ExportSummary{
		ExportID:      summary.ExportID,
		Version:       "2024-01-01",
		Author:        "articy 3.2",
		Assets:        2,
		Conversations: 1,
		Entries:       2,
		Fields:        4 + 3 + 2 + 6 + 6,
		Links:         1,
	}
	if diff := cmp.Diff(want, summary); diff != "" {
		t.Errorf("ExportSQLiteFile() summary mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteExporter_MultipleExports(t *testing.T) {
	exporter, err := OpenSQLite(filepath.Join(t.TempDir(), "dialogue.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	defer exporter.Close()

	first, err := exporter.Export(newSampleDatabase())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	second, err := exporter.Export(newSampleDatabase())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if first == second {
		t.Errorf("Export() reused id %q", first)
	}

	var priority string
	var connector bool
	err = exporter.db.QueryRow(
		`SELECT priority, is_connector FROM links WHERE export_id = ? AND origin_dialogue_id = 0`, second,
	).Scan(&priority, &connector)
	if err != nil {
		t.Fatalf("query link: %v", err)
	}
	if priority != "AboveNormal" || connector {
		t.Errorf("link = %s/%v, want AboveNormal/false", priority, connector)
	}

	if _, err := exporter.Summary("missing"); err == nil {
		t.Errorf("Summary(missing) error = nil, want not found")
	}
}
