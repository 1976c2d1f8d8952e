package converter

import (
	"regexp"
	"strings"

	"github.com/hansbonini/dialoguetools/pkg/common"
	"github.com/hansbonini/dialoguetools/pkg/database"
	"github.com/hansbonini/dialoguetools/pkg/expr"
	"github.com/hansbonini/dialoguetools/pkg/project"
)

var (
	fontSizeTag       = regexp.MustCompile(`\{font-size:[0-9]+pt;\}`)
	entryTechnicalKey = regexp.MustCompile(`^Entry_[0-9]`)
)

// Technical names the quest system expects with spaces instead of
// underscores.
var specialTechnicalNames = map[string]bool{
	"Response_Menu_Sequence": true,
	"Success_Description":    true,
	"Failure_Description":    true,
	"Entry_Count":            true,
}

func convertSpecialTechnicalName(name string) string {
	if specialTechnicalNames[name] || entryTechnicalKey.MatchString(name) {
		return strings.ReplaceAll(name, "_", " ")
	}
	return name
}

// removeFormattingTags strips font-size tags and, when replaceNewlines is
// set, turns literal \n sequences into newlines.
func removeFormattingTags(s string, replaceNewlines bool) string {
	if replaceNewlines {
		s = strings.ReplaceAll(s, `\n`, "\n")
	}
	if strings.Contains(s, "font-size") {
		s = fontSizeTag.ReplaceAllString(s, "")
	}
	return s
}

// setLocalizableText writes the default language to baseTitle and every
// other language to a Localization field. Dialogue text is localized under
// the bare language tag; other fields under "<baseTitle> <tag>".
func setLocalizableText(fields *database.Fields, baseTitle string, text project.LocalizableText, replaceNewlines bool) {
	for _, language := range text.Languages() {
		value := removeFormattingTags(text[language], replaceNewlines)
		if language == "" {
			fields.Set(baseTitle, value, database.FieldTypeText)
			continue
		}
		title := baseTitle + " " + language
		if baseTitle == database.FieldDialogueText {
			title = language
		}
		fields.Set(title, value, database.FieldTypeLocalization)
	}
}

// setFeatureFields copies feature fields into fields. An existing field
// keeps its type and takes the new value. Titles in skip are left out.
func (c *conversion) setFeatureFields(fields *database.Fields, features project.Features, skip map[string]bool) {
	for _, field := range features.Fields() {
		if field.Title == "" || skip[field.Title] {
			continue
		}
		title := convertSpecialTechnicalName(field.Title)
		value := field.Value
		if c.otherScriptFields[title] {
			value = c.translator.Translate(value, false)
		}
		if existing := fields.Lookup(title); existing != nil {
			existing.Value = value
			continue
		}
		fields.Add(title, value, database.ParseFieldType(field.Type))
	}
}

// useCustomDisplayName replaces "Display Name" with a feature field named
// DisplayName when there is one.
func useCustomDisplayName(fields *database.Fields) {
	custom := fields.Lookup("DisplayName")
	if custom == nil {
		return
	}
	fields.Remove(database.FieldDisplayName)
	custom.Title = database.FieldDisplayName
}

// moveScriptField moves a "Script" feature field into the user script.
func (c *conversion) moveScriptField(entry *database.DialogueEntry) {
	script := entry.Fields.Lookup(FieldScript)
	if script == nil {
		return
	}
	entry.UserScript = expr.JoinScripts(entry.UserScript, c.translator.Translate(script.Value, false))
	entry.Fields.Remove(FieldScript)
}

// applyPinExpressions adds input pin expressions to the entry's conditions
// and output pin expressions to its user script.
func (c *conversion) applyPinExpressions(entry *database.DialogueEntry, pins project.Pins, convertInput, convertOutput bool) {
	for _, pin := range pins {
		if pin == nil {
			continue
		}
		switch pin.Semantic {
		case project.SemanticInput:
			if convertInput {
				entry.ConditionsString = expr.JoinConditions(entry.ConditionsString, c.translator.Translate(pin.Expression, true))
			}
		case project.SemanticOutput:
			if convertOutput {
				entry.UserScript = expr.JoinScripts(entry.UserScript, c.translator.Translate(pin.Expression, false))
			}
		default:
			c.diagnostics.Warn(common.WarnUnexpectedPinSemantic, pin.Semantic, pin.ID)
		}
	}
}
