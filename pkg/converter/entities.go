package converter

import (
	"github.com/hansbonini/dialoguetools/pkg/common"
	"github.com/hansbonini/dialoguetools/pkg/database"
	"github.com/hansbonini/dialoguetools/pkg/project"
)

// Feature fields that override an entity's configured category.
const (
	FieldIsNPC    = "IsNPC"
	FieldIsPlayer = "IsPlayer"
	FieldIsItem   = "IsItem"
	FieldIsQuest  = "IsQuest"
)

// Quest fields set on flow fragments converted as quests.
const (
	FieldSuccessDescription = "Success Description"
	FieldFailureDescription = "Failure Description"
	FieldState              = "State"
	questStateUnassigned    = "unassigned"
)

const defaultEmphasisColor = "#FFFFFF"

func (c *conversion) convertProjectAttributes() {
	c.db.Version = c.project.Attributes.Version()
	c.db.Author = c.project.Attributes.Author()
}

func (c *conversion) convertVariables() {
	for _, set := range c.project.VariableSets {
		if set == nil {
			continue
		}
		for _, variable := range set.Variables {
			fullName := project.FullVariableName(set, variable)
			if !c.includes(fullName) {
				continue
			}
			c.variableID++
			v := c.template.CreateVariable(c.variableID, fullName, variable.DefaultValue)
			switch variable.DataType {
			case project.VariableBoolean:
				v.SetType(database.FieldTypeBoolean)
			case project.VariableInteger:
				v.SetType(database.FieldTypeNumber)
			default:
				v.SetType(database.FieldTypeText)
			}
			if variable.Description != "" {
				v.Fields.Set(database.FieldDescription, variable.Description, database.FieldTypeText)
			}
			c.db.Variables = append(c.db.Variables, v)
		}
	}
}

// entityCategory applies the IsNPC/IsPlayer/IsItem/IsQuest feature fields
// over the configured category.
func entityCategory(configured EntityCategory, features project.Features) EntityCategory {
	switch {
	case features.HasField(FieldIsQuest, true):
		return CategoryQuest
	case features.HasField(FieldIsItem, true):
		return CategoryItem
	case features.HasField(FieldIsPlayer, true):
		return CategoryPlayer
	case features.HasField(FieldIsNPC, false):
		return CategoryNPC
	}
	return configured
}

func (c *conversion) convertEntities() {
	for _, entity := range c.project.Entities {
		if entity == nil {
			continue
		}
		setting := c.prefs.ConversionSettings.Lookup(entity.ID)
		if !setting.Include {
			continue
		}
		switch category := entityCategory(setting.Category, entity.Features); category {
		case CategoryNPC, CategoryPlayer:
			c.convertEntityToActor(entity, category == CategoryPlayer)
		case CategoryItem, CategoryQuest:
			c.convertEntityToItem(entity, category == CategoryItem)
		default:
			c.diagnostics.Error(common.ErrUnknownEntityCategory, category, entity.ID)
		}
	}
}

// setAssetFields writes the id, name and description fields shared by
// every converted element.
func (c *conversion) setAssetFields(fields *database.Fields, element *project.Element) {
	fields.Set(FieldArticyID, element.ID, database.FieldTypeText)
	fields.Set(FieldTechnicalName, element.TechnicalName, database.FieldTypeText)
	fields.Set(database.FieldDescription, element.Text.Default(), database.FieldTypeText)
}

// applyNameSettings fills the name fields after feature fields are copied.
func (c *conversion) applyNameSettings(fields *database.Fields, element *project.Element) {
	setLocalizableText(fields, database.FieldName, element.DisplayName, false)
	if c.prefs.UseTechnicalNames {
		fields.Set(database.FieldName, element.TechnicalName, database.FieldTypeText)
	}
	if c.prefs.UseTechnicalNames || c.prefs.SetDisplayName {
		fields.Set(database.FieldDisplayName, element.DisplayName.Default(), database.FieldTypeText)
	}
	if c.prefs.CustomDisplayName {
		useCustomDisplayName(fields)
	}
}

func (c *conversion) convertEntityToActor(entity *project.Entity, isPlayer bool) {
	c.actorID++
	actor := c.template.CreateActor(c.actorID, entity.DisplayName.Default(), isPlayer)
	c.setAssetFields(&actor.Fields, &entity.Element)
	if entity.PreviewImage != "" {
		actor.Fields.Set(database.FieldPictures, "["+entity.PreviewImage+"]", database.FieldTypeFiles)
	}
	c.setFeatureFields(&actor.Fields, entity.Features, nil)
	c.applyNameSettings(&actor.Fields, &entity.Element)
	c.db.Actors = append(c.db.Actors, actor)
}

func (c *conversion) convertEntityToItem(entity *project.Entity, isItem bool) {
	c.itemID++
	item := c.template.CreateItem(c.itemID, entity.DisplayName.Default())
	c.setAssetFields(&item.Fields, &entity.Element)
	item.Fields.Set(database.FieldIsItem, common.BoolToString(isItem), database.FieldTypeBoolean)
	if entity.PreviewImage != "" {
		item.Fields.Set(database.FieldPictures, "["+entity.PreviewImage+"]", database.FieldTypeFiles)
	}
	c.setFeatureFields(&item.Fields, entity.Features, nil)
	c.applyNameSettings(&item.Fields, &entity.Element)
	c.db.Items = append(c.db.Items, item)
}

func (c *conversion) convertLocations() {
	for _, location := range c.project.Locations {
		if location == nil || !c.includes(location.ID) {
			continue
		}
		c.locationID++
		l := c.template.CreateLocation(c.locationID, location.DisplayName.Default())
		c.setAssetFields(&l.Fields, &location.Element)
		c.setFeatureFields(&l.Fields, location.Features, nil)
		c.applyNameSettings(&l.Fields, &location.Element)
		c.db.Locations = append(c.db.Locations, l)
	}
}

// convertFlowFragmentsToQuests turns every included flow fragment into a
// quest item when flow fragments are converted as quests.
func (c *conversion) convertFlowFragmentsToQuests() {
	if c.prefs.FlowFragmentMode != FlowFragmentQuests {
		return
	}
	for _, flowFragment := range c.project.FlowFragments {
		if flowFragment == nil || !c.includes(flowFragment.ID) {
			continue
		}
		c.itemID++
		quest := c.template.CreateItem(c.itemID, flowFragment.DisplayName.Default())
		c.setAssetFields(&quest.Fields, &flowFragment.Element)
		quest.Fields.Set(FieldSuccessDescription, "", database.FieldTypeText)
		quest.Fields.Set(FieldFailureDescription, "", database.FieldTypeText)
		quest.Fields.Set(FieldState, questStateUnassigned, database.FieldTypeText)
		quest.Fields.Set(database.FieldIsItem, common.BoolToString(false), database.FieldTypeBoolean)
		c.setFeatureFields(&quest.Fields, flowFragment.Features, nil)
		setLocalizableText(&quest.Fields, database.FieldName, flowFragment.DisplayName, false)
		c.db.Items = append(c.db.Items, quest)
	}
}

// convertEmphasisSettings reads the [em#] styles from the variables named
// in the prefs. A missing color variable leaves the tag white.
func (c *conversion) convertEmphasisSettings() {
	for i := 0; i < database.NumEmphasisSettings && i < len(c.prefs.EmVars); i++ {
		vars := c.prefs.EmVars[i]
		setting := database.EmphasisSetting{Color: defaultEmphasisColor}
		if v := c.db.Variable(vars.Color); v != nil {
			setting.Color = v.InitialValue()
		}
		setting.Bold = c.variableBool(vars.Bold)
		setting.Italic = c.variableBool(vars.Italic)
		setting.Underline = c.variableBool(vars.Underline)
		c.db.EmphasisSettings[i] = setting
	}
}

func (c *conversion) variableBool(name string) bool {
	if name == "" {
		return false
	}
	if v := c.db.Variable(name); v != nil {
		return common.StringToBool(v.InitialValue())
	}
	return false
}

func (c *conversion) deleteDocumentConversations() {
	removed := c.db.RemoveConversations(func(conversation *database.Conversation) bool {
		return c.documentConversations[conversation]
	})
	c.diagnostics.Info(common.InfoDocumentsRemoved, removed)
}

func (c *conversion) findActorByArticyID(id string) *database.Actor {
	if id == "" {
		return nil
	}
	return c.findActorByField(FieldArticyID, id)
}

func (c *conversion) findActorByField(title, value string) *database.Actor {
	for _, actor := range c.db.Actors {
		if actor.Fields.LookupValue(title) == value {
			return actor
		}
	}
	return nil
}
