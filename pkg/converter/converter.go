// Package converter compiles a project model into a dialogue database.
//
// A conversion runs in fixed stages: non-dialogue elements (actors, items,
// locations, variables) are converted first, then every dialogue becomes a
// conversation, then the hierarchy is walked depth first to create entries.
// Links are only materialized after the walk, from connections and jumps,
// and a set of finalizers orders and cleans the result.
package converter

import (
	"github.com/hansbonini/dialoguetools/pkg/common"
	"github.com/hansbonini/dialoguetools/pkg/database"
	"github.com/hansbonini/dialoguetools/pkg/expr"
	"github.com/hansbonini/dialoguetools/pkg/project"
)

// MaxRecursionDepth bounds the hierarchy walk.
const MaxRecursionDepth = 1000

// Fields written by the converter on top of the template's field set.
const (
	FieldArticyID      = "Articy Id"
	FieldTechnicalName = "Technical Name"
	FieldScript        = "Script"
)

// ProgressFunc observes conversion progress. fraction runs from 0 to 1.
type ProgressFunc func(stage string, fraction float64)

// Option configures a Converter.
type Option func(*Converter)

// WithTemplate sets the factory for database assets.
func WithTemplate(template database.Template) Option {
	return func(c *Converter) { c.template = template }
}

// WithDiagnostics sets the sink for warnings and debug output.
func WithDiagnostics(diagnostics common.Diagnostics) Option {
	return func(c *Converter) { c.diagnostics = diagnostics }
}

// WithProgress sets the progress observer.
func WithProgress(progress ProgressFunc) Option {
	return func(c *Converter) { c.progress = progress }
}

// WithMaxRecursionDepth overrides MaxRecursionDepth.
func WithMaxRecursionDepth(depth int) Option {
	return func(c *Converter) { c.maxDepth = depth }
}

// Converter holds the settings shared by conversions. It keeps no state
// between runs, so one Converter may run several conversions, including
// concurrent ones.
type Converter struct {
	prefs       *Prefs
	template    database.Template
	diagnostics common.Diagnostics
	progress    ProgressFunc
	maxDepth    int
}

// NewConverter creates a converter. A nil prefs uses DefaultPrefs.
func NewConverter(prefs *Prefs, opts ...Option) *Converter {
	if prefs == nil {
		prefs = DefaultPrefs()
	}
	c := &Converter{
		prefs:       prefs,
		template:    database.DefaultTemplate{},
		diagnostics: common.StdDiagnostics,
		maxDepth:    MaxRecursionDepth,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert runs a conversion with a default Converter.
func Convert(p *project.Project, prefs *Prefs) (*database.Database, error) {
	return NewConverter(prefs).Convert(p)
}

// Convert compiles p into a new database. It fails only when p is nil or
// the hierarchy is nested deeper than the recursion limit; every other
// problem is reported through the diagnostics sink and skipped.
func (c *Converter) Convert(p *project.Project) (*database.Database, error) {
	if p == nil {
		err := NewConversionError(ErrorKindNilInput, common.ErrMissingProject, ErrNilProject)
		c.diagnostics.Error("%v", err)
		return nil, err
	}
	run := newConversion(c, p)
	if err := run.run(); err != nil {
		c.diagnostics.Error("%v", err)
		return nil, err
	}
	return run.db, nil
}

// conversion is the mutable state of a single run.
type conversion struct {
	*Converter

	project    *project.Project
	db         *database.Database
	translator *expr.Translator
	resolver   *resolver

	otherScriptFields map[string]bool

	conversationID int
	actorID        int
	itemID         int
	locationID     int
	variableID     int

	lastEntryID           map[*database.Conversation]int
	dialogueConversations map[string]*database.Conversation
	documentConversations map[*database.Conversation]bool

	flowNames     []string
	conversations []*database.Conversation
}

func newConversion(c *Converter, p *project.Project) *conversion {
	return &conversion{
		Converter:             c,
		project:               p,
		db:                    database.NewDatabase(),
		translator:            expr.NewTranslator(p.FullVariableNames()),
		resolver:              newResolver(c.diagnostics),
		otherScriptFields:     c.prefs.OtherScriptFieldTitles(),
		lastEntryID:           make(map[*database.Conversation]int),
		dialogueConversations: make(map[string]*database.Conversation),
		documentConversations: make(map[*database.Conversation]bool),
	}
}

func (c *conversion) report(stage string, fraction float64) {
	c.diagnostics.Debug(stage)
	if c.progress != nil {
		c.progress(stage, fraction)
	}
}

func (c *conversion) run() error {
	c.report(common.InfoConvertingElements, 0.01)
	c.convertProjectAttributes()
	c.convertVariables()
	c.convertEntities()
	c.convertLocations()
	c.convertFlowFragmentsToQuests()

	if err := c.convertDialogues(); err != nil {
		return err
	}

	c.convertEmphasisSettings()
	if !c.prefs.ImportDocuments {
		c.deleteDocumentConversations()
	}

	c.diagnostics.Info(common.InfoConversionSummary, len(c.db.Conversations), len(c.db.Actors),
		len(c.db.Items), len(c.db.Locations), len(c.db.Variables))
	c.report(common.InfoConversionDone, 1)
	return nil
}

func (c *conversion) convertDialogues() error {
	c.report(common.InfoConvertingDialogues, 0.2)
	c.convertDialoguesToConversations()

	c.report(common.InfoProcessingHierarchy, 0.3)
	if err := c.processHierarchy(); err != nil {
		return err
	}

	c.report(common.InfoSortingLinks, 0.7)
	c.removeDanglingLinks()
	c.sortAllLinksByPosition()

	if c.prefs.SplitTextOnPipes {
		c.report(common.InfoSplittingPipes, 0.8)
		c.splitPipesIntoEntries()
	}

	c.report(common.InfoConvertingVoiceOver, 0.9)
	c.convertVoiceOverProperties()
	c.checkStartEntries()
	return nil
}

// processHierarchy walks the tree, then resolves edges in fixed order:
// connections, jumps, pruning.
func (c *conversion) processHierarchy() error {
	c.report(common.InfoProcessingNodes, 0.4)
	if err := c.walk(c.project.Hierarchy, 0); err != nil {
		c.resetStacks()
		return err
	}

	c.report(common.InfoConnectingNodes, 0.5)
	c.resolver.resolveConnections(c.project.Connections)
	c.resolver.resolveJumps()
	if removed := c.resolver.pruneUnused(c.db); removed > 0 {
		c.diagnostics.Debug(common.InfoUnusedEntriesRemoved, removed)
	}

	c.report(common.InfoCheckingJumps, 0.6)
	c.checkJumpsForGroupNodes()
	return nil
}

func (c *conversion) includes(id string) bool {
	return c.prefs.ConversionSettings.Lookup(id).Include
}

func (c *conversion) nextEntryID(conversation *database.Conversation) int {
	id, ok := c.lastEntryID[conversation]
	if ok {
		id++
	}
	c.lastEntryID[conversation] = id
	return id
}
