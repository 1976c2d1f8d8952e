package common

import (
	"fmt"
	"log"
)

// Global variable to control debug output
var VerboseMode bool = false

// SetVerboseMode enables or disables verbose/debug output
func SetVerboseMode(verbose bool) {
	VerboseMode = verbose
}

// Error messages
const (
	ErrFailedToReadProjectFile  = "failed to read project file"
	ErrFailedToParseProject     = "failed to parse project"
	ErrFailedToReadPrefsFile    = "failed to read converter prefs file"
	ErrFailedToParsePrefs       = "failed to parse converter prefs"
	ErrFailedToReadDatabaseFile = "failed to read database file"
	ErrFailedToParseDatabase    = "failed to parse database"
	ErrFailedToCreateOutputFile = "failed to create output file"
	ErrFailedToEncodeDatabase   = "failed to encode database"
	ErrFailedToOpenSQLite       = "failed to open sqlite database"
	ErrFailedToWriteSQLite      = "failed to write sqlite database"
	ErrMissingProject           = "no project data to convert"
	ErrMaxRecursionDepth        = "exceeded max recursion depth %d while walking hierarchy node %q"
	ErrUnknownEntityCategory    = "internal error converting entity category %q (id: %s)"
)

// Info messages
const (
	InfoConvertingElements     = "Converting non-dialogue elements"
	InfoConvertingDialogues    = "Converting dialogues"
	InfoProcessingHierarchy    = "Processing hierarchy"
	InfoProcessingNodes        = "Processing dialogue nodes"
	InfoConnectingNodes        = "Connecting dialogue nodes"
	InfoCheckingJumps          = "Checking if jumps are group nodes"
	InfoSortingLinks           = "Sorting links by position"
	InfoSplittingPipes         = "Splitting pipe-delimited text into entries"
	InfoConvertingVoiceOver    = "Converting voice-over properties"
	InfoConversionDone         = "Conversion complete"
	InfoConversionSummary      = "Converted %d conversations, %d actors, %d items, %d locations, %d variables"
	InfoDatabaseExported       = "Exported database to %s: %s"
	InfoDocumentsRemoved       = "Removed %d document conversations"
	InfoUnusedEntriesRemoved   = "Removed %d unused output entries"
	InfoPrefsLoaded            = "Loaded converter prefs from %s"
	InfoProjectLoaded          = "Loaded project %q: %d dialogues, %d connections"
	InfoLinkPrioritiesSealed   = "Sealed link priorities in %d conversations"
	InfoEnvironmentFileMissing = "No .env file found, using process environment"
)

// Debug messages
const (
	DebugPinRegistered       = "Registered pin %s -> [%d:%d]"
	DebugLinkCreated         = "Link [%d:%d] -> [%d:%d] priority=%s"
	DebugJumpDeferred        = "Deferred jump %s -> %s/%s"
	DebugConversationCreated = "Conversation %d created: %q"
	DebugEntryCreated        = "Entry [%d:%d] created: %q"
	DebugEntrySplit          = "Split entry [%d:%d] into %d entries"
	DebugNodeVisited         = "Visiting %s node %s at depth %d"
	DebugEntryPruned         = "Pruned unused output entry [%d:%d]"
)

// Warning messages
const (
	WarnConnectionPinMissing  = "Connection %s references unregistered pin %s; skipping"
	WarnJumpTargetMissing     = "Jump %s targets %s/%s which was not converted; leaving it unlinked"
	WarnConversationMissing   = "Dialogue %s has no converted conversation; skipping its children's context"
	WarnNoActiveConversation  = "%s node %s appears outside any conversation; skipping"
	WarnElementMissing        = "%s node %s is not defined in the project; skipping"
	WarnUnexpectedPinSemantic = "Unexpected semantic %q for pin %s"
	WarnUnknownEnumValue      = "Unknown %s value %q; using %s"
	WarnLinkSortUnresolved    = "Can't resolve link destination [%d:%d] while sorting links of entry [%d:%d] in conversation %q"
	WarnDanglingLinkRemoved   = "Removed link [%d:%d] -> [%d:%d]; destination entry no longer exists"
	WarnVoiceOverAssetMissing = "Can't find voice-over asset with ID %s for dialogue entry [%d:%d]: %q"
	WarnMissingStartEntry     = "Conversation %q doesn't have a START dialogue entry"
	WarnLooseFlowMissing      = "Flow fragment %s can't become a conversation; it is not defined in the project"
)

// LogInfo logs an informational message
func LogInfo(message string, args ...interface{}) {
	if len(args) > 0 {
		log.Printf("[INFO] "+message, args...)
	} else {
		log.Printf("[INFO] %s", message)
	}
}

// LogWarn logs a warning message
func LogWarn(message string, args ...interface{}) {
	if len(args) > 0 {
		log.Printf("[WARN] "+message, args...)
	} else {
		log.Printf("[WARN] %s", message)
	}
}

// LogError logs an error message
func LogError(message string, args ...interface{}) {
	if len(args) > 0 {
		log.Printf("[ERROR] "+message, args...)
	} else {
		log.Printf("[ERROR] %s", message)
	}
}

// LogDebug logs a debug message (only if VerboseMode is enabled)
func LogDebug(message string, args ...interface{}) {
	if !VerboseMode {
		return
	}
	if len(args) > 0 {
		log.Printf("[DEBUG] "+message, args...)
	} else {
		log.Printf("[DEBUG] %s", message)
	}
}

// FormatError creates a formatted error with additional context
func FormatError(baseMessage string, details interface{}) error {
	if err, ok := details.(error); ok {
		return fmt.Errorf("%s: %w", baseMessage, err)
	}
	return fmt.Errorf("%s: %v", baseMessage, details)
}

// FormatErrorString creates a formatted error with string details
func FormatErrorString(baseMessage, details string, args ...interface{}) error {
	if len(args) > 0 {
		return fmt.Errorf("%s: "+details, append([]interface{}{baseMessage}, args...)...)
	}
	return fmt.Errorf("%s: %s", baseMessage, details)
}
