// Package expr translates authored condition and script expressions into
// Lua as understood by the dialogue runtime.
//
// Translation is line oriented and purely textual: it never parses the
// expression, so anything it does not recognize is passed through as is.
package expr

import (
	"regexp"
	"sort"
	"strings"
)

// LuaVariablePrefix marks text that is already in the target dialect.
const LuaVariablePrefix = "Variable["

var (
	randomCallPattern = regexp.MustCompile(`(^|[^.\w])random\s*\(`)
	andPattern        = regexp.MustCompile(`\s*&&\s*`)
	orPattern         = regexp.MustCompile(`\s*\|\|\s*`)
	incDecPattern     = regexp.MustCompile(`\b([A-Za-z_][\w.]*)[ \t]*(\+\+|--)`)
	negatedIdentifier = regexp.MustCompile(`!([A-Za-z_]\w*)`)
	compoundAssign    = regexp.MustCompile(`\s*([+-]=)\s*`)
)

// Translator converts expressions for one conversion run. The set of known
// variable names is fixed at construction, so a Translator is safe to share
// between goroutines.
type Translator struct {
	variables *regexp.Regexp
}

// NewTranslator builds a translator that rewrites the given full variable
// names ("Set.variable") to Variable["Set.variable"]. Names are matched on
// word boundaries, longest first, in a single pass.
func NewTranslator(fullVariableNames []string) *Translator {
	seen := make(map[string]bool, len(fullVariableNames))
	var names []string
	for _, name := range fullVariableNames {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	if len(names) == 0 {
		return &Translator{}
	}

	sort.SliceStable(names, func(i, j int) bool {
		return len(names[i]) > len(names[j])
	})
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = regexp.QuoteMeta(name)
	}
	return &Translator{
		variables: regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`),
	}
}

// Translate converts expression. Conditions drop comment-only statements;
// a condition that is nothing but a single-line comment becomes "".
func (t *Translator) Translate(expression string, isCondition bool) string {
	if expression == "" {
		return expression
	}
	if isCondition && isComment(expression) && !strings.Contains(expression, "\n") {
		return ""
	}
	if strings.Contains(expression, LuaVariablePrefix) {
		return expression
	}
	if !strings.Contains(expression, ";") {
		return t.translateStatement(expression)
	}

	var statements []string
	for _, statement := range strings.Split(expression, ";") {
		if isCondition && isComment(statement) {
			continue
		}
		if strings.TrimSpace(statement) == "" {
			continue
		}
		statements = append(statements, t.translateStatement(statement))
	}
	return strings.Join(statements, ";\n")
}

func isComment(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "//")
}

// translateStatement leaves quoted string literals untouched and
// translates the code between them.
func (t *Translator) translateStatement(statement string) string {
	statement = strings.TrimSpace(statement)
	if !strings.Contains(statement, `"`) {
		return t.translateFragment(statement)
	}

	fragments := splitOnUnescapedQuotes(statement)
	var sb strings.Builder
	insideString := false
	for i, fragment := range fragments {
		if insideString {
			sb.WriteString(fragment)
		} else {
			sb.WriteString(t.translateFragment(fragment))
		}
		if i+1 < len(fragments) {
			sb.WriteByte('"')
		}
		insideString = !insideString
	}
	return sb.String()
}

// splitOnUnescapedQuotes splits s at every '"' not preceded by a backslash.
func splitOnUnescapedQuotes(s string) []string {
	var fragments []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '"' && (i == 0 || s[i-1] != '\\') {
			fragments = append(fragments, s[start:i])
			start = i + 1
		}
	}
	return append(fragments, s[start:])
}

func (t *Translator) translateFragment(s string) string {
	if s == "" {
		return s
	}

	s = strings.ReplaceAll(s, "///", "")
	s = incDecPattern.ReplaceAllStringFunc(s, desugarIncDec)
	s = strings.ReplaceAll(s, "//", "--")

	s = randomCallPattern.ReplaceAllString(s, "${1}math.random(")

	s = andPattern.ReplaceAllString(s, " and ")
	s = orPattern.ReplaceAllString(s, " or ")
	s = strings.ReplaceAll(s, "!=", "~=")

	if t.variables != nil {
		s = t.variables.ReplaceAllStringFunc(s, func(name string) string {
			return LuaVariablePrefix + `"` + name + `"]`
		})
	}

	s = strings.ReplaceAll(s, "!"+LuaVariablePrefix, "not "+LuaVariablePrefix)
	s = strings.ReplaceAll(s, "!(", "not (")
	s = negatedIdentifier.ReplaceAllString(s, "not $1")

	if strings.Contains(s, "+=") || strings.Contains(s, "-=") {
		s = desugarCompoundAssignment(s)
	}
	return s
}

func desugarIncDec(match string) string {
	parts := incDecPattern.FindStringSubmatch(match)
	name, op := parts[1], parts[2][:1]
	return name + " = " + name + " " + op + " 1"
}

// desugarCompoundAssignment rewrites "x += y" as "x = x + y". The left-hand
// side is the single whitespace-delimited token before the operator.
// Surrounding whitespace is kept, and an operator ending the fragment keeps
// a space before the quoted operand that follows it.
func desugarCompoundAssignment(s string) string {
	body := strings.TrimSpace(s)
	if body == "" {
		return s
	}
	leading := s[:strings.Index(s, body)]
	trailing := s[len(leading)+len(body):]
	if trailing == "" && (strings.HasSuffix(body, "+=") || strings.HasSuffix(body, "-=")) {
		trailing = " "
	}

	tokens := strings.Fields(compoundAssign.ReplaceAllString(body, " $1 "))
	for i := 1; i < len(tokens); i++ {
		if tokens[i] == "+=" || tokens[i] == "-=" {
			tokens[i] = "= " + tokens[i-1] + " " + tokens[i][:1]
		}
	}
	return leading + strings.Join(tokens, " ") + trailing
}

// JoinConditions ANDs two Lua conditions, skipping empty ones.
func JoinConditions(conditions, more string) string {
	if conditions == "" {
		return more
	}
	if more == "" {
		return conditions
	}
	return "(" + conditions + ") and (" + more + ")"
}

// JoinScripts appends a Lua statement to a script.
func JoinScripts(script, more string) string {
	if script == "" {
		return more
	}
	if more == "" {
		return script
	}
	return script + "; " + more
}
