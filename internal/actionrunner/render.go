package actionrunner

import (
	"fmt"
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// RenderCommand substitutes {name} placeholders in every command token
// with the matching rendered argument. Every placeholder must be
// satisfied before any substitution happens, so a missing argument never
// produces a partially-rendered command.
//
// strings.Replacer performs the substitution itself in a single
// left-to-right pass and never rescans replaced text, which is the
// "greedy, non-recursive" guarantee spec.md §4.2 requires.
func RenderCommand(tokens []string, args map[string]string) ([]string, *ActionError) {
	for _, tok := range tokens {
		for _, m := range placeholderPattern.FindAllStringSubmatch(tok, -1) {
			name := m[1]
			if _, ok := args[name]; !ok {
				return nil, &ActionError{
					Code:    ErrMissingActionArg,
					Message: fmt.Sprintf("missing argument %q required by command template", name),
				}
			}
		}
	}

	pairs := make([]string, 0, len(args)*2)
	for name, val := range args {
		pairs = append(pairs, "{"+name+"}", val)
	}
	replacer := strings.NewReplacer(pairs...)

	rendered := make([]string, len(tokens))
	for i, tok := range tokens {
		rendered[i] = replacer.Replace(tok)
	}
	return rendered, nil
}
