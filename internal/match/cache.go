package match

import (
	"fmt"
	"regexp"

	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultCacheSize bounds the compiled-pattern cache. Aliases and
// triggers are registered far less often than they fire, so a modest
// cache avoids recompiling the same regexp on every incoming line
// without growing unbounded across a long session.
const defaultCacheSize = 256

// Compiler compiles Specs into Matchers, caching the compiled
// *regexp.Regexp by its final pattern source so that repeated
// registrations of the same pattern (common when a client reconnects
// and re-sends its saved aliases) skip recompilation. Grounded on the
// teacher's lua/engine.go regexCache, generalized from a single global
// cache to an explicit, per-dispatcher instance.
type Compiler struct {
	cache *lru.Cache[string, *regexp.Regexp]
}

// NewCompiler creates a Compiler with the default cache size.
func NewCompiler() *Compiler {
	c, _ := lru.New[string, *regexp.Regexp](defaultCacheSize)
	return &Compiler{cache: c}
}

// Compile builds a Matcher from spec, reusing a cached compiled
// pattern when the same (kind, source) pair has been compiled before.
func (c *Compiler) Compile(spec Spec) (*Matcher, error) {
	patternSrc := spec.Source
	if spec.Kind == KindSimple {
		translated, err := BuildSimplePattern(spec.Source)
		if err != nil {
			return nil, err
		}
		patternSrc = translated
	} else if spec.Kind != KindRegex {
		return nil, ErrUnsupportedKind
	}

	key := fmt.Sprintf("%d:%s", spec.Kind, patternSrc)
	if re, ok := c.cache.Get(key); ok {
		return &Matcher{options: spec.Options, pattern: re, source: patternSrc}, nil
	}

	re, err := regexp.Compile(patternSrc)
	if err != nil {
		return nil, fmt.Errorf("match: compile %q: %w", patternSrc, err)
	}

	c.cache.Add(key, re)
	return &Matcher{options: spec.Options, pattern: re, source: patternSrc}, nil
}
