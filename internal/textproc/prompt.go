package textproc

import (
	"github.com/wireline-mud/wireline/internal/ansi"
	"github.com/wireline-mud/wireline/internal/match"
)

// PromptSink receives prompt content as it's recognized. A connection's
// UI/state layer implements this to route a matched prompt slice into
// the right prompt group and index, and to mark that group active.
type PromptSink interface {
	SetPromptContent(groupID string, index int, content ansi.String)
	SetActivePromptGroup(groupID string)
}

// RegisterPrompt is sugar over RegisterMatcher: it compiles spec with
// Consume forced on (a prompt always removes its recognized text from
// the line) and registers it as a PartialLine matcher whose callback
// forwards the whole matched slice to sink at (groupID, index) and
// activates groupID.
func (p *Processor) RegisterPrompt(groupID string, index int, spec match.Spec, sink PromptSink) error {
	spec.Options.Consume = true
	m, err := match.Compile(spec)
	if err != nil {
		return err
	}

	id := PromptMatcherID{GroupID: groupID, Index: index}
	p.RegisterMatcher(id, m, PartialLine, func(ctx match.Context) error {
		sink.SetPromptContent(groupID, index, ctx.Whole.Original)
		sink.SetActivePromptGroup(groupID)
		return nil
	})
	return nil
}

// PromptMatcherID identifies a matcher registered via RegisterPrompt,
// for callers that need to find or remove it later.
type PromptMatcherID struct {
	GroupID string
	Index   int
}
