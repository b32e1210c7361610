package search

const (
	expandedContextNote = "\n\n[Expanded context: the surrounding entries of the source " +
		"dictionary are not available for this entry. The definition is shown above.]"
	fullContextNote = "\n\n[Full context: the enclosing section of the source dictionary " +
		"is not available for this entry. The definition is shown above.]"
)

// ShapeContext returns copies of hits with a single context field set for size.
//
//   - default: no context field
//   - expanded: the backend's expanded context, else one built from the definition
//   - full: the backend's full context moved into ExpandedContext, else one built
//     from the definition
//
// FullContext is always nil on the way out. A hit with an empty definition and
// no backend context has no context field.
func ShapeContext(hits []Hit, size ContextSize) []Hit {
	out := make([]Hit, len(hits))
	for i, h := range hits {
		switch size {
		case ContextExpanded:
			if h.ExpandedContext == nil {
				h.ExpandedContext = synthesizeContext(h.Definition, size)
			}
		case ContextFull:
			if h.FullContext != nil {
				h.ExpandedContext = h.FullContext
			} else {
				h.ExpandedContext = synthesizeContext(h.Definition, size)
			}
		default:
			h.ExpandedContext = nil
		}
		h.FullContext = nil
		out[i] = h
	}
	return out
}

func synthesizeContext(definition string, size ContextSize) *string {
	if definition == "" {
		return nil
	}
	var s string
	switch size {
	case ContextExpanded:
		s = definition + expandedContextNote
	case ContextFull:
		s = definition + fullContextNote
	default:
		return nil
	}
	return &s
}
