package domain

// Line tags of rendered trees.
const (
	TagRoot    = "[Root]"
	TagInclude = "[Inc]"
	TagLoop    = "[Loop]"
	TagMissing = "[Missing]"
	TagLimit   = "[Limit]"
)

// TruncatedLine terminates a tree that hit its line cap.
const TruncatedLine = "... (truncated)"

const (
	connectorBranch = "├── "
	connectorFinal  = "└── "
	indentOpen      = "│   "
	indentClosed    = "    "
)

// Connector returns the connector drawn before a sibling and the indent its
// subtree continues with.
func Connector(last bool) (connector, indent string) {
	if last {
		return connectorFinal, indentClosed
	}
	return connectorBranch, indentOpen
}

// Tag returns the line tag for a node kind.
func (k NodeKind) Tag() string {
	switch k {
	case NodeUnresolved:
		return TagMissing
	case NodeCycleRef:
		return TagLoop
	case NodeDepthLimited:
		return TagLimit
	default:
		return TagInclude
	}
}
