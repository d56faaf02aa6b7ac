package vcproj

import (
	"errors"
	"strings"
)

// ErrMalformedProject indicates the project file does not have the shape
// this tool knows how to patch (wrong root, missing Files node, unexpected
// tags or indentation). Callers must not write anything back when they see it.
var ErrMalformedProject = errors.New("malformed project file")

const (
	// TagProject is the single top-level element of a .vcproj file.
	TagProject = "VisualStudioProject"
	// TagFiles holds the Filter/File tree.
	TagFiles = "Files"
	// TagFilter groups files (and other filters) under a Name.
	TagFilter = "Filter"
	// TagFile references a source file through RelativePath.
	TagFile = "File"

	AttrName         = "Name"
	AttrRelativePath = "RelativePath"
)

// Node is one tagged block of the project file.
//
// Raw is byte-exact text[Start:End] of the document it was parsed from and
// Content is text[ContentStart:ContentEnd], the lines strictly between the
// open tag and the close tag. Offsets are absolute in the parsed document.
type Node struct {
	Raw     string
	Indent  string
	Name    string
	Attrs   string
	Content string

	Start        int
	End          int
	ContentStart int
	ContentEnd   int

	// Depth is the nesting level below the Files node (Files itself is 0).
	Depth int
}

// Attr returns the value of the first name="value" attribute with a
// non-empty value.
func (n *Node) Attr(name string) (string, bool) {
	key := name + `="`
	rest := n.Attrs
	offset := 0
	for {
		i := strings.Index(rest[offset:], key)
		if i < 0 {
			return "", false
		}
		i += offset
		offset = i + len(key)

		// Reject matches that are the tail of a longer attribute name,
		// e.g. Name inside ProjectName.
		if i > 0 && !isSpace(rest[i-1]) {
			continue
		}

		end := strings.IndexByte(rest[offset:], '"')
		if end <= 0 {
			continue
		}
		return rest[offset : offset+end], true
	}
}

// IsFilter reports whether the node is a Filter.
func (n *Node) IsFilter() bool { return n.Name == TagFilter }

// IsFile reports whether the node is a File.
func (n *Node) IsFile() bool { return n.Name == TagFile }

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
