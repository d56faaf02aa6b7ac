package vcproj

import (
	"fmt"
	"strings"
)

// ParseSiblings returns the tagged blocks found at the top level of text.
//
// A block starts at the beginning of a line with an indentation I, an open
// tag "<Name attrs>" (attrs may span several lines) directly followed by a
// newline, and ends at the first following line that is exactly I + "</Name>".
// Open tags without such a closing line (self-closing elements, the XML
// declaration) are skipped. base is added to every offset so nested calls
// report positions in the enclosing document.
//
// Only the newline-terminated block layout Visual Studio writes is
// understood; this is not an XML parser.
func ParseSiblings(text string, base int) []*Node {
	var nodes []*Node

	pos := 0
	for pos < len(text) {
		node, end, ok := parseBlockAt(text, pos)
		if ok {
			node.Start += base
			node.End += base
			node.ContentStart += base
			node.ContentEnd += base
			nodes = append(nodes, node)
			pos = end
			continue
		}
		pos = nextLine(text, pos)
	}

	return nodes
}

// parseBlockAt tries to read a block starting at the line beginning at pos.
func parseBlockAt(text string, pos int) (*Node, int, bool) {
	i := pos
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	indent := text[pos:i]

	if i >= len(text) || text[i] != '<' {
		return nil, 0, false
	}
	i++

	nameStart := i
	for i < len(text) && !isSpace(text[i]) && text[i] != '>' {
		i++
	}
	name := text[nameStart:i]
	if name == "" || strings.HasPrefix(name, "/") {
		return nil, 0, false
	}

	gt := strings.IndexByte(text[i:], '>')
	if gt < 0 {
		return nil, 0, false
	}
	attrs := text[i : i+gt]
	i += gt + 1

	if i >= len(text) || text[i] != '\n' {
		return nil, 0, false
	}
	contentStart := i + 1

	// Search from the newline ending the open tag so an empty body matches.
	closeLine := "\n" + indent + "</" + name + ">\n"
	c := strings.Index(text[i:], closeLine)
	if c < 0 {
		return nil, 0, false
	}
	contentEnd := i + c + 1
	end := i + c + len(closeLine)

	return &Node{
		Raw:          text[pos:end],
		Indent:       indent,
		Name:         name,
		Attrs:        attrs,
		Content:      text[contentStart:contentEnd],
		Start:        pos,
		End:          end,
		ContentStart: contentStart,
		ContentEnd:   contentEnd,
	}, end, true
}

func nextLine(text string, pos int) int {
	nl := strings.IndexByte(text[pos:], '\n')
	if nl < 0 {
		return len(text)
	}
	return pos + nl + 1
}

// FilesNode locates the Files node of a project document. The document must
// have exactly one top-level VisualStudioProject node holding exactly one
// Files node.
func FilesNode(text string) (*Node, error) {
	root := ParseSiblings(text, 0)
	if len(root) != 1 || root[0].Name != TagProject {
		return nil, fmt.Errorf("%w: expected a single %s root node, found %d top-level nodes",
			ErrMalformedProject, TagProject, len(root))
	}

	var files []*Node
	for _, node := range ParseSiblings(root[0].Content, root[0].ContentStart) {
		if node.Name == TagFiles {
			files = append(files, node)
		}
	}
	if len(files) != 1 {
		return nil, fmt.Errorf("%w: expected exactly one %s node, found %d",
			ErrMalformedProject, TagFiles, len(files))
	}

	return files[0], nil
}

// ParseTree flattens the Filter/File tree below files in depth-first
// pre-order, files itself first.
//
// Every nested node must be a Filter with a Name or a File with a
// RelativePath, indented with tabs exactly one level deeper than its parent.
// File bodies (FileConfiguration blocks and the like) are not descended into.
func ParseTree(files *Node) ([]*Node, error) {
	nodes := []*Node{files}
	if err := parseChildren(files, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

func parseChildren(parent *Node, out *[]*Node) error {
	for _, node := range ParseSiblings(parent.Content, parent.ContentStart) {
		node.Depth = parent.Depth + 1

		if err := checkNode(parent, node); err != nil {
			return err
		}

		*out = append(*out, node)
		if node.IsFilter() {
			if err := parseChildren(node, out); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkNode(parent, node *Node) error {
	switch node.Name {
	case TagFilter:
		if _, ok := node.Attr(AttrName); !ok {
			return fmt.Errorf("%w: %s at offset %d has no %s attribute",
				ErrMalformedProject, TagFilter, node.Start, AttrName)
		}
	case TagFile:
		path, ok := node.Attr(AttrRelativePath)
		if !ok {
			return fmt.Errorf("%w: %s at offset %d has no %s attribute",
				ErrMalformedProject, TagFile, node.Start, AttrRelativePath)
		}
		if len(path) <= len(ParentMarker) {
			return fmt.Errorf("%w: %s %q is too short to carry the %q prefix",
				ErrMalformedProject, AttrRelativePath, path, ParentMarker)
		}
	default:
		return fmt.Errorf("%w: unexpected <%s> inside <%s> at offset %d",
			ErrMalformedProject, node.Name, parent.Name, node.Start)
	}

	if strings.Trim(node.Indent, "\t") != "" {
		return fmt.Errorf("%w: <%s> at offset %d is not indented with tabs",
			ErrMalformedProject, node.Name, node.Start)
	}
	if len(node.Indent) != len(parent.Indent)+1 {
		return fmt.Errorf("%w: <%s> at offset %d is indented %d tabs, expected %d",
			ErrMalformedProject, node.Name, node.Start, len(node.Indent), len(parent.Indent)+1)
	}

	return nil
}
