package vcproj

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Addition is a file to reference under the filter at path Filter.
type Addition struct {
	Path   string
	Filter []string
}

// RewriteResult describes the outcome of Rewrite.
type RewriteResult struct {
	Text     string
	Inserted []Addition
	Removed  []string
	// Unplaced holds additions whose filter path matches no node.
	Unplaced []Addition
}

// Edit replaces Delete bytes at Offset with Insert.
type Edit struct {
	Offset int
	Delete int
	Insert string
}

// Rewrite patches text, whose tree nodes were produced by ParseTree, so that
// every addition is referenced under its filter and every File whose path is
// in removed is dropped.
//
// New File entries go at the end of the first node whose filter path equals
// the addition's target, indented one tab deeper than that node. Everything
// else is copied through byte for byte.
func Rewrite(text string, nodes []*Node, added []Addition, removed []string) (*RewriteResult, error) {
	result := &RewriteResult{}

	gone := make(map[string]bool, len(removed))
	for _, path := range removed {
		gone[path] = true
	}
	placed := make([]bool, len(added))

	var edits []Edit
	var filter []string
	for _, node := range nodes {
		if node.IsFile() {
			path := ExtractPath(node)
			if gone[path] {
				edits = append(edits, Edit{Offset: node.Start, Delete: node.End - node.Start})
				result.Removed = append(result.Removed, path)
			}
			continue
		}

		if node.IsFilter() {
			name, _ := node.Attr(AttrName)
			keep := min(max(node.Depth-1, 0), len(filter))
			filter = append(slices.Clone(filter[:keep]), name)
		} else {
			filter = nil
		}

		var xml strings.Builder
		for i, add := range added {
			if placed[i] || !slices.Equal(add.Filter, filter) {
				continue
			}
			placed[i] = true
			xml.WriteString(FileXML(node.Indent+"\t", add.Path))
			result.Inserted = append(result.Inserted, add)
		}
		if xml.Len() > 0 {
			edits = append(edits, Edit{Offset: node.ContentEnd, Insert: xml.String()})
		}
	}

	for i, add := range added {
		if !placed[i] {
			result.Unplaced = append(result.Unplaced, add)
		}
	}

	out, err := ApplyEdits(text, edits)
	if err != nil {
		return nil, err
	}
	result.Text = out
	return result, nil
}

// FileXML renders a File element for path at the given indentation.
func FileXML(indent, path string) string {
	var b strings.Builder
	b.WriteString(indent + "<" + TagFile + "\n")
	b.WriteString(indent + "\t" + AttrRelativePath + `="` + ProjectPath(path) + "\"\n")
	b.WriteString(indent + "\t>\n")
	b.WriteString(indent + "</" + TagFile + ">\n")
	return b.String()
}

// ApplyEdits builds a new document from the spans of text between edits.
// Edits at the same offset are applied in the order given; overlapping
// deletions are rejected.
func ApplyEdits(text string, edits []Edit) (string, error) {
	sorted := slices.Clone(edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	var b strings.Builder
	b.Grow(len(text))

	cursor := 0
	for _, e := range sorted {
		if e.Offset < cursor || e.Offset+e.Delete > len(text) {
			return "", fmt.Errorf("edit at offset %d (delete %d) overlaps a previous edit or runs past the end", e.Offset, e.Delete)
		}
		b.WriteString(text[cursor:e.Offset])
		b.WriteString(e.Insert)
		cursor = e.Offset + e.Delete
	}
	b.WriteString(text[cursor:])

	return b.String(), nil
}
