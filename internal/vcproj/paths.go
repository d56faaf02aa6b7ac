package vcproj

import "strings"

// ParentMarker prefixes every RelativePath: the project file lives one
// directory below the top of the source tree.
const ParentMarker = `..\`

// ExtractPath returns the top-relative, slash-separated path a File node
// references. It returns "" for nodes that are not Files.
func ExtractPath(node *Node) string {
	if !node.IsFile() {
		return ""
	}
	rel, ok := node.Attr(AttrRelativePath)
	if !ok || len(rel) < len(ParentMarker) {
		return ""
	}
	return strings.ReplaceAll(rel[len(ParentMarker):], `\`, "/")
}

// ExtractPaths returns the paths of all File nodes in traversal order.
func ExtractPaths(nodes []*Node) []string {
	paths := make([]string, 0, len(nodes))
	for _, node := range nodes {
		if node.IsFile() {
			paths = append(paths, ExtractPath(node))
		}
	}
	return paths
}

// ProjectPath converts a slash-separated path into the RelativePath form
// stored in the project file.
func ProjectPath(path string) string {
	return ParentMarker + strings.ReplaceAll(path, "/", `\`)
}
