package vcproj

import "strings"

// sampleProject returns a trimmed-down VS2008 project using LF line endings.
func sampleProject() string {
	return strings.Join([]string{
		`<?xml version="1.0" encoding="Windows-1252"?>`,
		`<VisualStudioProject`,
		"\t" + `ProjectType="Visual C++"`,
		"\t" + `Version="9.00"`,
		"\t" + `Name="SumatraPDF"`,
		"\t>",
		"\t<Platforms>",
		"\t\t<Platform",
		"\t\t\t" + `Name="Win32"`,
		"\t\t/>",
		"\t</Platforms>",
		"\t<Files>",
		"\t\t<Filter",
		"\t\t\t" + `Name="Source Files"`,
		"\t\t\t>",
		"\t\t\t<File",
		"\t\t\t\t" + `RelativePath="..\src\AppPrefs.cpp"`,
		"\t\t\t\t>",
		"\t\t\t</File>",
		"\t\t\t<Filter",
		"\t\t\t\t" + `Name="Varia"`,
		"\t\t\t\t>",
		"\t\t\t\t<File",
		"\t\t\t\t\t" + `RelativePath="..\src\regress\Regress.cpp"`,
		"\t\t\t\t\t>",
		"\t\t\t\t</File>",
		"\t\t\t</Filter>",
		"\t\t</Filter>",
		"\t\t<Filter",
		"\t\t\t" + `Name="baseutils"`,
		"\t\t\t>",
		"\t\t\t<File",
		"\t\t\t\t" + `RelativePath="..\src\utils\BaseUtil.cpp"`,
		"\t\t\t\t>",
		"\t\t\t</File>",
		"\t\t\t<File",
		"\t\t\t\t" + `RelativePath="..\src\utils\BaseUtil.h"`,
		"\t\t\t\t>",
		"\t\t\t</File>",
		"\t\t</Filter>",
		"\t</Files>",
		"\t<Globals>",
		"\t</Globals>",
		"</VisualStudioProject>",
		"",
	}, "\n")
}

// fileBlock renders the File block the fixture uses for path at indent tabs.
func fileBlock(tabs int, relativePath string) string {
	indent := strings.Repeat("\t", tabs)
	return indent + "<File\n" +
		indent + "\t" + `RelativePath="` + relativePath + "\"\n" +
		indent + "\t>\n" +
		indent + "</File>\n"
}
