package relocate

import (
	"regexp"
	"unicode/utf8"
)

// groupTag is greedy: "[A]Show[B].mkv" loses everything up to the last "]".
var groupTag = regexp.MustCompile(`^\[.+\]`)

// TransformName returns the destination filename for name: a leading
// bracketed tag is stripped, then the final character is dropped.
//
// "[GroupX]Show.S01E01.mkv" becomes "Show.S01E01.mk".
func TransformName(name string) string {
	stripped := groupTag.ReplaceAllLiteralString(name, "")
	if stripped == "" {
		return ""
	}
	_, size := utf8.DecodeLastRuneInString(stripped)
	return stripped[:len(stripped)-size]
}
