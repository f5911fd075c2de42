package shader

import (
	"strings"

	"github.com/Faultbox/mirror-room/internal/engine/gfx"
)

// Preprocess injects defines into source. GLSL requires #version to be the
// first directive, so the defines go right after it; a source without one
// gets them prepended.
func Preprocess(source string, defines []gfx.Define) string {
	if len(defines) == 0 {
		return source
	}

	var block strings.Builder
	for _, d := range defines {
		block.WriteString("#define ")
		block.WriteString(d.Name)
		if d.Value != "" {
			block.WriteByte(' ')
			block.WriteString(d.Value)
		}
		block.WriteByte('\n')
	}

	start := versionLineEnd(source)
	if start < 0 {
		return block.String() + source
	}
	return source[:start] + block.String() + source[start:]
}

// versionLineEnd returns the offset just past the #version line, or -1.
func versionLineEnd(source string) int {
	offset := 0
	for offset < len(source) {
		end := strings.IndexByte(source[offset:], '\n')
		line := source[offset:]
		next := len(source)
		if end >= 0 {
			line = source[offset : offset+end]
			next = offset + end + 1
		}

		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#version") {
			if end < 0 {
				return -1
			}
			return next
		}
		if trimmed != "" && !strings.HasPrefix(trimmed, "//") {
			return -1
		}
		offset = next
	}
	return -1
}
