package utils

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
)

// Markdown converts a short markdown fragment (a phase or facility
// description) into HTML. Raw HTML in the input is not passed through.
func Markdown(input string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(strings.TrimSpace(input)), &buf); err != nil {
		return "", fmt.Errorf("MARKDOWN_RENDER_FAILED: %v", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
