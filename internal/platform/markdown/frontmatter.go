package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	separator = "---\n"
	closing   = "\n---\n"
)

// SplitFrontmatter decodes the YAML header of content into out and returns
// the remaining body. Content without a header leaves out untouched.
func SplitFrontmatter(content string, out any) (string, error) {
	if !strings.HasPrefix(content, separator) {
		return content, nil
	}
	rest := strings.TrimPrefix(content, separator)
	idx := strings.Index(rest, closing)
	if idx < 0 {
		return "", fmt.Errorf("invalid frontmatter: missing closing separator")
	}
	if err := yaml.Unmarshal([]byte(rest[:idx]), out); err != nil {
		return "", fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	return rest[idx+len(closing):], nil
}

// RenderFrontmatter writes meta as a YAML header followed by body.
func RenderFrontmatter(meta any, body string) (string, error) {
	raw, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	buf := bytes.Buffer{}
	buf.WriteString(separator)
	buf.Write(raw)
	buf.WriteString(separator)
	if !strings.HasPrefix(body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString(body)
	return buf.String(), nil
}
