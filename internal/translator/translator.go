package translator

import (
	"context"
	"fmt"
	"strings"
)

// Translate splits text into lines, translates each non-empty line and
// joins the results with a single space. Same-language requests return
// text unchanged.
func (t *implTranslator) Translate(ctx context.Context, text, src, tgt string) (string, error) {
	if src == tgt {
		return text, nil
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		translated, err := t.engine.Translate(ctx, line, src, tgt)
		if err != nil {
			return "", fmt.Errorf("translate %s->%s: %w", src, tgt, err)
		}
		out = append(out, strings.TrimSpace(translated))
	}

	t.logger.Debug(ctx, "Translated %d lines %s->%s with %s", len(out), src, tgt, t.engine.Name())
	return strings.Join(out, " "), nil
}
