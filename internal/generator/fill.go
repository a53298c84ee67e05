package generator

import (
	"fmt"
	"strings"
)

// missingSlotError reports a template placeholder with no value.
type missingSlotError struct {
	slot string
}

func (e *missingSlotError) Error() string {
	return fmt.Sprintf("template slot %q has no value", e.slot)
}

// fill substitutes every {name} in tmpl from vars. An unterminated brace is
// copied through unchanged.
func fill(tmpl string, vars map[string]string) (string, error) {
	var b strings.Builder
	b.Grow(len(tmpl) + 64)

	rest := tmpl
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		end += open

		name := rest[open+1 : end]
		val, ok := vars[name]
		if !ok {
			return "", &missingSlotError{slot: name}
		}
		b.WriteString(rest[:open])
		b.WriteString(val)
		rest = rest[end+1:]
	}
}

const fallbackOffer = "We have something special for you."

// fallbackContent is used when a template cannot be filled.
func fallbackContent(vars map[string]string, businessName, callToAction string) string {
	offer, ok := vars["offer"]
	if !ok {
		offer = fallbackOffer
	}
	return fmt.Sprintf("Great news from %s! %s %s", businessName, offer, callToAction)
}
