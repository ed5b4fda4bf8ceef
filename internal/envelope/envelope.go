// Package envelope unwraps documents the grading workflow sometimes smuggles
// inside an HTML <iframe srcdoc="..."> attribute. The upstream workflow is a
// black box; the wrapping is an observed quirk of its responses and is
// handled heuristically here rather than with a full HTML parse.
package envelope

import (
	"regexp"
	"strings"
)

// Matches a single iframe with a srcdoc attribute, single or double quoted,
// capturing the attribute value non-greedily.
var iframeSrcdoc = regexp.MustCompile(`(?is)<iframe[^>]*?srcdoc\s*=\s*(?:"(.*?)"|'(.*?)')`)

// Unwrap recovers the embedded document from body. When an iframe srcdoc
// match is found, the captured value is entity-decoded (&quot; &lt; &gt;
// &amp;, in that order, so that &amp;lt; survives as &lt;) and literal \n
// sequences become real line breaks. Without a match only the \n conversion
// is applied. Unwrap never fails; it always returns a string.
func Unwrap(body string) string {
	idx := iframeSrcdoc.FindStringSubmatchIndex(body)
	if idx == nil {
		return restoreNewlines(body)
	}
	var inner string
	if idx[2] >= 0 {
		inner = body[idx[2]:idx[3]]
	} else {
		inner = body[idx[4]:idx[5]]
	}
	inner = strings.ReplaceAll(inner, "&quot;", `"`)
	inner = strings.ReplaceAll(inner, "&lt;", "<")
	inner = strings.ReplaceAll(inner, "&gt;", ">")
	inner = strings.ReplaceAll(inner, "&amp;", "&")
	return restoreNewlines(inner)
}

func restoreNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
