package rewrite

import "strings"

// ListenerPass returns the addEventListener pass. It has no guard, so running it over already
// rewritten content wraps the fallback call a second time.
func ListenerPass() Pass {
	return Pass{
		Name:  "listeners",
		Apply: rewriteListenerLine,
	}
}

// FixEventListeners rewrites every addEventListener call in content.
func FixEventListeners(content string) (string, int) {
	return Lines(content, ListenerPass())
}

func rewriteListenerLine(line string) (string, int) {
	matches := ListenerCallPattern.FindAllStringSubmatchIndex(line, -1)
	if len(matches) == 0 {
		return line, 0
	}

	var b strings.Builder
	last := 0
	for _, loc := range matches {
		b.WriteString(line[last:loc[0]])
		b.WriteString(listenerReplacement(submatches(line, loc)))
		last = loc[1]
	}
	b.WriteString(line[last:])

	return b.String(), len(matches)
}

// submatches expands an index slice into group strings; unmatched groups are empty.
func submatches(line string, loc []int) []string {
	groups := make([]string, len(loc)/2)
	for i := range groups {
		if loc[2*i] >= 0 {
			groups[i] = line[loc[2*i]:loc[2*i+1]]
		}
	}
	return groups
}

// listenerReplacement builds the manager-or-fallback expression from a submatch slice.
func listenerReplacement(groups []string) string {
	element, event, handler, options := groups[1], groups[2], groups[3], groups[4]

	args := []string{event, handler}
	if options != "" {
		args = append(args, options)
	}
	forwarded := strings.Join(args, ", ")

	var b strings.Builder
	b.WriteString("(")
	b.WriteString(ListenerManager)
	b.WriteString(" ? ")
	b.WriteString(ListenerManager)
	b.WriteString(".add(")
	b.WriteString(element)
	b.WriteString(", ")
	b.WriteString(forwarded)
	b.WriteString(") : ")
	b.WriteString(element)
	b.WriteString(".addEventListener(")
	b.WriteString(forwarded)
	b.WriteString("))")
	return b.String()
}
