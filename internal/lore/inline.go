package lore

import (
	"strings"
	"unicode"
)

// Reference is a cross-reference embedded in a description.
type Reference struct {
	// Kind is the catalog kind named by the reference digit, or empty when
	// the reference does not name one.
	Kind string
	Name string
}

// KindOf maps a reference digit to a catalog kind.
func KindOf(digit rune) string {
	switch digit {
	case '1':
		return "spells"
	case '2':
		return "powers"
	case '3':
		return "abilities"
	case '4':
		return "feats"
	case '5':
		return "skills"
	}
	return ""
}

type inliner struct {
	out       strings.Builder
	run       []rune
	highlight []rune
	refs      []Reference

	strong bool
	fixed  bool
}

// inline converts inline markup of s to Markdown, bolding case-insensitive
// occurrences of highlight in plain text.
func inline(s, highlight string) (string, []Reference) {
	in := &inliner{highlight: []rune(strings.ToLower(highlight))}
	rs := []rune(s)
	var braces int
	emOpen := false

	for i := 0; i < len(rs); i++ {
		switch r := rs[i]; r {
		case '[':
			in.flush()
			kind := ""
			if i+1 < len(rs) {
				kind = KindOf(rs[i+1])
				if kind != "" {
					i++
				}
			}
			end := i + 1
			for end < len(rs) && rs[end] != ']' {
				end++
			}
			name := string(rs[i+1 : end])
			in.refs = append(in.refs, Reference{Kind: kind, Name: name})
			if name != "" {
				in.out.WriteString("**" + escape(name) + "**")
			}
			i = end

		case '|':
			in.flush()
			in.out.WriteByte('`')
			in.fixed = !in.fixed

		case '{':
			in.flush()
			braces = 0
			for i < len(rs) && rs[i] == '{' {
				braces++
				i++
			}
			i--
			switch braces {
			case 1:
				in.out.WriteByte('*')
				emOpen = true
			case 2:
				in.out.WriteString("**")
				in.strong = true
			}

		case '}':
			in.flush()
			switch braces {
			case 1:
				if emOpen {
					in.out.WriteByte('*')
					emOpen = false
				}
			case 2:
				if in.strong {
					in.out.WriteString("**")
					in.strong = false
				}
				if i+1 < len(rs) && rs[i+1] == '}' {
					i++
				}
			}
			braces = 0

		default:
			in.run = append(in.run, r)
		}
	}
	in.flush()
	if in.fixed {
		in.out.WriteByte('`')
	}
	if in.strong {
		in.out.WriteString("**")
	}
	if emOpen {
		in.out.WriteByte('*')
	}
	return in.out.String(), in.refs
}

func (in *inliner) flush() {
	if len(in.run) == 0 {
		return
	}
	run := in.run
	in.run = in.run[:0]

	if in.fixed {
		in.out.WriteString(string(run))
		return
	}
	if len(in.highlight) == 0 || in.strong {
		in.out.WriteString(escape(string(run)))
		return
	}
	for len(run) > 0 {
		at := indexFold(run, in.highlight)
		if at < 0 {
			in.out.WriteString(escape(string(run)))
			return
		}
		in.out.WriteString(escape(string(run[:at])))
		in.out.WriteString("**" + escape(string(run[at:at+len(in.highlight)])) + "**")
		run = run[at+len(in.highlight):]
	}
}

func indexFold(s, sub []rune) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		ok := true
		for j := range sub {
			if unicode.ToLower(s[i+j]) != sub[j] {
				ok = false
				break
			}
		}
		if ok {
			return i
		}
	}
	return -1
}

var escaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"|", `\|`,
	"<", `\<`,
)

func escape(s string) string { return escaper.Replace(s) }
