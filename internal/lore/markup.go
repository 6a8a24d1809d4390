// Package lore converts catalog description markup to Markdown.
//
// Markup:
//
//	{text}      emphasis
//	{{text}}    strong
//	|text|      fixed text
//	[1Name]     reference; the digit selects the catalog
//	$           paragraph break
//	*a*b^c      list; ^ starts a nested item
//	#a;b:c;d#   table; ; separates cells and : starts a row
package lore

const (
	blockPara = iota
	blockList
	blockTable
)

type item struct {
	level int
	text  string
}

type block struct {
	kind  int
	text  string
	items []item
	cells []string
	rows  int
}

// split cuts a description line into paragraphs, lists and tables. Inline
// markup is left in place.
func split(line string) []block {
	rs := []rune(line)
	var (
		blocks []block
		para   []rune
		inList bool // last block was a list or table
	)
	flush := func() {
		if len(para) > 0 {
			blocks = append(blocks, block{kind: blockPara, text: string(para)})
			para = para[:0]
		}
	}

	for i := 0; i < len(rs); i++ {
		switch rs[i] {
		case '#':
			flush()
			inList = true
			i++
			b := block{kind: blockTable, rows: 1}
			start := i
			for ; i < len(rs) && rs[i] != '#'; i++ {
				switch rs[i] {
				case ':':
					b.rows++
					fallthrough
				case ';':
					b.cells = append(b.cells, string(rs[start:i]))
					start = i + 1
				}
			}
			b.cells = append(b.cells, string(rs[start:min(i, len(rs))]))
			blocks = append(blocks, b)

		case '*':
			flush()
			inList = true
			i++
			b := block{kind: blockList}
			start := i
			add := func(s []rune) {
				if len(s) == 0 {
					return
				}
				if s[0] == '^' {
					b.items = append(b.items, item{level: 1, text: string(s[1:])})
					return
				}
				b.items = append(b.items, item{text: string(s)})
			}
			for ; i < len(rs) && rs[i] != '$' && rs[i] != '#'; i++ {
				switch rs[i] {
				case '*':
					add(rs[start:i])
					start = i + 1
				case '^':
					add(rs[start:i])
					start = i
				}
			}
			add(rs[start:i])
			if len(b.items) > 0 {
				blocks = append(blocks, b)
			}
			// Let the terminator be handled by the outer loop.
			i--

		case '$':
			if !inList {
				flush()
			}

		default:
			inList = false
			para = append(para, rs[i])
		}
	}
	flush()
	return blocks
}
