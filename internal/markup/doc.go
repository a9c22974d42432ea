// Package markup parses the content dialect into a canonical block sequence.
//
// The dialect is line oriented:
//   - "# ", "## ", "### " start headings (longest prefix wins)
//   - "> " starts a blockquote
//   - "- ", "* ", "+ " start list items; contiguous items form one list
//   - a line containing the callout marker ("TL;DR") turns the list items
//     immediately following it into a callout
//   - "```lang" opens a fenced code block closed by a bare "```"
//   - every other non-blank line is a paragraph
//
// Inline markup (emphasis, links, code spans) is kept verbatim in block text
// and tokenized on demand by ParseInline, so every renderer sees the same
// inline grammar.
package markup
