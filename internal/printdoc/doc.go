// Package printdoc projects a parsed document onto a paginated print model:
// a cover page, a table of contents, and content sections carrying a fixed
// header and footer.
//
// The model describes layout intent only. Page breaks inside a section and
// real page numbers belong to the layout engine; table of contents pages
// are synthetic estimates (see TOCEntry).
package printdoc
