// Package hypertext renders a parsed document as sanitized HTML for the
// body of a CMS draft.
//
// Output is built one fragment per block, in block order, so a callout box
// is complete before the next block is written and nothing downstream can
// re-wrap it. The joined fragments pass through a bluemonday policy that
// admits only the elements this package emits.
package hypertext
