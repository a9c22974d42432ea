// Package layout turns a print document model into print-ready HTML.
//
// The page template and stylesheet come from internal/assets. Cover, table
// of contents and every content section are separate page-broken
// <section> elements; TOC entries link to heading anchors. Running headers
// and footers are also available as Chrome header/footer templates, see
// HeaderTemplate and FooterTemplate.
package layout
