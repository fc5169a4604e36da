// Package docview lets a user browse a directory tree of markup documents,
// search them by filename and content, and read them rendered to HTML.
//
// This package contains domain types, interfaces and the pure logic shared
// by every implementation (path resolution, document filtering, link
// normalization). Implementations live in subdirectories named after their
// primary dependency (e.g., fs/, goquery/, asciidoc/, goldmark/).
package docview
