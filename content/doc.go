// Package content orders pages by what they say rather than by printed
// numbers. It extracts lightweight text features per page (headings,
// cross-references, boundary words, sentences), derives pairwise
// relationships from them, and uses strong relationships to reposition
// pages whose number-based decision was weak.
//
// Feature extraction and relationship analysis are pure text functions;
// the Refiner is the only stage that touches ordering decisions.
package content
