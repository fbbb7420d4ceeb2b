// Package buffer implements the rich-text document behind content-editable
// surfaces: lines of runes, a cursor, an optional selection, undo history and
// change notifications.
//
// Coordinates are 0-based (Row, Col) in runes. Offsets count runes across the
// whole document with '\n' as one rune.
package buffer
