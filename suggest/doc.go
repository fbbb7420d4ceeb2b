// Package suggest runs the inline completion lifecycle for editable surfaces.
//
// An Engine keeps one Session per surface. User input either advances through
// the shown suggestion, which never issues a request, or diverges from it and
// restarts the debounce. When the debounce fires the engine asks the provider
// for a completion and shows the result through an overlay.Renderer. Key
// presses accept the suggestion, one of its alternatives or the next word,
// or dismiss it.
//
// The Engine is not safe for concurrent use: call it from the Bubble Tea
// Update loop only. Provider calls run inside tea.Cmd functions and their
// results come back through Update.
package suggest
