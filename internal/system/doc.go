// Package system holds the board definition an AAC user composes phrases
// from: folders of buttons, the hotbar, and the variant and related-word
// tables. A System is loaded once at startup and never mutated afterwards,
// so it can be shared freely between the board controller and any number of
// readers.
package system
