// Package panel holds the phrase buffer a user composes before speaking it.
//
// The buffer stores system.Entry values, so the related-word and variant
// choices of each entry are resolved against the System every time the
// phrase is rendered or spoken.
package panel
