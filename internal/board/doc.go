// Package board drives an AAC board: which folder and page are showing,
// what pressing a cell does, and the phrase being composed.
//
// A Board is owned by one presentation layer and must only be used from its
// event loop.
package board
