// Package vocab builds a System from a categorized word list.
//
// The word list is a tab separated table: the first column is the word, every
// further column a category, and a non-empty cell puts the word in that
// category. A Layout then says which categories end up in which folder.
package vocab
