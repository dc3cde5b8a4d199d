// Package obf converts systems to and from the Open Board Format, both
// single .obf boards and zipped .obz packages.
//
// Folders map to boards one to one. Paginated folders are exported with
// their pages stacked as extra rows, as OBF has no paging. Settings without
// an OBF equivalent travel in ext_sgs_* fields.
package obf
