// Package match resolves raw platform games against the catalog.
//
// Phase one sends every external id in one batch lookup. Games the catalog does
// not know by id are then searched by normalized name, four at a time with a
// pause between batches, and the candidate with the highest Similarity is
// accepted when it scores above the threshold.
package match
