// Package dataprocessing ingests the season's tabular sources: the
// play-by-play event stream, the raw substitution windows and the player
// season totals. Column positions are resolved from CSV headers, invalid
// rows are dropped with a warning, and the three files are loaded
// concurrently at setup time.
package dataprocessing
