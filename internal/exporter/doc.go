// Package exporter writes analyst-facing rating report artifacts (CSV and
// Excel) from the season rating table.
package exporter
