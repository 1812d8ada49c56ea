// Package dataset ingests historical sales listings for calibration.
//
// It reads CSV and Excel exports of housing listings, coerces numeric cells
// written in Dutch number format, and folds free-text categorical columns
// (house type, garden, roof, position, energy label) into the canonical
// categories the pricing package calibrates against. Rows without a usable
// price or living area are counted and skipped, never guessed at.
package dataset
