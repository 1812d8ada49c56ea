// Package exporter writes calibration reports.
//
// A report flattens the calibrated market profile and the run statistics
// into a reviewable document, as CSV or as an Excel workbook with one sheet
// per parameter group. Tables are sorted by key so repeated runs over the
// same dataset produce identical files.
package exporter
