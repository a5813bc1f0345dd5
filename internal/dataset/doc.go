// Package dataset loads specimen measurement tables into an in-memory
// Frame (header + string rows). Readers exist for CSV (delimiter
// auto-detection, ragged rows tolerated) and XLSX (first worksheet);
// NewReader picks one by file extension.
//
// Numeric access is deliberately lenient: Frame.Float accepts decimal
// commas and reports unparseable cells as missing rather than failing,
// because field datasets routinely contain blanks and "NA" markers.
package dataset
