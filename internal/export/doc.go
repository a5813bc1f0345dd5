// Package export writes the enriched specimen table to disk. Writers
// exist for XLSX (single worksheet, numeric cells preserved as numbers)
// and CSV; NewWriter picks one by file extension, mirroring the dataset
// reader factory.
package export
