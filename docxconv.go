// Package docxconv extracts structured tabular records from loosely
// formatted Japanese form documents. It discovers which fields a document
// contains, locates and extracts each field's value across varying markup
// conventions (bracketed headings, corner-mark prefixes, colon-delimited
// key/value lines, pipe tables), validates the extracted values, and
// aggregates records and structured errors across a batch.
//
// This package contains domain types, the extraction pipeline, and
// collaborator interfaces. Implementations of the interfaces live in
// subdirectories named after their primary dependency (e.g., sqlite/,
// excelize/, docx/).
package docxconv
