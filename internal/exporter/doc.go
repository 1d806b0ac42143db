// Package exporter provides CSV export functionality for the dashboard
// datasets.
//
// CSVWriter is the core writing layer, with header support, streaming
// and a UTF-8 BOM for Excel compatibility. On top of it sit the three
// dataset exporters: daily satisfaction scores, logged events, and the
// per-metric risk analysis. Export filenames carry the generation date
// in YYYYMMDD form.
package exporter
