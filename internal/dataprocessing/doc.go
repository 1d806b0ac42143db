// Package dataprocessing implements the satisfaction analytics pipeline.
// It consolidates upload parsing, dataset merging, view filtering, and
// aggregation into a cohesive package that handles the complete data
// lifecycle from file ingestion to derived risk profiles.
//
// # Architecture
//
// The package is organized into four main components:
//
// 1. Parser: reads CSV/Excel uploads into tables and coerces them into typed records
// 2. Merge: combines the baseline dataset with uploads, deduplicating by date
// 3. Filter: applies date-range and categorical filters to produce display views
// 4. Analytics: derives period summaries, classifications, and risk profiles
//
// # Data Flow
//
//	Upload → Parser → Table → typed records → Merge → Filter → Analytics → views
//
// The whole pipeline recomputes from the current base+uploads state on
// every read; at the data volumes involved (hundreds of rows) this is the
// simplest correct design and no caching layer is warranted.
//
// # Error Handling
//
// Parse failures are isolated per file and per row: a malformed date
// becomes a dropped row with a warning, an unreadable file is rejected on
// its own while the rest of the batch still processes. Nothing in this
// package terminates the process.
package dataprocessing
