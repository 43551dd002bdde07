// Package core provides the CRM ingestion and analytics pipeline.
//
// The package turns raw CRM exports into the typed records and aggregate
// mappings a dashboard renders. It has no UI, network or database
// dependencies and can be used by web handlers, the CLI, or tests.
//
// # Pipeline
//
// Data flows in one direction:
//
//  1. [DecodeText] strips a BOM and rejects non-UTF-8 content
//  2. [Tokenize] splits lines, detects the delimiter (tab or comma) and
//     drops rows whose field count differs from the header
//  3. [NormalizeContacts] and [NormalizeDeals] map header aliases to typed
//     fields; [BuildAccounts] groups contacts by company and folds in deals
//  4. [Aggregate] computes owner, lifecycle, job title, engagement and
//     lead-intent mappings in a single pass
//
// [Analyze] runs all four steps. It is deterministic and keeps no state
// between calls: the caller holds the resulting [Dataset].
//
// # Data Sources
//
// A [Source] yields a Dataset. [CSVSource] wraps uploaded bytes and
// [DemoSource] serves a built-in sample export. Callers choose a source
// explicitly.
//
// # Column Inspection
//
// [InspectHeaders] and [InspectExport] report which header columns feed which
// fields, using the same alias rules as the normalizer.
//
// # Error Handling
//
// Malformed rows, empty files and undecodable content never fail the
// pipeline. They produce fewer records and, for malformed rows, a
// [FailedRow] entry. Technical errors raised around the pipeline (uploads,
// storage) are mapped to user-facing messages with [MapError].
package core
