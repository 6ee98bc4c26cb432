// Package dataprocessing loads the three SAP export tables (sales, payments,
// stock) and turns them into clean, typed records.
//
// # Architecture
//
// The package is organized into three main components:
//
// 1. Loader: reads the .xlsx inputs and resolves columns by header name
// 2. Schema validation: checks each table for its required columns
// 3. Cleaner: coerces types, drops rows with null keys, parses dates null-tolerantly
//
// # Data Flow
//
// The typical data flow through this package:
//
//	Excel Files → Loader → raw rows → Cleaner → domain records → Dataset
//
// Loading is all-or-nothing: a missing file or invalid schema fails the whole
// load, and no partial dataset is returned. Cleaning never fails; unparseable
// numbers become 0 and unparseable dates become nil.
//
// # Error Handling
//
//   - Missing input files surface as *errors.NotFoundError naming every
//     missing file
//   - Missing required columns surface as *errors.SchemaError naming the
//     table and columns
//   - Unreadable workbooks surface as parsing errors
//
// The analytics helpers aggregate cleaned records for presentation (sales by
// product and channel, payments by month, stock status buckets).
package dataprocessing
