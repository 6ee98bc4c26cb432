// Package services contains the session-level facade behind the presentation
// boundary. The AnalysisService owns a loaded dataset and exposes the four
// core operations (load, filter, compute KPIs, build report) to whatever
// front end drives the analysis: HTTP handlers, the CLI, or tests.
package services
