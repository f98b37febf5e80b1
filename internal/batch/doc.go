// Package batch provides generic batch processing for large uploads.
//
// The document importer splits scanned entries into fixed-size batches and
// pushes them to the COT Studio API one request per batch, sequentially or
// with bounded concurrency. Progress is tracked thread-safely so the CLI can
// render a live progress line while batches are in flight.
package batch
