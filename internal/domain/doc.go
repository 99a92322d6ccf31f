// Package domain contains the core entities of the revision backend: the
// class/subject/chapter catalog, generated study items, per-user quota
// records, progress and attempt history. It has no knowledge of storage or
// transport.
package domain
