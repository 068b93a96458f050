// Package migrations embeds the SQL schema for homesim's state database.
//
// The files are compiled into the binary so the database can be created
// without the SQL present on disk.
package migrations

import "embed"

// FS holds every migration file at its root.
//
//go:embed *.sql
var FS embed.FS

// Dir is the directory within FS that holds the migrations.
const Dir = "."
