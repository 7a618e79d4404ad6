package storage

import (
	"fmt"

	"github.com/levenlabs/go-lflag"
)

// Configured sets up the Database based on flags.
func Configured() Database {
	dbPath := lflag.String("db-path", "sunplan.db", "Path to the sqlite database file")

	var p struct{ Database }

	lflag.Do(func() {
		s, err := OpenSQLite(*dbPath)
		if err != nil {
			panic(fmt.Sprintf("sqlite init failed: %v", err))
		}
		p.Database = s
	})

	return &p
}
