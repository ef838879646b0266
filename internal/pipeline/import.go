package pipeline

import (
	"fmt"

	"github.com/TobiSchelling/billtally/internal/database"
	"github.com/TobiSchelling/billtally/internal/tabulate"
)

// Import loads the CSV tables at paths and replaces the snapshot contents
// with them. The snapshot is untouched if any table fails to load.
func Import(paths tabulate.Paths, db *database.DB, log tabulate.Logger) (tabulate.Tables, error) {
	if log == nil {
		log = tabulate.Discard
	}
	log.Info("Preparing data.")
	tables, err := tabulate.LoadFiles(paths)
	if err != nil {
		log.Critical("Error preparing data: " + err.Error())
		return tabulate.Tables{}, err
	}

	if err := db.ReplaceTables(tables, paths); err != nil {
		return tabulate.Tables{}, fmt.Errorf("writing snapshot: %w", err)
	}
	log.Info(fmt.Sprintf("Imported %s into %s.", tables, db.Path()))
	return tables, nil
}
