package services

import (
	"github.com/miniblog-app/miniblog/pkg/internal/database"
	"github.com/rs/zerolog/log"
)

// DoAutoDatabaseCleanup sweeps association rows whose post or category
// vanished. Transactions keep these from appearing in the first place,
// so an affected count above zero is worth looking at.
func DoAutoDatabaseCleanup() {
	log.Debug().Msg("Now cleaning up entire database...")

	var count int64
	for _, sql := range []string{
		"DELETE FROM post_categories WHERE post_id NOT IN (SELECT id FROM posts)",
		"DELETE FROM post_categories WHERE category_id NOT IN (SELECT id FROM categories)",
	} {
		if tx := database.C.Exec(sql); tx.Error != nil {
			log.Error().Err(tx.Error).Msg("An error occurred when running database cleanup...")
		} else {
			count += tx.RowsAffected
		}
	}

	log.Debug().Int64("affected", count).Msg("Done cleaning up entire database.")
}
