package database

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"

	"github.com/jask/salesboard/internal/database/repository"
	"github.com/jask/salesboard/internal/snapshot"
)

// CategoryID is the stable id of a merchant category name.
func CategoryID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("cat:"+name)).String()
}

// SeedDefaults ensures the merchant category icon table is populated for new
// databases. It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	catRepo := repository.NewCategoryRepo(db)
	existing, err := catRepo.List(ctx)
	if err == nil && len(existing) > 0 {
		return nil
	}
	icons := snapshot.DefaultIcons()
	names := make([]string, 0, len(icons))
	for name := range icons {
		names = append(names, name)
	}
	sort.Strings(names)
	return WithTx(ctx, db, func(tx *sql.Tx) error {
		txRepo := repository.NewCategoryRepo(tx)
		for idx, name := range names {
			cat := repository.Category{ID: CategoryID(name), Name: name, Icon: icons[name], SortOrder: idx}
			if err := txRepo.Upsert(ctx, cat); err != nil {
				return err
			}
		}
		return nil
	})
}
