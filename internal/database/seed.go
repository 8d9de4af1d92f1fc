package database

import (
	"fmt"

	"github.com/buwaneka1/shop-mapper/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed populates demo territories, lorries and accounts. It is idempotent:
// existing rows (matched by unique name/username) are left alone, so it is
// safe to run on every startup when database.seed is enabled.
func Seed(db *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	territories := map[string]*models.Territory{}
	for _, name := range []string{"Habaraduwa", "Galle"} {
		t := &models.Territory{Name: name}
		if err := db.Where(models.Territory{Name: name}).FirstOrCreate(t).Error; err != nil {
			return fmt.Errorf("seed territory %s: %w", name, err)
		}
		territories[name] = t
	}

	lorrySpecs := []struct {
		name      string
		territory string
	}{
		{"Lorry 1", "Habaraduwa"},
		{"Lorry 2", "Habaraduwa"},
		{"Lorry 3", "Habaraduwa"},
		{"Lorry 4", "Galle"},
		{"Lorry 5", "Galle"},
	}
	lorries := make([]*models.Lorry, 0, len(lorrySpecs))
	for _, s := range lorrySpecs {
		l := &models.Lorry{Name: s.name, TerritoryID: territories[s.territory].ID}
		if err := db.Where(models.Lorry{Name: s.name, TerritoryID: l.TerritoryID}).
			FirstOrCreate(l).Error; err != nil {
			return fmt.Errorf("seed lorry %s: %w", s.name, err)
		}
		lorries = append(lorries, l)
	}

	seedUser := func(username string, role models.Role, lorryID *uint) error {
		u := &models.User{
			Username:     username,
			PasswordHash: string(hash),
			Role:         role,
			LorryID:      lorryID,
		}
		if err := db.Where(models.User{Username: username}).FirstOrCreate(u).Error; err != nil {
			return fmt.Errorf("seed user %s: %w", username, err)
		}
		return nil
	}

	if err := seedUser("admin", models.RoleAdmin, nil); err != nil {
		return err
	}
	if err := seedUser("viewer", models.RoleViewer, nil); err != nil {
		return err
	}
	for i, l := range lorries {
		if err := seedUser(fmt.Sprintf("rep%d", i+1), models.RoleRep, &l.ID); err != nil {
			return err
		}
	}

	return nil
}
