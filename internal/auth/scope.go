package auth

import (
	"github.com/buwaneka1/shop-mapper/internal/models"
	"github.com/buwaneka1/shop-mapper/internal/session"

	"gorm.io/gorm"
)

// LorryFilter is the visibility filter derived from a session. Lorries are
// always pinned to the session territory; a REP with a bound lorry is
// additionally pinned to that single lorry. ADMIN and VIEWER see every
// lorry in the territory.
type LorryFilter struct {
	TerritoryID uint
	LorryID     *uint
}

// LorryScope derives the filter from claims. Pure; no database involved.
func LorryScope(claims *session.Claims) LorryFilter {
	f := LorryFilter{TerritoryID: claims.TerritoryID}
	if claims.User.Role == models.RoleRep && claims.User.LorryID != nil {
		f.LorryID = claims.User.LorryID
	}
	return f
}

// Apply narrows a lorry query to the filter.
func (f LorryFilter) Apply(q *gorm.DB) *gorm.DB {
	q = q.Where("territory_id = ?", f.TerritoryID)
	if f.LorryID != nil {
		q = q.Where("id = ?", *f.LorryID)
	}
	return q
}

// ScopedLorries returns the lorries visible to the session, with their
// routes preloaded.
func ScopedLorries(db *gorm.DB, claims *session.Claims) ([]models.Lorry, error) {
	var lorries []models.Lorry
	err := LorryScope(claims).Apply(db.Preload("Routes")).Find(&lorries).Error
	if err != nil {
		return nil, err
	}
	return lorries, nil
}

// ScopedShops returns shops reachable through the given lorries. Shop
// visibility is transitive (shop -> route -> lorry); there is no shop-level
// territory column to check.
func ScopedShops(db *gorm.DB, lorries []models.Lorry) ([]models.Shop, error) {
	if len(lorries) == 0 {
		return nil, nil
	}
	ids := make([]uint, 0, len(lorries))
	for _, l := range lorries {
		ids = append(ids, l.ID)
	}

	routeIDs := db.Model(&models.Route{}).Select("id").Where("lorry_id IN ?", ids)

	var shops []models.Shop
	if err := db.Where("route_id IN (?)", routeIDs).Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}
