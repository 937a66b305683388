package itrController

import (
	"ledgerline/models"

	"gorm.io/gorm"
)

// The review workflow's authorization rules live here, keyed once on the
// actor's role instead of scattered conditionals in each handler.

// reviewScope narrows a filing query to what the actor may see.
func reviewScope(user *models.User) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch user.Role {
		case models.RoleAdmin:
			return db
		case models.RoleCA:
			return db.Where("ca_assigned_id = ?", user.ID)
		default:
			return db.Where("user_id = ?", user.ID)
		}
	}
}

// canMutate reports whether the actor may change the filing's review state.
func canMutate(user *models.User, itr *models.ITRForm) bool {
	switch user.Role {
	case models.RoleAdmin:
		return true
	case models.RoleCA:
		return itr.CaAssignedID != nil && *itr.CaAssignedID == user.ID
	default:
		return false
	}
}
