package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/quickbazaar/marketplace-core/models"
)

type IdentityStore struct {
	db *gorm.DB
}

func NewIdentityStore(db *gorm.DB) *IdentityStore {
	return &IdentityStore{db: db}
}

// CreateUser registers a new account. Usernames are unique.
func (s *IdentityStore) CreateUser(u *models.User) error {
	if u.Username == "" {
		return &models.ValidationError{Field: "username", Reason: "must not be empty"}
	}
	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", u.Username).Count(&count).Error; err != nil {
		return wrapStorage("check username", err)
	}
	if count > 0 {
		return &models.ValidationError{Field: "username", Reason: "already taken"}
	}
	if err := s.db.Create(u).Error; err != nil {
		return wrapStorage("create user", err)
	}
	return nil
}

func (s *IdentityStore) GetUser(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Groups").Preload("Permissions").First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.ReferenceError{Entity: "user", Key: id}
		}
		return nil, wrapStorage("fetch user", err)
	}
	return &user, nil
}

func (s *IdentityStore) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.ReferenceError{Entity: "user", Key: username}
		}
		return nil, wrapStorage("fetch user", err)
	}
	return &user, nil
}

type UpdateUserInput struct {
	Username     *string
	ProfileImage *string
}

// UpdateUser applies a partial profile update. Nil fields are left alone.
func (s *IdentityStore) UpdateUser(userID string, input UpdateUserInput) (*models.User, error) {
	user, err := s.fetch(userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if input.Username != nil {
		if *input.Username == "" {
			return nil, &models.ValidationError{Field: "username", Reason: "must not be empty"}
		}
		var count int64
		if err := s.db.Model(&models.User{}).
			Where("username = ? AND id <> ?", *input.Username, userID).
			Count(&count).Error; err != nil {
			return nil, wrapStorage("check username", err)
		}
		if count > 0 {
			return nil, &models.ValidationError{Field: "username", Reason: "already taken"}
		}
		updates["username"] = *input.Username
	}
	if input.ProfileImage != nil {
		updates["profile_image"] = *input.ProfileImage
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, wrapStorage("update user", err)
		}
	}
	return user, nil
}

// AssignGroup adds the user to a group, creating the group row if needed.
func (s *IdentityStore) AssignGroup(userID string, group *models.Group) error {
	user, err := s.fetch(userID)
	if err != nil {
		return err
	}
	if err := s.db.Model(user).Association("Groups").Append(group); err != nil {
		return wrapStorage("assign group", err)
	}
	return nil
}

// GrantPermission attaches a permission to the user.
func (s *IdentityStore) GrantPermission(userID string, perm *models.Permission) error {
	user, err := s.fetch(userID)
	if err != nil {
		return err
	}
	if err := s.db.Model(user).Association("Permissions").Append(perm); err != nil {
		return wrapStorage("grant permission", err)
	}
	return nil
}

// DeleteUser removes the account. Owned products, the cart, and everything
// hanging off them go with it; ledger rows where the user was the
// counter-party survive with the reference nulled.
func (s *IdentityStore) DeleteUser(userID string) error {
	user, err := s.fetch(userID)
	if err != nil {
		return err
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return wrapStorage("begin delete user", tx.Error)
	}
	if err := tx.Model(user).Association("Groups").Clear(); err != nil {
		tx.Rollback()
		return wrapStorage("clear groups", err)
	}
	if err := tx.Model(user).Association("Permissions").Clear(); err != nil {
		tx.Rollback()
		return wrapStorage("clear permissions", err)
	}
	if err := tx.Delete(user).Error; err != nil {
		tx.Rollback()
		return wrapStorage("delete user", err)
	}
	if err := tx.Commit().Error; err != nil {
		return wrapStorage("commit delete user", err)
	}
	return nil
}

func (s *IdentityStore) fetch(userID string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.ReferenceError{Entity: "user", Key: userID}
		}
		return nil, wrapStorage("fetch user", err)
	}
	return &user, nil
}
