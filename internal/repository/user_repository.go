package repository

import "ai-site-server/internal/model"

type UserStore interface {
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	ExistsByUsernameOrEmail(username string, email string) (bool, error)
	Create(user *model.User) error
	UpdateAvatar(user *model.User, avatar string) error
}
