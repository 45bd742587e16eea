package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/noah-isme/bimbel-api/internal/mapper"
	"github.com/noah-isme/bimbel-api/internal/models"
	"github.com/noah-isme/bimbel-api/internal/repository"
)

func (s *Store) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	row := mapper.UserToRow(repository.UserDefaults(user))
	if err := s.insert(ctx, "create_user", collUsers, func(id int64) { row.ID = id }, &row); err != nil {
		return nil, err
	}
	created := mapper.UserFromRow(row)
	return &created, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	row, err := findOne[mapper.UserRow](ctx, s, "get_user", collUsers, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	return toModel(row, mapper.UserFromRow), nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	row, err := findOne[mapper.UserRow](ctx, s, "get_user_by_username", collUsers, bson.M{"username": username})
	if err != nil {
		return nil, err
	}
	return toModel(row, mapper.UserFromRow), nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := findAll[mapper.UserRow](ctx, s, "list_users", collUsers, nil, byID)
	if err != nil {
		return nil, err
	}
	return toModels(rows, mapper.UserFromRow), nil
}

func (s *Store) ListUsersByRole(ctx context.Context, role models.UserRole) ([]models.User, error) {
	rows, err := findAll[mapper.UserRow](ctx, s, "list_users_by_role", collUsers, bson.M{"role": string(role)}, byID)
	if err != nil {
		return nil, err
	}
	return toModels(rows, mapper.UserFromRow), nil
}

func (s *Store) UpdateUserPassword(ctx context.Context, id int64, hash string) (*models.User, error) {
	row, err := updateOne[mapper.UserRow](ctx, s, "update_user_password", collUsers, mapper.UserFields, id, map[string]interface{}{"password": hash})
	if err != nil {
		return nil, err
	}
	return toModel(row, mapper.UserFromRow), nil
}
