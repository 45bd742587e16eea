package postgres

import (
	"context"

	"github.com/noah-isme/bimbel-api/internal/mapper"
	"github.com/noah-isme/bimbel-api/internal/models"
	"github.com/noah-isme/bimbel-api/internal/repository"
)

func (s *Store) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	var row mapper.UserRow
	if err := s.insert(ctx, "create_user", tableUsers, mapper.UserFields, mapper.UserToRow(repository.UserDefaults(user)), &row); err != nil {
		return nil, err
	}
	created := mapper.UserFromRow(row)
	return &created, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var row mapper.UserRow
	ok, err := s.getOne(ctx, "get_user", &row, selectQuery(tableUsers, mapper.UserFields, "id = $1"), id)
	if err != nil {
		return nil, err
	}
	return found(ok, row, mapper.UserFromRow), nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var row mapper.UserRow
	ok, err := s.getOne(ctx, "get_user_by_username", &row, selectQuery(tableUsers, mapper.UserFields, "username = $1"), username)
	if err != nil {
		return nil, err
	}
	return found(ok, row, mapper.UserFromRow), nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var rows []mapper.UserRow
	if err := s.selectAll(ctx, "list_users", &rows, selectQuery(tableUsers, mapper.UserFields, "")+" ORDER BY id"); err != nil {
		return nil, err
	}
	return toModels(rows, mapper.UserFromRow), nil
}

func (s *Store) ListUsersByRole(ctx context.Context, role models.UserRole) ([]models.User, error) {
	var rows []mapper.UserRow
	if err := s.selectAll(ctx, "list_users_by_role", &rows, selectQuery(tableUsers, mapper.UserFields, "role = $1")+" ORDER BY id", string(role)); err != nil {
		return nil, err
	}
	return toModels(rows, mapper.UserFromRow), nil
}

func (s *Store) UpdateUserPassword(ctx context.Context, id int64, hash string) (*models.User, error) {
	var row mapper.UserRow
	ok, err := s.update(ctx, "update_user_password", tableUsers, mapper.UserFields, id, map[string]interface{}{"password": hash}, &row)
	if err != nil {
		return nil, err
	}
	return found(ok, row, mapper.UserFromRow), nil
}
