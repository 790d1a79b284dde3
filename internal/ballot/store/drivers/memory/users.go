package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
	"github.com/aussiebroadwan/ballot/internal/ballot/store"
)

type usersRepo struct {
	db db
}

func findUser(data *dataset, id int64) int {
	return slices.IndexFunc(data.users, func(u domain.User) bool { return u.ID == id })
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	var out domain.User
	err := r.db.read(func(data *dataset) error {
		i := findUser(data, id)
		if i < 0 {
			return store.ErrNotFound
		}
		out = data.users[i].Clone()
		return nil
	})
	return out, err
}

func (r *usersRepo) GetUserByName(ctx context.Context, name string) (domain.User, error) {
	name = strings.TrimSpace(name)

	var out domain.User
	err := r.db.read(func(data *dataset) error {
		if name == "" {
			return store.ErrNotFound
		}
		for _, u := range data.users {
			if strings.EqualFold(strings.TrimSpace(u.Name), name) {
				out = u.Clone()
				return nil
			}
		}
		return store.ErrNotFound
	})
	return out, err
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	err := r.db.read(func(data *dataset) error {
		out = make([]domain.User, len(data.users))
		for i, u := range data.users {
			out[i] = u.Clone()
		}
		return nil
	})
	return out, err
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	err := r.db.write(func(data *dataset) error {
		data.seq.user++
		u.ID = data.seq.user
		u.Followers, u.Following = nil, nil
		data.users = append(data.users, u.Clone())
		return nil
	})
	return u, err
}

func (r *usersRepo) AddFollow(ctx context.Context, followerID, targetID int64) error {
	return r.db.write(func(data *dataset) error {
		fi, ti := findUser(data, followerID), findUser(data, targetID)
		if fi < 0 || ti < 0 {
			return store.ErrNotFound
		}
		if slices.Contains(data.users[fi].Following, targetID) {
			return store.ErrAlreadyExists
		}
		data.users[fi].Following = append(data.users[fi].Following, targetID)
		data.users[ti].Followers = append(data.users[ti].Followers, followerID)
		return nil
	})
}

func (r *usersRepo) RemoveFollow(ctx context.Context, followerID, targetID int64) error {
	return r.db.write(func(data *dataset) error {
		fi, ti := findUser(data, followerID), findUser(data, targetID)
		if fi < 0 || ti < 0 || !slices.Contains(data.users[fi].Following, targetID) {
			return store.ErrNotFound
		}
		data.users[fi].Following = slices.DeleteFunc(data.users[fi].Following, func(id int64) bool { return id == targetID })
		data.users[ti].Followers = slices.DeleteFunc(data.users[ti].Followers, func(id int64) bool { return id == followerID })
		return nil
	})
}
