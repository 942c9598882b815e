package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/mmeshcher/rescue-animals-system/internal/model"
)

func TestMemoryStorageUserUniqueness(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	user := model.User{Username: "john", PasswordHash: []byte("hash"), Role: model.RoleUser}
	if err := s.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	err := s.CreateUser(ctx, user)
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	n, err := s.CountUsers(ctx)
	if err != nil || n != 1 {
		t.Fatalf("CountUsers = %d, %v", n, err)
	}
}

func TestMemoryStorageGetUserNotFound(t *testing.T) {
	s := NewMemoryStorage()

	_, err := s.GetUserByUsername(context.Background(), "ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestMemoryStorageUpdatePassword(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	if err := s.CreateUser(ctx, model.User{Username: "jane", PasswordHash: []byte("old"), Role: model.RoleUser, IsFirstLogin: true}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := s.UpdatePassword(ctx, "jane", []byte("new"), false); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}

	user, err := s.GetUserByUsername(ctx, "jane")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if string(user.PasswordHash) != "new" || user.IsFirstLogin {
		t.Fatalf("password not updated: %+v", user)
	}

	if err := s.UpdatePassword(ctx, "ghost", []byte("x"), false); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestMemoryStorageAnimalFilters(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	idBuddy, err := s.InsertAnimal(ctx, model.Record{"name": "Buddy", "animal_type": "Dog", "reserved": false})
	if err != nil {
		t.Fatalf("InsertAnimal: %v", err)
	}
	if _, err := s.InsertAnimal(ctx, model.Record{"name": "Zuri", "animal_type": "Monkey", "reserved": true}); err != nil {
		t.Fatalf("InsertAnimal: %v", err)
	}

	all, err := s.FindAnimals(ctx, nil)
	if err != nil || len(all) != 2 {
		t.Fatalf("full scan = %d records, %v", len(all), err)
	}
	if all[0]["name"] != "Buddy" {
		t.Fatalf("insertion order not preserved: %v", all[0]["name"])
	}

	byName, err := s.FindAnimals(ctx, model.Record{"name": "Buddy"})
	if err != nil || len(byName) != 1 {
		t.Fatalf("filter by name = %d records, %v", len(byName), err)
	}
	if byName[0]["_id"] != idBuddy {
		t.Fatalf("_id = %v, want %s", byName[0]["_id"], idBuddy)
	}

	byID, err := s.FindAnimals(ctx, model.Record{"_id": idBuddy})
	if err != nil || len(byID) != 1 {
		t.Fatalf("filter by id = %d records, %v", len(byID), err)
	}
}

func TestMemoryStorageUpdateDistinguishesNoChange(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	id, err := s.InsertAnimal(ctx, model.Record{"name": "Buddy", "reserved": false})
	if err != nil {
		t.Fatalf("InsertAnimal: %v", err)
	}

	if err := s.UpdateAnimal(ctx, id, model.Record{"reserved": true}); err != nil {
		t.Fatalf("UpdateAnimal: %v", err)
	}
	if err := s.UpdateAnimal(ctx, id, model.Record{"reserved": true}); !errors.Is(err, ErrNoChange) {
		t.Fatalf("expected ErrNoChange, got %v", err)
	}
	if err := s.UpdateAnimal(ctx, "missing", model.Record{"reserved": true}); !errors.Is(err, ErrAnimalNotFound) {
		t.Fatalf("expected ErrAnimalNotFound, got %v", err)
	}
}

func TestMemoryStorageDelete(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	id, err := s.InsertAnimal(ctx, model.Record{"name": "Buddy"})
	if err != nil {
		t.Fatalf("InsertAnimal: %v", err)
	}

	if err := s.DeleteAnimal(ctx, id); err != nil {
		t.Fatalf("DeleteAnimal: %v", err)
	}
	if err := s.DeleteAnimal(ctx, id); !errors.Is(err, ErrAnimalNotFound) {
		t.Fatalf("expected ErrAnimalNotFound, got %v", err)
	}

	recs, err := s.FindAnimals(ctx, model.Record{"_id": id})
	if err != nil || len(recs) != 0 {
		t.Fatalf("deleted animal still found: %v, %v", recs, err)
	}
}
