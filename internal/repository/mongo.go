package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/mmeshcher/rescue-animals-system/internal/model"
)

const connectTimeout = 3 * time.Second

// MongoStorage предоставляет доступ к документному хранилищу MongoDB.
// Одно значение обслуживает и коллекцию животных, и коллекцию пользователей.
type MongoStorage struct {
	client  *mongo.Client
	animals *mongo.Collection
	users   *mongo.Collection
}

// Connect устанавливает соединение с MongoDB, выбирает коллекции и
// создаёт уникальный индекс по имени пользователя. Недоступность
// хранилища в пределах таймаута возвращается как ошибка: на старте она
// фатальна и не ретраится.
func Connect(ctx context.Context, uri, database, animalCollection, userCollection string) (*MongoStorage, error) {
	client, err := mongo.Connect(options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(connectTimeout))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := client.Database(database)
	s := &MongoStorage{
		client:  client,
		animals: db.Collection(animalCollection),
		users:   db.Collection(userCollection),
	}

	_, err = s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create username index: %w", err)
	}

	return s, nil
}

// Close разрывает соединение с хранилищем.
func (s *MongoStorage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

type userDocument struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Username     string        `bson:"username"`
	Password     []byte        `bson:"password"`
	Role         string        `bson:"role"`
	IsFirstLogin bool          `bson:"is_first_login"`
}

// CreateUser сохраняет учётную запись. Нарушение уникального индекса по
// имени пользователя нормализуется в ErrUserExists.
func (s *MongoStorage) CreateUser(ctx context.Context, user model.User) error {
	doc := userDocument{
		Username:     user.Username,
		Password:     user.PasswordHash,
		Role:         string(user.Role),
		IsFirstLogin: user.IsFirstLogin,
	}

	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", ErrUserExists, user.Username)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetUserByUsername возвращает учётную запись по имени пользователя.
func (s *MongoStorage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var doc userDocument
	err := s.users.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &model.User{
		ID:           doc.ID.Hex(),
		Username:     doc.Username,
		PasswordHash: doc.Password,
		Role:         model.Role(doc.Role),
		IsFirstLogin: doc.IsFirstLogin,
	}, nil
}

// UpdatePassword заменяет хеш пароля и выставляет признак первого входа.
func (s *MongoStorage) UpdatePassword(ctx context.Context, username string, passwordHash []byte, firstLogin bool) error {
	res, err := s.users.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{"$set": bson.M{"password": passwordHash, "is_first_login": firstLogin}},
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// CountUsers возвращает количество учётных записей.
func (s *MongoStorage) CountUsers(ctx context.Context) (int64, error) {
	n, err := s.users.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// InsertAnimal сохраняет запись животного и возвращает сгенерированный
// хранилищем идентификатор в строковой форме.
func (s *MongoStorage) InsertAnimal(ctx context.Context, rec model.Record) (string, error) {
	res, err := s.animals.InsertOne(ctx, bson.M(rec))
	if err != nil {
		return "", fmt.Errorf("insert animal: %w", err)
	}

	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert animal: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// FindAnimals возвращает записи, удовлетворяющие фильтру равенства.
// Пустой фильтр означает полную выборку.
func (s *MongoStorage) FindAnimals(ctx context.Context, filter model.Record) ([]model.Record, error) {
	query := bson.M{}
	for k, v := range filter {
		if k == "_id" {
			oid, err := normalizeID(v)
			if err != nil {
				return nil, err
			}
			query[k] = oid
			continue
		}
		query[k] = v
	}

	cur, err := s.animals.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("find animals: %w", err)
	}

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode animals: %w", err)
	}

	out := make([]model.Record, 0, len(docs))
	for _, d := range docs {
		rec := model.Record(d)
		if oid, ok := d["_id"].(bson.ObjectID); ok {
			rec["_id"] = oid.Hex()
		}
		out = append(out, rec)
	}
	return out, nil
}

// UpdateAnimal выполняет частичное обновление записи по идентификатору.
// Возвращает ErrAnimalNotFound, если документ не найден, и ErrNoChange,
// если документ найден, но значения полей не изменились.
func (s *MongoStorage) UpdateAnimal(ctx context.Context, id string, fields model.Record) error {
	oid, err := normalizeID(id)
	if err != nil {
		return err
	}

	res, err := s.animals.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M(fields)})
	if err != nil {
		return fmt.Errorf("update animal: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrAnimalNotFound
	}
	if res.ModifiedCount == 0 {
		return ErrNoChange
	}
	return nil
}

// DeleteAnimal удаляет запись по идентификатору. Успех — ровно один
// удалённый документ.
func (s *MongoStorage) DeleteAnimal(ctx context.Context, id string) error {
	oid, err := normalizeID(id)
	if err != nil {
		return err
	}

	res, err := s.animals.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete animal: %w", err)
	}
	if res.DeletedCount != 1 {
		return ErrAnimalNotFound
	}
	return nil
}

// normalizeID принимает идентификатор в родном или строковом виде.
// Некорректная строка трактуется как отсутствующая запись: такой
// идентификатор хранилище сгенерировать не могло.
func normalizeID(v any) (bson.ObjectID, error) {
	switch id := v.(type) {
	case bson.ObjectID:
		return id, nil
	case string:
		oid, err := bson.ObjectIDFromHex(id)
		if err != nil {
			return bson.ObjectID{}, fmt.Errorf("%w: bad id %q", ErrAnimalNotFound, id)
		}
		return oid, nil
	default:
		return bson.ObjectID{}, fmt.Errorf("%w: unsupported id type %T", ErrAnimalNotFound, v)
	}
}
