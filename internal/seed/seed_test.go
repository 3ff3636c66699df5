package seed

import (
	"testing"

	"ripple/internal/database"
	"ripple/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if migrateErr := database.Migrate(db); migrateErr != nil {
		t.Fatalf("migrate: %v", migrateErr)
	}
	return db
}

func TestSeedPopulatesAllTables(t *testing.T) {
	t.Parallel()

	db := openSeedTestDB(t)

	if err := Seed(db, Options{NumUsers: 6, NumPosts: 12, SkipBcrypt: true, MaxDays: 7}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if userCount != 6 {
		t.Fatalf("expected 6 users, got %d", userCount)
	}

	var postCount int64
	if err := db.Model(&models.Post{}).Count(&postCount).Error; err != nil {
		t.Fatalf("count posts: %v", err)
	}
	if postCount != 12 {
		t.Fatalf("expected 12 posts, got %d", postCount)
	}

	var followCount int64
	if err := db.Model(&models.Follow{}).Count(&followCount).Error; err != nil {
		t.Fatalf("count follows: %v", err)
	}
	if followCount == 0 {
		t.Fatal("expected seeded follow edges")
	}

	var selfFollows int64
	if err := db.Model(&models.Follow{}).
		Where("follower_id = followee_id").
		Count(&selfFollows).Error; err != nil {
		t.Fatalf("count self follows: %v", err)
	}
	if selfFollows != 0 {
		t.Fatalf("expected no self follows, got %d", selfFollows)
	}

	// Fixed accounts must exist for predictable local logins.
	for _, name := range []string{"alice", "bob", "test"} {
		var user models.User
		if err := db.Where("username = ?", name).First(&user).Error; err != nil {
			t.Fatalf("fixed account %q missing: %v", name, err)
		}
	}
}

func TestFactoryCreateLikeIsIdempotent(t *testing.T) {
	t.Parallel()

	db := openSeedTestDB(t)
	f := NewFactory(db, Options{SkipBcrypt: true})

	user, err := f.CreateUser()
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	post := f.BuildPost(user)
	if err := f.CreatePostsBatch([]*models.Post{post}); err != nil {
		t.Fatalf("create post: %v", err)
	}

	if err := f.CreateLike(user, post); err != nil {
		t.Fatalf("first like: %v", err)
	}
	if err := f.CreateLike(user, post); err != nil {
		t.Fatalf("second like: %v", err)
	}

	var count int64
	if err := db.Model(&models.Like{}).Count(&count).Error; err != nil {
		t.Fatalf("count likes: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 like, got %d", count)
	}
}

func TestFactoryCommentThreading(t *testing.T) {
	t.Parallel()

	db := openSeedTestDB(t)
	f := NewFactory(db, Options{SkipBcrypt: true})

	user, err := f.CreateUser()
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	post := f.BuildPost(user)
	if err := f.CreatePostsBatch([]*models.Post{post}); err != nil {
		t.Fatalf("create post: %v", err)
	}

	parent, err := f.CreateComment(user, post, nil)
	if err != nil {
		t.Fatalf("create parent comment: %v", err)
	}
	reply, err := f.CreateComment(user, post, parent)
	if err != nil {
		t.Fatalf("create reply: %v", err)
	}
	if reply.ParentCommentID == nil || *reply.ParentCommentID != parent.ID {
		t.Fatalf("expected reply to reference parent %d", parent.ID)
	}
}
