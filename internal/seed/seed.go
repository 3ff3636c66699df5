package seed

import (
	"fmt"
	"log"

	"ripple/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	SkipBcrypt  bool
	MaxDays     int
}

// Seed populates the database with test data: users, a follow mesh, posts,
// likes and comment threads.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	f := NewFactory(db, opts)

	users, err := createUsers(f, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	if err := createFollowMesh(f, users); err != nil {
		return fmt.Errorf("failed to create follow mesh: %w", err)
	}
	log.Println("✓ follow mesh created")

	posts, err := createPosts(f, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	if err := createEngagement(f, users, posts); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}
	log.Println("✓ likes and comments created")

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE comments, likes, follows, posts, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(f *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Always include a few fixed accounts so logins stay predictable
	// across reseeds.
	if count >= 3 {
		for _, name := range []string{"alice", "bob", "test"} {
			name := name
			user, err := f.CreateUser(func(u *models.User) {
				u.Username = name
				u.Email = fmt.Sprintf("%s@example.com", name)
			})
			if err == nil {
				users = append(users, user)
			}
		}
	}

	for i := len(users); i < count; i++ {
		user, err := f.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, user)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

// createFollowMesh gives each user a handful of followees so feeds have
// content from day one.
func createFollowMesh(f *Factory, users []*models.User) error {
	if len(users) < 2 {
		return nil
	}
	for _, follower := range users {
		edges := f.rand.Intn(6) + 2
		for i := 0; i < edges; i++ {
			followee := users[f.rand.Intn(len(users))]
			if err := f.CreateFollow(follower, followee); err != nil {
				return err
			}
		}
	}
	return nil
}

func createPosts(f *Factory, users []*models.User, count int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		user := users[f.rand.Intn(len(users))]
		posts = append(posts, f.BuildPost(user))
	}

	// Insert in chunks to keep statement sizes reasonable.
	const chunk = 200
	for start := 0; start < len(posts); start += chunk {
		end := start + chunk
		if end > len(posts) {
			end = len(posts)
		}
		batch := posts[start:end]
		if err := f.CreatePostsBatch(batch); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// createEngagement sprinkles likes and short comment threads over the posts.
func createEngagement(f *Factory, users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		likes := f.rand.Intn(len(users)/2 + 1)
		for i := 0; i < likes; i++ {
			user := users[f.rand.Intn(len(users))]
			if err := f.CreateLike(user, post); err != nil {
				return err
			}
		}

		if !post.CommentsEnabled {
			continue
		}
		comments := f.rand.Intn(4)
		var parent *models.Comment
		for i := 0; i < comments; i++ {
			user := users[f.rand.Intn(len(users))]
			// Roughly a third of comments reply to the previous one.
			var reply *models.Comment
			if parent != nil && f.rand.Float32() < 0.3 {
				reply = parent
			}
			comment, err := f.CreateComment(user, post, reply)
			if err != nil {
				return err
			}
			parent = comment
		}
	}
	return nil
}
