// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"accessdesk/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures the factory and seeder.
type Options struct {
	// SkipBcrypt stores a plaintext password instead of hashing. Dev-only
	// speedup for large user counts.
	SkipBcrypt bool
	// MaxDays bounds how far back generated timestamps are spread.
	MaxDays int
	// DryRun logs what would be created without writing to the database.
	DryRun bool
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rand *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:     db,
		opts:   opts,
		rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
		nextID: 1000,
	}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Email:     gofakeit.Email(),
		Role:      models.RoleEmployee,
	}

	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s %s <%s> (%s)", user.FirstName, user.LastName, user.Email, user.Role)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// CreateSoftware constructs and persists a sample catalog entry.
func (f *Factory) CreateSoftware(overrides ...func(*models.Software)) (*models.Software, error) {
	software := &models.Software{
		Name:        gofakeit.AppName(),
		Description: gofakeit.Sentence(12),
		Version:     gofakeit.AppVersion(),
		IsActive:    true,
	}

	for _, override := range overrides {
		override(software)
	}

	if f.opts.DryRun {
		f.nextID++
		software.ID = f.nextID
		log.Printf("[dry-run] CreateSoftware: %s %s", software.Name, software.Version)
		return software, nil
	}

	if err := f.db.Create(software).Error; err != nil {
		return nil, fmt.Errorf("failed to create software: %w", err)
	}
	return software, nil
}

// CreateAccessRequest constructs and persists a sample access request.
func (f *Factory) CreateAccessRequest(user *models.User, software *models.Software, overrides ...func(*models.AccessRequest)) (*models.AccessRequest, error) {
	request := &models.AccessRequest{
		UserID:     user.ID,
		SoftwareID: software.ID,
		Status:     models.RequestStatusPending,
		Reason:     gofakeit.Sentence(10),
	}
	request.CreatedAt = f.spreadTimestamp()

	for _, override := range overrides {
		override(request)
	}

	if f.opts.DryRun {
		f.nextID++
		request.ID = f.nextID
		log.Printf("[dry-run] CreateAccessRequest: user=%d software=%d status=%s", request.UserID, request.SoftwareID, request.Status)
		return request, nil
	}

	if err := f.db.Create(request).Error; err != nil {
		return nil, fmt.Errorf("failed to create access request: %w", err)
	}
	return request, nil
}

// spreadTimestamp generates a created_at spread over the configured window so
// seeded histories look realistic.
func (f *Factory) spreadTimestamp() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rand.Intn(maxDays)
	hoursBack := f.rand.Intn(24)
	minsBack := f.rand.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}
