package seed

import (
	"fmt"
	"log"

	"accessdesk/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeder populates the database with demo data for local development.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder with default options.
func NewSeeder(db *gorm.DB) *Seeder {
	return NewSeederWithOptions(db, Options{})
}

// NewSeederWithOptions creates a Seeder with explicit factory options.
func NewSeederWithOptions(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, opts)}
}

// ClearAll removes all seedable data. Order matters for foreign keys.
func (s *Seeder) ClearAll() error {
	tables := []string{"access_requests", "softwares", "users"}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	log.Println("✓ Existing data cleared")
	return nil
}

// wellKnownAccounts are the fixed logins for manual testing. One per role.
var wellKnownAccounts = []struct {
	firstName string
	lastName  string
	email     string
	role      models.Role
}{
	{"Alice", "Adminton", "admin@accessdesk.local", models.RoleAdmin},
	{"Martin", "Overman", "manager@accessdesk.local", models.RoleManager},
	{"Eve", "Plover", "employee@accessdesk.local", models.RoleEmployee},
}

// SeedWellKnownUsers creates one predictable account per role so the API can
// be exercised manually right after seeding.
func (s *Seeder) SeedWellKnownUsers() ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}

	users := make([]models.User, 0, len(wellKnownAccounts))
	for _, account := range wellKnownAccounts {
		user := models.User{
			FirstName: account.firstName,
			LastName:  account.lastName,
			Email:     account.email,
			Password:  string(hashed),
			Role:      account.role,
		}
		if err := s.db.Where("email = ?", account.email).FirstOrCreate(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to seed %s: %w", account.email, err)
		}
		users = append(users, user)
	}
	log.Printf("✓ %d well-known accounts available", len(users))
	return users, nil
}

// SeedEmployees creates n generated employee accounts.
func (s *Seeder) SeedEmployees(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	log.Printf("✓ %d employee accounts created", len(users))
	return users, nil
}

// SeedCatalog creates n software entries, deactivating roughly one in five so
// inactive filtering is visible in dev.
func (s *Seeder) SeedCatalog(n int) ([]*models.Software, error) {
	entries := make([]*models.Software, 0, n)
	for i := 0; i < n; i++ {
		inactive := i%5 == 4
		software, err := s.factory.CreateSoftware(func(sw *models.Software) {
			if inactive {
				sw.IsActive = false
			}
		})
		if err != nil {
			return nil, err
		}
		entries = append(entries, software)
	}
	log.Printf("✓ %d catalog entries created", len(entries))
	return entries, nil
}

// SeedRequestHistory creates a mix of pending, approved, and rejected
// requests across the given users and catalog, decided by the given manager.
func (s *Seeder) SeedRequestHistory(users []*models.User, catalog []*models.Software, manager *models.User, perUser int) (int, error) {
	if len(catalog) == 0 {
		return 0, fmt.Errorf("cannot seed requests without catalog entries")
	}

	created := 0
	for _, user := range users {
		for i := 0; i < perUser; i++ {
			software := catalog[created%len(catalog)]
			outcome := created % 3
			_, err := s.factory.CreateAccessRequest(user, software, func(r *models.AccessRequest) {
				switch outcome {
				case 1:
					r.Status = models.RequestStatusApproved
					r.DecidedByUserID = &manager.ID
				case 2:
					r.Status = models.RequestStatusRejected
					r.RejectionReason = "Not required for the current role"
					r.DecidedByUserID = &manager.ID
				}
			})
			if err != nil {
				return created, err
			}
			created++
		}
	}
	log.Printf("✓ %d access requests created", created)
	return created, nil
}

// Seed runs the full demo preset: well-known accounts, generated employees, a
// catalog, and request histories in every status.
func (s *Seeder) Seed(numEmployees, numSoftware, requestsPerUser int) error {
	wellKnown, err := s.SeedWellKnownUsers()
	if err != nil {
		return err
	}

	var manager models.User
	for _, u := range wellKnown {
		if u.Role == models.RoleManager {
			manager = u
		}
	}

	employees, err := s.SeedEmployees(numEmployees)
	if err != nil {
		return err
	}

	catalog, err := s.SeedCatalog(numSoftware)
	if err != nil {
		return err
	}

	if _, err := s.SeedRequestHistory(employees, catalog, &manager, requestsPerUser); err != nil {
		return err
	}

	return nil
}
