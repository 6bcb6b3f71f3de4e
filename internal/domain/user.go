package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Validation errors for User fields. All wrap ErrValidation.
var (
	ErrEmptyUserID         = fmt.Errorf("%w: user ID cannot be empty", ErrValidation)
	ErrEmptyUserName       = fmt.Errorf("%w: user name cannot be empty", ErrValidation)
	ErrEmptyEmail          = fmt.Errorf("%w: email cannot be empty", ErrValidation)
	ErrInvalidEmail        = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrPasswordTooShort    = fmt.Errorf("%w: password must be at least 6 characters long", ErrValidation)
	ErrPasswordTooLong     = fmt.Errorf("%w: password must be at most 72 characters long", ErrValidation)
	ErrEmptyPassword       = fmt.Errorf("%w: password cannot be empty", ErrValidation)
	ErrEmptyHashedPassword = fmt.Errorf("%w: hashed password cannot be empty", ErrValidation)
)

// User represents a registered user of the application. Besides identity
// and credentials it carries PlaceIDs, the back-reference list of places
// this user created. Keeping that list consistent with the places table
// is the job of the place service, never of callers mutating it directly.
type User struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Password       string      `json:"-"` // Plaintext, only populated during signup; never stored.
	HashedPassword string      `json:"-"`
	ImagePath      string      `json:"image"`
	PlaceIDs       []uuid.UUID `json:"places"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// NewUser creates a new User with the given name, email, plaintext password
// and profile image path. It generates a new UUID and sets timestamps.
// The caller is responsible for hashing the password before storage.
// Returns an error if validation fails.
func NewUser(name, email, password, imagePath string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Password:  password,
		ImagePath: imagePath,
		PlaceIDs:  []uuid.UUID{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyUserName
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validEmail(u.Email) {
		return ErrInvalidEmail
	}

	if u.Password != "" {
		// Plaintext present: a signup or password change in flight.
		if len(u.Password) < 6 {
			return ErrPasswordTooShort
		}
		// bcrypt's practical input limit.
		if len(u.Password) > 72 {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}

// OwnsPlace reports whether the given place ID is in the user's
// back-reference list.
func (u *User) OwnsPlace(placeID uuid.UUID) bool {
	for _, id := range u.PlaceIDs {
		if id == placeID {
			return true
		}
	}
	return false
}

// validEmail performs a minimal structural check: one "@", a non-empty
// local part, and a domain containing an interior dot. Request-level
// validation applies the stricter go-playground rules; this is the last
// line of defense before storage.
func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	if strings.Contains(domain, "@") {
		return false
	}
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
