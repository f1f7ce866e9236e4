package identity

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"github.com/propmanager/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 10

const (
	maxNameLength  = 100
	maxPhoneLength = 50
)

// User is an account that can sign in: either an admin or a tenant
type User struct {
	shared.BaseEntity
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	Role         Role
	LastLoginAt  *time.Time
}

// NewUser creates a user with a hashed password.
// The password must satisfy the strength rules.
func NewUser(email, password, firstName, lastName string, role Role) (*User, error) {
	u := &User{
		BaseEntity: shared.NewBaseEntity(),
		Role:       role,
	}
	if !role.IsValid() {
		return nil, shared.InvalidInput("Role must be admin or tenant")
	}
	if err := u.SetEmail(email); err != nil {
		return nil, err
	}
	if err := u.SetName(firstName, lastName); err != nil {
		return nil, err
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// FullName returns "first last"
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsAdmin returns true for admin accounts
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsTenant returns true for tenant accounts
func (u *User) IsTenant() bool {
	return u.Role == RoleTenant
}

// SetEmail validates and stores a normalized email address
func (u *User) SetEmail(email string) error {
	email = shared.NormalizeEmail(email)
	if email == "" {
		return shared.InvalidInput("email is required")
	}
	if !shared.ValidateEmail(email) {
		return shared.InvalidInput("Invalid email format")
	}
	u.Email = email
	u.Touch()
	return nil
}

// SetName sets first and last name; both are required
func (u *User) SetName(firstName, lastName string) error {
	firstName = shared.SanitizeString(firstName)
	lastName = shared.SanitizeString(lastName)
	if problems := shared.ValidateRequired(
		shared.Field{Name: "firstName", Value: firstName},
		shared.Field{Name: "lastName", Value: lastName},
	); len(problems) > 0 {
		return shared.InvalidInput(strings.Join(problems, "; "))
	}
	if len(firstName) > maxNameLength || len(lastName) > maxNameLength {
		return shared.InvalidInput("Names cannot exceed 100 characters")
	}
	u.FirstName = firstName
	u.LastName = lastName
	u.Touch()
	return nil
}

// SetPhone sets the user's phone number
func (u *User) SetPhone(phone string) error {
	phone = shared.SanitizeString(phone)
	if len(phone) > maxPhoneLength {
		return shared.InvalidInput("Phone cannot exceed 50 characters")
	}
	u.Phone = phone
	u.Touch()
	return nil
}

// SetPassword replaces the password hash after checking strength
func (u *User) SetPassword(password string) error {
	if problems := ValidatePasswordStrength(password); problems != nil {
		return problems
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.WrapDomainError("PASSWORD_HASH_ERROR", "Failed to hash password", err)
	}
	u.PasswordHash = string(hash)
	u.Touch()
	return nil
}

// ChangePassword verifies the current password before setting a new one
func (u *User) ChangePassword(current, next string) error {
	if !u.VerifyPassword(current) {
		return shared.InvalidInput("Current password is incorrect")
	}
	return u.SetPassword(next)
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// RecordLogin stamps the last successful login
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// ValidatePasswordStrength returns nil for an acceptable password and an
// INVALID_INPUT error listing every violated rule otherwise.
func ValidatePasswordStrength(password string) *shared.DomainError {
	problems := shared.ValidatePassword(password)
	if len(problems) == 0 {
		return nil
	}
	return shared.InvalidInput(strings.Join(problems, "; "))
}

const (
	tempPasswordLength = 16
	lowerChars         = "abcdefghijkmnopqrstuvwxyz"
	upperChars         = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	digitChars         = "23456789"
	symbolChars        = "!@#$%*?"
)

// GenerateTemporaryPassword returns a random password that always
// satisfies the strength rules.
func GenerateTemporaryPassword() (string, error) {
	all := lowerChars + upperChars + digitChars + symbolChars
	buf := make([]byte, tempPasswordLength)
	// guarantee one of each required class
	for i, set := range []string{lowerChars, upperChars, digitChars} {
		c, err := randomChar(set)
		if err != nil {
			return "", err
		}
		buf[i] = c
	}
	for i := 3; i < tempPasswordLength; i++ {
		c, err := randomChar(all)
		if err != nil {
			return "", err
		}
		buf[i] = c
	}
	// shuffle so the guaranteed classes are not always first
	for i := len(buf) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		buf[i], buf[j.Int64()] = buf[j.Int64()], buf[i]
	}
	return string(buf), nil
}

func randomChar(set string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, err
	}
	return set[n.Int64()], nil
}
