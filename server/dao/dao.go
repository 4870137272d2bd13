// Package dao provides data access objects for use in the analysis server.
package dao

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mawais/slc/simplelang/scan"
)

// Store is the persistence layer of the server. It holds all the
// repositories and manages shared resources behind them.
type Store interface {
	Users() UserRepository
	Analyses() AnalysisRepository

	// Close releases any resources held by the store. No repository obtained
	// from the store may be used after Close is called.
	Close() error
}

type UserRepository interface {

	// Create creates a new User. All attributes except for auto-generated
	// fields are taken from the provided User.
	Create(ctx context.Context, user User) (User, error)
	GetAll(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	Update(ctx context.Context, id uuid.UUID, user User) (User, error)
	Delete(ctx context.Context, id uuid.UUID) (User, error)

	Close() error
}

type AnalysisRepository interface {

	// Create creates a new Analysis. All attributes except for auto-generated
	// fields are taken from the provided Analysis.
	Create(ctx context.Context, a Analysis) (Analysis, error)
	GetAll(ctx context.Context) ([]Analysis, error)
	GetAllByOwner(ctx context.Context, owner uuid.UUID) ([]Analysis, error)
	GetByID(ctx context.Context, id uuid.UUID) (Analysis, error)
	Update(ctx context.Context, id uuid.UUID, a Analysis) (Analysis, error)
	Delete(ctx context.Context, id uuid.UUID) (Analysis, error)

	Close() error
}

type Role int

const (
	Guest Role = iota
	Unverified
	Normal

	Admin Role = 100
)

func (r Role) String() string {
	switch r {
	case Guest:
		return "guest"
	case Unverified:
		return "unverified"
	case Normal:
		return "normal"
	case Admin:
		return "admin"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

func ParseRole(s string) (Role, error) {
	check := strings.ToLower(s)
	switch check {
	case "guest":
		return Guest, nil
	case "unverified":
		return Unverified, nil
	case "normal":
		return Normal, nil
	case "admin":
		return Admin, nil
	default:
		return Guest, fmt.Errorf("must be one of 'guest', 'unverified', 'normal', or 'admin'")
	}
}

type User struct {
	ID             uuid.UUID
	Username       string
	Password       string // base64-encoded bcrypt hash
	Email          *mail.Address
	Role           Role
	Created        time.Time
	Modified       time.Time
	LastLoginTime  time.Time
	LastLogoutTime time.Time
}

// Analysis is one saved source text along with the token sequence that was
// produced from it when it was stored.
type Analysis struct {
	ID       uuid.UUID
	Owner    uuid.UUID
	Name     string
	Source   string
	Tokens   []scan.Token
	Created  time.Time
	Modified time.Time
}
