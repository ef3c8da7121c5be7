package models

import (
	"fmt"
	"time"
)

// Role is a user's marketplace role. "both" means the user buys and sells.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleBoth   Role = "both"
	RoleAdmin  Role = "admin"
)

// ParseRole rejects anything outside the closed role set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleBuyer, RoleSeller, RoleBoth, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("invalid role %q", s)
}

// CanSell reports whether the role is allowed to act as a seller.
func (r Role) CanSell() bool {
	return r == RoleSeller || r == RoleBoth
}

// SellerStatus is the availability/verification status shown on a seller
// profile. "verified" is set by an admin only.
type SellerStatus string

const (
	StatusActive      SellerStatus = "active"
	StatusBusy        SellerStatus = "busy"
	StatusUnavailable SellerStatus = "unavailable"
	StatusVerified    SellerStatus = "verified"
)

func ParseSellerStatus(s string) (SellerStatus, error) {
	switch SellerStatus(s) {
	case StatusActive, StatusBusy, StatusUnavailable, StatusVerified:
		return SellerStatus(s), nil
	}
	return "", fmt.Errorf("invalid status %q", s)
}

type User struct {
	ID            int64        `json:"id"`
	Username      string       `json:"username"`
	Email         string       `json:"email"`
	Password      string       `json:"-"` // bcrypt hash, never returned
	Name          string       `json:"name"`
	Role          Role         `json:"role"`
	Status        SellerStatus `json:"status"`
	StatusMessage string       `json:"status_message,omitempty"`
	Avatar        string       `json:"avatar,omitempty"`
	Location      string       `json:"location,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

// IsVerifiedSeller reports whether the user may list projects and pitch
// buyers: a seller-capable role that an admin has verified.
func (u User) IsVerifiedSeller() bool {
	return u.Role.CanSell() && u.Status == StatusVerified
}
