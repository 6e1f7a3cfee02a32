package models

import "time"

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleStaff   UserRole = "staff"
	RoleViewer  UserRole = "viewer"
)

// Urutan hak akses eksplisit: admin > manager > staff > viewer.
// Peran yang tidak dikenal dapat level 0 sehingga tidak lolos gerbang mana pun.
var roleLevel = map[UserRole]int{
	RoleAdmin:   4,
	RoleManager: 3,
	RoleStaff:   2,
	RoleViewer:  1,
}

// HasAtLeast cek apakah role punya hak minimal setara min.
func (r UserRole) HasAtLeast(min UserRole) bool {
	return roleLevel[r] >= roleLevel[min]
}

type User struct {
	ID           uint     `gorm:"primaryKey"`
	Username     string   `gorm:"size:64;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null;default:viewer"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Grants []PropertyGrant
}

func (u *User) IsAdmin() bool   { return u.Role == RoleAdmin }
func (u *User) IsManager() bool { return u.Role.HasAtLeast(RoleManager) }
func (u *User) IsStaff() bool   { return u.Role.HasAtLeast(RoleStaff) }
func (u *User) IsViewer() bool  { return u.Role == RoleViewer }
