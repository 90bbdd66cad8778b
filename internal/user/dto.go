// AngelaMos | 2026
// dto.go

package user

import (
	"time"

	"github.com/carterperez-dev/templates/pos-backend/internal/core"
	"github.com/carterperez-dev/templates/pos-backend/internal/query"
)

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type UserListResponse struct {
	Users      []UserResponse  `json:"users"`
	Pagination core.Pagination `json:"pagination"`
}

// ListSchema is the set of query fields accepted by the admin user listing.
var ListSchema = query.Schema{
	Sorts: map[string]string{
		"name":      "name",
		"email":     "email",
		"createdAt": "created_at",
	},
	Filters: map[string]string{
		"role": "role",
	},
	Search:           []string{"name", "email"},
	DefaultSort:      "createdAt",
	DefaultDirection: query.Desc,
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, ToUserResponse(&users[i]))
	}
	return responses
}
