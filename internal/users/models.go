package users

import (
	"encoding/xml"
	"time"

	"github.com/google/uuid"
)

// User represents a stored user record. The ID is immutable once assigned.
type User struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateUserRequest is the wire shape for creating a user. There is no
// identifier field on purpose: the store assigns one.
type CreateUserRequest struct {
	XMLName   xml.Name `json:"-" xml:"user"`
	FirstName string   `json:"firstName" xml:"firstName" validate:"required"`
	LastName  string   `json:"lastName" xml:"lastName" validate:"required"`
}

// UpdateUserRequest is the wire shape for a full replace and the intermediate
// shape patch operations are applied against.
type UpdateUserRequest struct {
	XMLName   xml.Name `json:"-" xml:"user"`
	FirstName string   `json:"firstName" xml:"firstName" validate:"required"`
	LastName  string   `json:"lastName" xml:"lastName" validate:"required,min=2"`
}

// UserResponse is the read shape. DisplayName is derived at read time and
// never persisted.
type UserResponse struct {
	XMLName     xml.Name  `json:"-" xml:"user"`
	ID          uuid.UUID `json:"id" xml:"id"`
	FirstName   string    `json:"firstName" xml:"firstName"`
	LastName    string    `json:"lastName" xml:"lastName"`
	DisplayName string    `json:"displayName" xml:"displayName"`
}

// UserListResponse wraps a page of users for the XML encoding, which needs a
// single document root. The JSON encoding serializes the bare slice instead.
type UserListResponse struct {
	XMLName xml.Name       `json:"-" xml:"users"`
	Users   []UserResponse `json:"users" xml:"user"`
}

// CreatedUserResponse carries the identifier assigned to a newly created user.
type CreatedUserResponse struct {
	XMLName xml.Name  `json:"-" xml:"user"`
	ID      uuid.UUID `json:"id" xml:"id"`
}

// UserPage is a bounded view over the user collection.
type UserPage struct {
	Users       []User
	TotalCount  int
	PageSize    int
	CurrentPage int
	TotalPages  int
}

func (p *UserPage) HasPrevious() bool {
	return p.CurrentPage > 1
}

func (p *UserPage) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

// Conversion helpers between the entity and its wire shapes

func CreateRequestToUser(req *CreateUserRequest) *User {
	now := time.Now().UTC()
	return &User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func UpdateRequestToUser(req *UpdateUserRequest, id uuid.UUID) *User {
	now := time.Now().UTC()
	return &User{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func UserToUpdateRequest(user *User) UpdateUserRequest {
	return UpdateUserRequest{
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

func UserToResponse(user *User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		DisplayName: user.LastName + user.FirstName,
	}
}

func UsersToResponses(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, UserToResponse(&users[i]))
	}
	return responses
}
