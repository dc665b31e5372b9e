package handler

import (
	"github.com/taskhub/users-api/internal/core/domain"
	"github.com/taskhub/users-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateUserInput(req createUserRequest) ports.CreateUserInput {
	return ports.CreateUserInput{
		Name:     req.Name,
		Age:      req.Age,
		Username: req.Username,
		Password: req.Password,
		CPF:      req.CPF,
	}
}

func toUpdateUserInput(req updateUserRequest) ports.UpdateUserInput {
	return ports.UpdateUserInput{
		Name:     req.Name,
		Age:      req.Age,
		Username: req.Username,
		Password: req.Password,
		CPF:      req.CPF,
	}
}

func toListUsersInput(q listUsersQuery) ports.ListUsersInput {
	return ports.ListUsersInput{
		Skip:        q.Skip,
		Limit:       q.Limit,
		Filter:      q.Filter,
		FilterValue: q.FilterValue,
	}
}

func toTaskInput(req taskRequest) ports.TaskInput {
	return ports.TaskInput{Name: req.Name, Description: req.Description}
}

// --- Domain → Response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Age:       u.Age,
		Username:  u.Username,
		CPF:       u.CPF,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTaskResponses(tasks []*domain.Task) []taskResponse {
	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	return out
}
