package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/streamroles/internal/api/models"
	"github.com/smazurov/streamroles/internal/roles"
)

// registerRoleRoutes registers the role and prebuffer endpoints.
func (s *Server) registerRoleRoutes() {
	// List all roles with their current state
	huma.Register(s.api, huma.Operation{
		OperationID: "list-roles",
		Method:      http.MethodGet,
		Path:        "/api/roles",
		Summary:     "List Roles",
		Description: "Get the selection, resolved stream and available choices for every stream role",
		Tags:        []string{"roles"},
		Errors:      []int{401},
		Security:    withAuth(),
	}, func(ctx context.Context, input *struct{}) (*models.RoleListResponse, error) {
		states := s.service.StateAll(ctx)
		return &models.RoleListResponse{
			Body: models.RoleListData{
				Roles: states,
				Count: len(states),
			},
		}, nil
	})

	// Get a single role
	huma.Register(s.api, huma.Operation{
		OperationID: "get-role",
		Method:      http.MethodGet,
		Path:        "/api/roles/{role}",
		Summary:     "Get Role",
		Description: "Get the selection, resolved stream and available choices for one stream role",
		Tags:        []string{"roles"},
		Errors:      []int{401, 404},
		Security:    withAuth(),
	}, func(ctx context.Context, input *struct {
		Role string `path:"role" example:"remoteStream" doc:"Role setting key"`
	}) (*models.RoleResponse, error) {
		state, err := s.service.State(ctx, roles.Role(input.Role))
		if err != nil {
			return nil, huma.Error404NotFound("Unknown role", err)
		}
		return &models.RoleResponse{Body: state}, nil
	})

	// Set a role's selection
	huma.Register(s.api, huma.Operation{
		OperationID: "set-role-selection",
		Method:      http.MethodPut,
		Path:        "/api/roles/{role}",
		Summary:     "Set Role Selection",
		Description: "Pin a role to a stream by name, or revert it to the computed default with the Default sentinel",
		Tags:        []string{"roles"},
		Errors:      []int{400, 401, 404, 500},
		Security:    withAuth(),
	}, func(ctx context.Context, input *models.RoleSelectionRequest) (*models.RoleResponse, error) {
		role := roles.Role(input.Role)
		if !roles.Valid(role) {
			return nil, huma.Error404NotFound("Unknown role")
		}

		if err := s.service.SetSelection(ctx, role, input.Body.Selection); err != nil {
			if errors.Is(err, roles.ErrUnknownStream) {
				return nil, huma.Error400BadRequest("Unknown stream name", err)
			}
			return nil, huma.Error500InternalServerError("Failed to store selection", err)
		}

		state, err := s.service.State(ctx, role)
		if err != nil {
			return nil, huma.Error500InternalServerError("Failed to read role state", err)
		}
		return &models.RoleResponse{Body: state}, nil
	})

	// Get the prebuffer set
	huma.Register(s.api, huma.Operation{
		OperationID: "get-prebuffer",
		Method:      http.MethodGet,
		Path:        "/api/prebuffer",
		Summary:     "Get Prebuffer Set",
		Description: "Get the streams currently designated for prebuffering",
		Tags:        []string{"prebuffer"},
		Errors:      []int{401},
		Security:    withAuth(),
	}, func(ctx context.Context, input *struct{}) (*models.PrebufferResponse, error) {
		return &models.PrebufferResponse{Body: s.service.Prebuffer(ctx)}, nil
	})

	// Replace the prebuffer set
	huma.Register(s.api, huma.Operation{
		OperationID: "set-prebuffer",
		Method:      http.MethodPut,
		Path:        "/api/prebuffer",
		Summary:     "Set Prebuffer Set",
		Description: "Designate streams for prebuffering. An empty list is a valid choice meaning nothing is prebuffered.",
		Tags:        []string{"prebuffer"},
		Errors:      []int{401, 500},
		Security:    withAuth(),
	}, func(ctx context.Context, input *models.PrebufferRequest) (*models.PrebufferResponse, error) {
		if err := s.service.SetPrebuffer(ctx, input.Body.Enabled); err != nil {
			return nil, huma.Error500InternalServerError("Failed to store prebuffer set", err)
		}
		return &models.PrebufferResponse{Body: s.service.Prebuffer(ctx)}, nil
	})

	// Clear the prebuffer choice
	huma.Register(s.api, huma.Operation{
		OperationID: "clear-prebuffer",
		Method:      http.MethodDelete,
		Path:        "/api/prebuffer",
		Summary:     "Clear Prebuffer Set",
		Description: "Revert the prebuffer choice so the default set is computed from the camera's streams",
		Tags:        []string{"prebuffer"},
		Errors:      []int{401, 500},
		Security:    withAuth(),
	}, func(ctx context.Context, input *struct{}) (*models.PrebufferResponse, error) {
		if err := s.service.ClearPrebuffer(ctx); err != nil {
			return nil, huma.Error500InternalServerError("Failed to clear prebuffer set", err)
		}
		return &models.PrebufferResponse{Body: s.service.Prebuffer(ctx)}, nil
	})
}
