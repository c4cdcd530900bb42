package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/streamroles/internal/api/models"
	"github.com/smazurov/streamroles/internal/streams"
)

// registerStreamRoutes registers the camera stream listing endpoint.
func (s *Server) registerStreamRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-streams",
		Method:      http.MethodGet,
		Path:        "/api/streams",
		Summary:     "List Camera Streams",
		Description: "Get the stream variants currently offered by the camera",
		Tags:        []string{"streams"},
		Errors:      []int{401, 502},
		Security:    withAuth(),
	}, func(ctx context.Context, input *struct{}) (*models.StreamListResponse, error) {
		list, err := s.service.Streams(ctx)
		if err != nil {
			return nil, s.mapCameraError(err)
		}

		return &models.StreamListResponse{
			Body: models.StreamListData{
				Streams: list,
				Count:   len(list),
			},
		}, nil
	})
}

// mapCameraError converts camera client errors to HTTP errors.
func (s *Server) mapCameraError(err error) error {
	var camErr *streams.Error
	if errors.As(err, &camErr) {
		switch camErr.Code {
		case streams.ErrCodeCameraUnreachable:
			return huma.Error502BadGateway("Camera is unreachable", err)
		case streams.ErrCodeCameraStatus:
			return huma.Error502BadGateway("Camera returned an error", err)
		case streams.ErrCodeBadPayload:
			return huma.Error502BadGateway("Camera returned an unreadable stream list", err)
		}
	}
	return huma.Error500InternalServerError("Failed to query camera", err)
}
