// Package models defines the request and response shapes for the HTTP API.
package models

import (
	"github.com/smazurov/streamroles/internal/logging"
	"github.com/smazurov/streamroles/internal/roles"
	"github.com/smazurov/streamroles/internal/streams"
)

// Health check models
type HealthData struct {
	Status  string `json:"status" example:"ok" doc:"Service status"`
	Message string `json:"message" example:"API is healthy" doc:"Status message"`
}

type HealthResponse struct {
	Body HealthData
}

// Version models
type VersionData struct {
	Version   string `json:"version" example:"1.2.0" doc:"Application version"`
	GitCommit string `json:"git_commit" example:"abc1234" doc:"Git commit hash"`
	BuildDate string `json:"build_date" example:"2026-08-29T10:00:00Z" doc:"Build timestamp"`
	BuildID   string `json:"build_id" example:"12345" doc:"Build identifier"`
	GoVersion string `json:"go_version" example:"go1.24.11" doc:"Go runtime version"`
	Compiler  string `json:"compiler" example:"gc" doc:"Go compiler"`
	Platform  string `json:"platform" example:"linux/arm64" doc:"Build platform"`
}

type VersionResponse struct {
	Body VersionData
}

// Stream models
type StreamListData struct {
	Streams []streams.Descriptor `json:"streams" doc:"Stream variants offered by the camera"`
	Count   int                  `json:"count" example:"3" doc:"Number of variants"`
}

type StreamListResponse struct {
	Body StreamListData
}

// Role models
type RoleListData struct {
	Roles []roles.RoleState `json:"roles" doc:"State of every stream role"`
	Count int               `json:"count" example:"5" doc:"Number of roles"`
}

type RoleListResponse struct {
	Body RoleListData
}

type RoleResponse struct {
	Body roles.RoleState
}

type RoleSelectionData struct {
	Selection string `json:"selection" example:"substream" doc:"Stream name to pin, or Default to revert"`
}

type RoleSelectionRequest struct {
	Role string            `path:"role" example:"remoteStream" doc:"Role setting key"`
	Body RoleSelectionData `contentType:"application/json"`
}

// Prebuffer models
type PrebufferResponse struct {
	Body roles.PrebufferState
}

type PrebufferRequestData struct {
	Enabled []string `json:"enabled" doc:"Stream names to prebuffer, an empty list disables prebuffering"`
}

type PrebufferRequest struct {
	Body PrebufferRequestData
}

// Log models
type LogListData struct {
	Entries []logging.LogEntry `json:"entries" doc:"Recent log entries, oldest first"`
	Count   int                `json:"count" example:"200" doc:"Number of entries"`
}

type LogListResponse struct {
	Body LogListData
}
