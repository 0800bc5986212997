package service

import (
	"context"

	"signup-web/internal/domain"
)

// ActivitiesClient defines the three calls made against the activities server
type ActivitiesClient interface {
	// ListActivities fetches the full collection in server order
	ListActivities(ctx context.Context) (domain.ActivityCollection, error)

	// Signup registers email under activity and returns the server message
	Signup(ctx context.Context, activity, email string) (string, error)

	// Unregister removes email from activity and returns the server message
	Unregister(ctx context.Context, activity, email string) (string, error)
}

// Compile-time check
var _ ActivitiesClient = (*HTTPActivitiesClient)(nil)
