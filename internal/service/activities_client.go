package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"signup-web/internal/config"
	"signup-web/internal/domain"
	apperrors "signup-web/pkg/errors"
	"signup-web/pkg/logger"
)

// HTTPActivitiesClient talks to the activities server over HTTP
type HTTPActivitiesClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewActivitiesClient creates a client for the configured activities server.
// A zero ActivitiesTimeout leaves the transport defaults in charge.
func NewActivitiesClient(cfg *config.Config, logger *logger.Logger) *HTTPActivitiesClient {
	return &HTTPActivitiesClient{
		baseURL: cfg.ActivitiesAPIURL,
		httpClient: &http.Client{
			Timeout: cfg.ActivitiesTimeout,
		},
		logger: logger,
	}
}

// ListActivities calls GET /activities
func (c *HTTPActivitiesClient) ListActivities(ctx context.Context) (domain.ActivityCollection, error) {
	const op = "list activities"

	var collection domain.ActivityCollection
	status, body, err := c.do(ctx, op, http.MethodGet, c.baseURL+"/activities")
	if err != nil {
		return collection, err
	}

	if status < 200 || status > 299 {
		var resp domain.ActionResponse
		_ = json.Unmarshal(body, &resp)
		return collection, apperrors.NewStatusError(op, status, resp.DetailText())
	}

	if err := json.Unmarshal(body, &collection); err != nil {
		c.logger.WithFields(map[string]interface{}{
			"response_body": truncate(body),
			"status_code":   status,
		}).Error("Failed to parse activities response")
		return domain.ActivityCollection{}, apperrors.NewMalformedError(op, status, err)
	}

	c.logger.WithField("activities", collection.Len()).Debug("Fetched activity collection")
	return collection, nil
}

// Signup calls POST /activities/{activity}/signup?email={email}
func (c *HTTPActivitiesClient) Signup(ctx context.Context, activity, email string) (string, error) {
	return c.action(ctx, "signup", http.MethodPost, activityURL(c.baseURL, activity, "signup", email))
}

// Unregister calls DELETE /activities/{activity}/unregister?email={email}
func (c *HTTPActivitiesClient) Unregister(ctx context.Context, activity, email string) (string, error) {
	return c.action(ctx, "unregister", http.MethodDelete, activityURL(c.baseURL, activity, "unregister", email))
}

// action runs a mutation and returns the server message. The body is parsed
// before the status is checked: a non-JSON error page is malformed, not a status error.
func (c *HTTPActivitiesClient) action(ctx context.Context, op, method, target string) (string, error) {
	status, body, err := c.do(ctx, op, method, target)
	if err != nil {
		return "", err
	}

	var resp domain.ActionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.WithFields(map[string]interface{}{
			"operation":     op,
			"response_body": truncate(body),
			"status_code":   status,
		}).Error("Failed to parse action response")
		return "", apperrors.NewMalformedError(op, status, err)
	}

	if status < 200 || status > 299 {
		c.logger.WithFields(map[string]interface{}{
			"operation":   op,
			"status_code": status,
			"detail":      resp.DetailText(),
		}).Info("Activities server rejected action")
		return "", apperrors.NewStatusError(op, status, resp.DetailText())
	}

	c.logger.WithFields(map[string]interface{}{
		"operation": op,
		"message":   resp.Message,
	}).Debug("Action accepted")
	return resp.Message, nil
}

func (c *HTTPActivitiesClient) do(ctx context.Context, op, method, target string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return 0, nil, apperrors.NewTransportError(op, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, apperrors.NewTransportError(op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, apperrors.NewTransportError(op, fmt.Errorf("failed to read response body: %w", err))
	}
	return resp.StatusCode, body, nil
}

// activityURL percent-encodes the activity as a path segment and the email as a query value
func activityURL(baseURL, activity, action, email string) string {
	q := url.Values{}
	q.Set("email", email)
	return fmt.Sprintf("%s/activities/%s/%s?%s", baseURL, url.PathEscape(activity), action, q.Encode())
}

func truncate(body []byte) string {
	const limit = 512
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
