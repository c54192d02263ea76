package storage

import (
	"context"
	"errors"

	"github.com/zerotask/zerotask/internal/client/api"
	"github.com/zerotask/zerotask/internal/client/models"
	"github.com/zerotask/zerotask/internal/common"
)

// RemoteTaskRepository implements the task collection contract over the REST
// API. Upsert translates to PUT-then-POST: an update of an unknown id falls
// back to a create that preserves the client-assigned id and timestamp, which
// keeps import semantics intact across the wire.
type RemoteTaskRepository struct {
	client *api.Client
}

func NewRemoteTaskRepository(client *api.Client) *RemoteTaskRepository {
	return &RemoteTaskRepository{client: client}
}

func (r *RemoteTaskRepository) GetAll(ctx context.Context) ([]models.Task, error) {
	return r.client.ListTasks(ctx)
}

func (r *RemoteTaskRepository) Upsert(ctx context.Context, t models.Task) error {
	_, err := r.client.UpdateTask(ctx, t)
	if errors.Is(err, common.ErrNotFound) {
		_, err = r.client.CreateTask(ctx, t)
	}
	return err
}

func (r *RemoteTaskRepository) DeleteByID(ctx context.Context, id string) error {
	return r.client.DeleteTask(ctx, id)
}

func (r *RemoteTaskRepository) Clear(ctx context.Context) error {
	return r.client.ClearTasks(ctx)
}
