package media

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/yourplaces/backend/pkg/helpers"
)

// CleanupJob is the queue message asking the worker to delete one object.
type CleanupJob struct {
	Ref string `json:"ref"`
}

// Cleaner removes a media object after its owning record is gone. It
// prefers handing the work to the cleanup queue; without a publisher (or
// when publishing fails) it deletes directly. Callers treat any returned
// error as log-only: cleanup is best-effort, never transactional.
type Cleaner struct {
	pub    *helpers.RabbitPublisher
	store  *Store
	logger *logrus.Logger
}

func NewCleaner(pub *helpers.RabbitPublisher, store *Store, logger *logrus.Logger) *Cleaner {
	return &Cleaner{pub: pub, store: store, logger: logger}
}

func (c *Cleaner) Remove(ctx context.Context, ref string) error {
	if ref == "" {
		return nil
	}
	if c.pub != nil {
		if err := c.pub.PublishJSON(ctx, CleanupJob{Ref: ref}); err == nil {
			return nil
		} else if c.logger != nil {
			c.logger.WithError(err).WithField("ref", ref).Warn("cleanup enqueue failed, deleting directly")
		}
	}
	if c.store != nil {
		return c.store.Delete(ctx, ref)
	}
	return errors.New("no cleanup backend configured")
}
