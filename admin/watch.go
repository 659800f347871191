package admin

import (
	"context"
	"fmt"

	"catalog/models"
)

// Watch prints change events until ctx is cancelled.
func (c *Console) Watch(ctx context.Context) error {
	c.printf("%s\n", c.pal.Muted("Watching for changes. Press Ctrl+C to stop."))
	err := c.api.Watch(ctx, func(e models.Event) {
		c.printf("%s %s\n", c.pal.Muted(e.At.Local().Format("15:04:05")), c.describe(e))
	})
	if err != nil {
		return c.fail(err)
	}
	return nil
}

func (c *Console) describe(e models.Event) string {
	switch e.Type {
	case models.ProductCreated, models.CategoryCreated, models.ImageUploaded:
		return c.pal.Success(fmt.Sprintf("%-17s", e.Type)) + subject(e)
	case models.ProductDeleted, models.CategoryDeleted:
		return c.pal.Error(fmt.Sprintf("%-17s", e.Type)) + subject(e)
	default:
		return c.pal.Warn(fmt.Sprintf("%-17s", e.Type)) + subject(e)
	}
}

func subject(e models.Event) string {
	if e.ID == 0 {
		return e.Name
	}
	return fmt.Sprintf("#%d %s", e.ID, e.Name)
}
