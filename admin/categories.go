package admin

import (
	"context"
	"strconv"
	"strings"

	"catalog/client"
)

type CategoryFields struct {
	Name        *string
	Description *string
}

func (c *Console) CategoryList(ctx context.Context) error {
	categories, err := c.api.ListCategories(ctx)
	if err != nil {
		return c.fail(err)
	}

	c.title("Categories")
	if len(categories) == 0 {
		c.printf("%s\n", c.pal.Muted("No categories yet."))
		return nil
	}
	t := newTable("ID", "NAME", "DESCRIPTION")
	for _, cat := range categories {
		t.add(strconv.FormatUint(uint64(cat.ID), 10), cat.Name, cat.Description)
	}
	t.render(c.out, c.pal)
	return nil
}

// CategoryForm creates a category when id is 0 and edits category id
// otherwise.
func (c *Console) CategoryForm(ctx context.Context, id uint, f CategoryFields) error {
	if id == 0 {
		if f.Name == nil || strings.TrimSpace(*f.Name) == "" {
			return c.fail(&FormError{Hints: []string{"Name is required"}})
		}
		in := client.CategoryInput{Name: *f.Name}
		if f.Description != nil {
			in.Description = *f.Description
		}
		cat, err := c.api.CreateCategory(ctx, in)
		if err != nil {
			return c.fail(err)
		}
		c.success("Category %q created (id %d)", cat.Name, cat.ID)
		return nil
	}

	if f.Name == nil && f.Description == nil {
		return c.fail(&FormError{Hints: []string{"Nothing to update"}})
	}
	cat, err := c.api.UpdateCategory(ctx, id, client.CategoryPatch{Name: f.Name, Description: f.Description})
	if err != nil {
		return c.fail(err)
	}
	c.success("Category %q updated", cat.Name)
	return nil
}

func (c *Console) CategoryDelete(ctx context.Context, id uint) error {
	if err := c.api.DeleteCategory(ctx, id); err != nil {
		return c.fail(err)
	}
	c.success("Category deleted successfully")
	return nil
}
