package admin

import (
	"context"

	"catalog/client"
)

// UploadImage uploads the file at path. When productID is set the returned
// URL becomes that product's image.
func (c *Console) UploadImage(ctx context.Context, path string, productID uint) error {
	result, err := c.api.UploadFile(ctx, path)
	if err != nil {
		return c.fail(err)
	}
	c.success("Uploaded %s (%d bytes)", result.OriginalName, result.Size)
	c.printf("URL: %s\n", result.URL)

	if productID == 0 {
		return nil
	}
	url := result.URL
	p, err := c.api.UpdateProduct(ctx, productID, client.ProductPatch{ImageURL: &url})
	if err != nil {
		return c.fail(err)
	}
	c.success("Image attached to %q", p.Name)
	return nil
}
