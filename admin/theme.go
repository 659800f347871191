package admin

import "catalog/client"

// Theme shows the saved theme, flipping it first when toggle is set. The
// console switches to the new palette straight away.
func (c *Console) Theme(store *client.ThemeStore, toggle, terminal bool) error {
	if toggle {
		if _, err := store.Toggle(); err != nil {
			return c.fail(err)
		}
		c.SetPalette(NewPalette(store.Theme(), terminal))
	}
	c.printf("Theme: %s\n", c.pal.Title(string(store.Theme())))
	return nil
}
