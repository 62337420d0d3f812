package main

import (
	"fmt"

	docxconv "github.com/yshk0402/docx-converter"
)

// Run executes the favorites command.
func (c *FavoritesCmd) Run(deps *Dependencies) error {
	if len(c.Columns) > 0 {
		if err := deps.Config.UpdateFavorites(c.Columns); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docxconv.ErrorMessage(err))
			return err
		}
	}

	cfg, err := deps.Config.Load()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docxconv.ErrorMessage(err))
		return err
	}

	if len(cfg.FavoriteColumns) == 0 {
		fmt.Fprintln(deps.Stdout, "No favorite columns. Use 'docxconv favorites <column>...' to set them.")
		return nil
	}

	for _, column := range cfg.FavoriteColumns {
		fmt.Fprintln(deps.Stdout, column)
	}

	return nil
}
