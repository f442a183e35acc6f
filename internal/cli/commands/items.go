package commands

import (
	"context"
	"fmt"
	"strings"

	"WishlistX/internal/cli/api"
	"WishlistX/internal/cli/bootstrap"
	"WishlistX/internal/cli/model"
	"WishlistX/internal/cli/model/view"
	"WishlistX/internal/cli/service"
	"WishlistX/internal/config"
)

type itemsCmd struct{}

func (itemsCmd) Name() string        { return "items" }
func (itemsCmd) Description() string { return "List saved items, optionally of one wishlist" }
func (itemsCmd) Usage() string       { return "items [--wishlist=ID]" }

func (itemsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlags("items")
	wl := fs.Int64("wishlist", 0, "wishlist id")
	rest, err := parseFlags(fs, args)
	if err != nil || len(rest) != 0 || *wl < 0 {
		return ErrUsage
	}
	var filter *int64
	if *wl > 0 {
		filter = wl
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		items, err := app.Client.ListSavedItems(ctx, filter)
		if err != nil {
			return err
		}
		lists, err := app.Client.ListWishlists(ctx)
		if err != nil {
			return err
		}
		printItems(items, wishlistNames(lists))
		return nil
	})
}

func wishlistNames(lists []model.Wishlist) map[int64]string {
	names := make(map[int64]string, len(lists))
	for _, w := range lists {
		names[w.ID] = w.Name
	}
	return names
}

func printItems(items []model.SavedItem, names map[int64]string) {
	if len(items) == 0 {
		fmt.Fprintln(Out, "No saved items")
		return
	}
	for _, it := range items {
		fmt.Fprintln(Out, view.NewItemRow(it, names).String())
	}
	fmt.Fprintf(Out, "Total: %d\n", len(items))
}

type itemAddCmd struct{}

func (itemAddCmd) Name() string        { return "item-add" }
func (itemAddCmd) Description() string { return "Save an item" }
func (itemAddCmd) Usage() string {
	return "item-add <name> <url> [--description=D] [--price=19.90] [--image=URL]"
}

func (itemAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	var it api.NewItem
	fs := newFlags("item-add")
	fs.StringVar(&it.Description, "description", "", "description")
	fs.StringVar(&it.TargetAmount, "price", "", "target amount")
	fs.StringVar(&it.ImageURL, "image", "", "image URL")
	rest, err := parseFlags(fs, args)
	if err != nil || len(rest) < 2 {
		return ErrUsage
	}
	it.URL = rest[len(rest)-1]
	it.Name = strings.Join(rest[:len(rest)-1], " ")

	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		if err := app.Client.AddItem(ctx, it); err != nil {
			return err
		}
		success("Saved %q", it.Name)
		return nil
	})
}

type itemImportCmd struct{}

func (itemImportCmd) Name() string        { return "item-import" }
func (itemImportCmd) Description() string { return "Extract product details from a page and save it" }
func (itemImportCmd) Usage() string       { return "item-import <url>" }

func (itemImportCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		svc := service.NewImportService(app.Extractor, app.Client, app.Logger)
		it, err := svc.Import(ctx, args[0])
		if err != nil {
			return err
		}
		if it.TargetAmount != "" {
			success("Imported %q (%s €)", it.Name, it.TargetAmount)
		} else {
			success("Imported %q", it.Name)
		}
		return nil
	})
}

type itemMoveCmd struct{}

func (itemMoveCmd) Name() string        { return "item-move" }
func (itemMoveCmd) Description() string { return "Move an item to a wishlist" }
func (itemMoveCmd) Usage() string       { return "item-move <item-id> <wishlist-id>" }

func (itemMoveCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	itemID, err := parseID(args[0])
	if err != nil {
		return err
	}
	wishlistID, err := parseID(args[1])
	if err != nil {
		return err
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		if err := app.Client.UpdateItemWishlist(ctx, itemID, &wishlistID); err != nil {
			return err
		}
		success("Item #%d moved to wishlist #%d", itemID, wishlistID)
		return nil
	})
}

type itemRemoveCmd struct{}

func (itemRemoveCmd) Name() string        { return "item-remove" }
func (itemRemoveCmd) Description() string { return "Remove an item from its wishlist (keeps the item)" }
func (itemRemoveCmd) Usage() string       { return "item-remove <item-id>" }

func (itemRemoveCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	itemID, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		if err := app.Client.UpdateItemWishlist(ctx, itemID, nil); err != nil {
			return err
		}
		success("Item #%d removed from its wishlist", itemID)
		return nil
	})
}

type itemDeleteCmd struct{}

func (itemDeleteCmd) Name() string        { return "item-delete" }
func (itemDeleteCmd) Description() string { return "Delete a saved item" }
func (itemDeleteCmd) Usage() string       { return "item-delete <item-id>" }

func (itemDeleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	itemID, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		if err := app.Client.DeleteItem(ctx, itemID); err != nil {
			return err
		}
		success("Item #%d deleted", itemID)
		return nil
	})
}

type itemOpenCmd struct{}

func (itemOpenCmd) Name() string        { return "item-open" }
func (itemOpenCmd) Description() string { return "Open the item page in the browser" }
func (itemOpenCmd) Usage() string       { return "item-open <item-id>" }

func (itemOpenCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	itemID, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		items, err := app.Client.ListSavedItems(ctx, nil)
		if err != nil {
			return err
		}
		for _, it := range items {
			if it.ID == itemID {
				return openItem(it)
			}
		}
		return fmt.Errorf("item #%d not found", itemID)
	})
}

func openItem(it model.SavedItem) error {
	link := it.OpenURL()
	if link == "" {
		return fmt.Errorf("item #%d has no link", it.ID)
	}
	if err := Browser.Open(link); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	success("Opened %s", link)
	return nil
}

func init() {
	RegisterCmd(itemsCmd{})
	RegisterCmd(itemAddCmd{})
	RegisterCmd(itemImportCmd{})
	RegisterCmd(itemMoveCmd{})
	RegisterCmd(itemRemoveCmd{})
	RegisterCmd(itemDeleteCmd{})
	RegisterCmd(itemOpenCmd{})
}
