package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"WishlistX/internal/cli/bootstrap"
	"WishlistX/internal/cli/service"
	"WishlistX/internal/config"
)

type wishlistsCmd struct{}

func (wishlistsCmd) Name() string        { return "wishlists" }
func (wishlistsCmd) Description() string { return "List wishlists with item counts" }
func (wishlistsCmd) Usage() string       { return "wishlists" }

func (wishlistsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		lists, err := app.Client.ListWishlists(ctx)
		if err != nil {
			return err
		}
		if len(lists) == 0 {
			fmt.Fprintln(Out, "No wishlists")
			return nil
		}
		for _, w := range lists {
			fmt.Fprintf(Out, "- %d  %s  (%d)\n", w.ID, w.Name, w.Count)
		}
		fmt.Fprintf(Out, "Total: %d\n", len(lists))
		return nil
	})
}

type wishlistCreateCmd struct{}

func (wishlistCreateCmd) Name() string        { return "wishlist-create" }
func (wishlistCreateCmd) Description() string { return "Create a wishlist" }
func (wishlistCreateCmd) Usage() string       { return "wishlist-create <name>" }

func (wishlistCreateCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return ErrUsage
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		if err := app.Client.CreateWishlist(ctx, name); err != nil {
			return err
		}
		success("Wishlist %q created", name)
		return nil
	})
}

type wishlistDeleteCmd struct{}

func (wishlistDeleteCmd) Name() string { return "wishlist-delete" }
func (wishlistDeleteCmd) Description() string {
	return "Delete a wishlist; items are kept unless --with-items"
}
func (wishlistDeleteCmd) Usage() string { return "wishlist-delete <id> [--with-items] [--yes]" }

func (wishlistDeleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlags("wishlist-delete")
	withItems := fs.Bool("with-items", false, "delete saved items of the wishlist too")
	yes := fs.Bool("yes", false, "do not ask for confirmation")
	rest, err := parseFlags(fs, args)
	if err != nil || len(rest) != 1 {
		return ErrUsage
	}
	id, err := parseID(rest[0])
	if err != nil {
		return err
	}
	question := fmt.Sprintf("Delete wishlist #%d?", id)
	if *withItems {
		question = fmt.Sprintf("Delete wishlist #%d and all its items?", id)
	}
	if !confirm(question, *yes) {
		success("Deletion cancelled")
		return nil
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		if err := app.Client.DeleteWishlist(ctx, id, *withItems); err != nil {
			return err
		}
		success("Wishlist #%d deleted", id)
		return nil
	})
}

type wishlistShareCmd struct{}

func (wishlistShareCmd) Name() string        { return "wishlist-share" }
func (wishlistShareCmd) Description() string { return "Create a share link and copy it to the clipboard" }
func (wishlistShareCmd) Usage() string       { return "wishlist-share <id>" }

func (wishlistShareCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		return shareWishlist(ctx, cfg, app, id, fmt.Sprintf("#%d", id))
	})
}

func shareWishlist(ctx context.Context, cfg *config.Config, app *bootstrap.App, id int64, name string) error {
	svc, err := service.NewShareService(app.Client, Clipboard, cfg.SharePattern, app.Logger)
	if err != nil {
		return err
	}
	link, err := svc.ShareAndCopy(ctx, id, name)
	if err != nil {
		if link == "" {
			return err
		}
		// ссылка есть, не удалось только скопировать
		failure("Could not copy the link: %v", errors.Unwrap(err))
		fmt.Fprintln(Out, link)
		return nil
	}
	success("Link to %s copied: %s", name, link)
	return nil
}

func init() {
	RegisterCmd(wishlistsCmd{})
	RegisterCmd(wishlistCreateCmd{})
	RegisterCmd(wishlistDeleteCmd{})
	RegisterCmd(wishlistShareCmd{})
}
