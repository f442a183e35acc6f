package commands

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"WishlistX/internal/cli/bootstrap"
	"WishlistX/internal/cli/model/view"
	"WishlistX/internal/cli/state"
	"WishlistX/internal/config"
)

const browseHelp = `Commands:
  list                        show items
  wishlists                   show wishlists with counts
  filter <wishlist-id>|all    switch the wishlist filter
  move <item-id> <wishlist-id>
  remove <item-id>            remove the item from its wishlist
  delete <item-id>            delete the item
  open <item-id>              open the item page
  copy <item-id>              copy the item URL
  share <wishlist-id>         copy a share link of the wishlist
  help
  quit`

type browseCmd struct{}

func (browseCmd) Name() string        { return "browse" }
func (browseCmd) Description() string { return "Interactive browser of saved items" }
func (browseCmd) Usage() string       { return "browse [--wishlist=ID]" }

func (browseCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlags("browse")
	wl := fs.Int64("wishlist", 0, "initial wishlist filter")
	rest, err := parseFlags(fs, args)
	if err != nil || len(rest) != 0 || *wl < 0 {
		return ErrUsage
	}
	var filter *int64
	if *wl > 0 {
		filter = wl
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		counts := state.NewWishlistCounts(app.Client, app.Logger)
		b := &browseSession{
			cfg:    cfg,
			app:    app,
			counts: counts,
			items:  state.NewSavedItems(counts),
		}
		defer counts.Wait()
		if err := counts.Load(ctx); err != nil {
			return err
		}
		if err := b.load(ctx, filter); err != nil {
			return err
		}
		b.render()
		return b.loop(ctx)
	})
}

// browseSession — интерактивная сессия browse поверх оптимистичного состояния списка.
type browseSession struct {
	cfg    *config.Config
	app    *bootstrap.App
	counts *state.WishlistCounts
	items  *state.SavedItems
}

func (b *browseSession) load(ctx context.Context, filter *int64) error {
	items, err := b.app.Client.ListSavedItems(ctx, filter)
	if err != nil {
		return err
	}
	b.items.SetFilter(filter)
	b.items.Replace(items)
	return nil
}

func (b *browseSession) loop(ctx context.Context) error {
	sc := bufio.NewScanner(In)
	for {
		fmt.Fprint(Out, "wx> ")
		if !sc.Scan() {
			fmt.Fprintln(Out)
			return sc.Err()
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if quit := b.exec(ctx, strings.ToLower(fields[0]), fields[1:]); quit {
			return nil
		}
	}
}

// exec выполняет одну команду; true — выйти из browse.
func (b *browseSession) exec(ctx context.Context, cmd string, args []string) bool {
	switch cmd {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprintln(Out, browseHelp)
	case "list", "ls":
		b.render()
	case "wishlists":
		b.renderWishlists()
	case "filter":
		b.filter(ctx, args)
	case "move":
		b.move(ctx, args)
	case "remove":
		b.remove(ctx, args)
	case "delete", "rm":
		b.delete(ctx, args)
	case "open":
		b.withItem(args, func(id int64) {
			it, _ := b.items.Get(id)
			if err := openItem(it); err != nil {
				failure("%v", err)
			}
		})
	case "copy":
		b.withItem(args, func(id int64) {
			it, _ := b.items.Get(id)
			if err := Clipboard.WriteAll(it.URL); err != nil {
				failure("Could not copy the link: %v", err)
				return
			}
			success("Copied %s", it.URL)
		})
	case "share":
		b.share(ctx, args)
	default:
		failure("Unknown command %q, type help", cmd)
	}
	return false
}

func (b *browseSession) render() {
	names := b.counts.Names()
	title := "All items"
	if f := b.items.Filter(); f != nil {
		title = fmt.Sprintf("Wishlist #%d", *f)
		if n, ok := names[*f]; ok {
			title = n
		}
	}
	fmt.Fprintf(Out, "%s\n", title)
	visible := b.items.Visible()
	if len(visible) == 0 {
		fmt.Fprintln(Out, "No saved items")
		return
	}
	for _, it := range visible {
		fmt.Fprintln(Out, view.NewItemRow(it, names).String())
	}
}

func (b *browseSession) renderWishlists() {
	lists := b.counts.Wishlists()
	if len(lists) == 0 {
		fmt.Fprintln(Out, "No wishlists")
		return
	}
	for _, w := range lists {
		fmt.Fprintf(Out, "- %d  %s  (%d)\n", w.ID, w.Name, w.Count)
	}
}

func (b *browseSession) filter(ctx context.Context, args []string) {
	if len(args) != 1 {
		failure("Usage: filter <wishlist-id>|all")
		return
	}
	var filter *int64
	if args[0] != "all" {
		id, err := parseID(args[0])
		if err != nil {
			failure("Invalid wishlist id %q", args[0])
			return
		}
		filter = &id
	}
	if err := b.load(ctx, filter); err != nil {
		failure("Failed to load items: %v", err)
		return
	}
	b.render()
}

// withItem разбирает id товара из текущего набора и вызывает fn.
func (b *browseSession) withItem(args []string, fn func(id int64)) {
	if len(args) < 1 {
		failure("Item id expected")
		return
	}
	id, err := parseID(args[0])
	if err != nil {
		failure("Invalid item id %q", args[0])
		return
	}
	if _, found := b.items.Get(id); !found {
		failure("Item #%d is not in the list", id)
		return
	}
	fn(id)
}

// Мутации оптимистичные: набор меняется сразу, затем идёт запрос к серверу.
// При ошибке печатается сообщение; отката нет, `filter` перечитывает список с сервера.

func (b *browseSession) move(ctx context.Context, args []string) {
	if len(args) != 2 {
		failure("Usage: move <item-id> <wishlist-id>")
		return
	}
	target, err := parseID(args[1])
	if err != nil {
		failure("Invalid wishlist id %q", args[1])
		return
	}
	b.withItem(args, func(id int64) {
		b.items.Move(id, &target)
		if err := b.app.Client.UpdateItemWishlist(ctx, id, &target); err != nil {
			failure("Failed to move item: %v", err)
			return
		}
		name, found := b.counts.Names()[target]
		if !found {
			name = fmt.Sprintf("#%d", target)
		}
		success("Moved to %s", name)
	})
}

func (b *browseSession) remove(ctx context.Context, args []string) {
	b.withItem(args, func(id int64) {
		b.items.Move(id, nil)
		if err := b.app.Client.UpdateItemWishlist(ctx, id, nil); err != nil {
			failure("Failed to remove from wishlist: %v", err)
			return
		}
		success("Removed from wishlist")
	})
}

func (b *browseSession) delete(ctx context.Context, args []string) {
	b.withItem(args, func(id int64) {
		b.items.Delete(id)
		if err := b.app.Client.DeleteItem(ctx, id); err != nil {
			failure("Failed to delete item: %v", err)
			return
		}
		success("Item deleted")
	})
}

func (b *browseSession) share(ctx context.Context, args []string) {
	if len(args) != 1 {
		failure("Usage: share <wishlist-id>")
		return
	}
	id, err := parseID(args[0])
	if err != nil {
		failure("Invalid wishlist id %q", args[0])
		return
	}
	name, found := b.counts.Names()[id]
	if !found {
		name = fmt.Sprintf("#%d", id)
	}
	if err := shareWishlist(ctx, b.cfg, b.app, id, name); err != nil {
		failure("Failed to share wishlist: %v", err)
	}
}

func init() { RegisterCmd(browseCmd{}) }
