// Command storefront is an interactive console over the storefront client
// core: search goes through the query pipeline, browsing through the filter
// engine and render window, cart and favorites through the store.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"kitstore/internal/catalog"
	"kitstore/internal/config"
	"kitstore/internal/domain"
	"kitstore/internal/gateway"
	"kitstore/internal/query"
	"kitstore/internal/store"
)

const windowChunk = 12

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[storefront] ", log.LstdFlags|log.LUTC)

	client := gateway.New(cfg.APIBaseURL, cfg.TelegramUserID, cfg.HTTPTimeout, logger)
	st := store.New(client, logger)
	window := catalog.NewWindow(windowChunk)

	var (
		mu        sync.Mutex
		selection catalog.Selection
		search    string
	)

	render := func(products []domain.Product) {
		mu.Lock()
		filtered := catalog.Apply(products, selection)
		window.Reset(len(filtered))
		visible := filtered[:window.Visible()]
		mu.Unlock()

		fmt.Printf("-- %d of %d products --\n", len(visible), len(filtered))
		for _, p := range visible {
			marker := " "
			if st.InCart(p.ID) {
				marker = "*"
			}
			fmt.Printf("%s #%d %s  %.2f  %s %s\n", marker, p.ID, p.Name, p.Price, catalog.CanonicalSize(p.Size), p.League)
		}
	}

	pipeline := query.New(client, cfg.DebounceInterval, cfg.PageLimit, render, logger)
	defer pipeline.Close()

	ctx := context.Background()
	if err := st.FetchCart(ctx); err != nil {
		logger.Printf("initial cart fetch failed: %v", err)
	}
	if err := st.FetchFavorites(ctx); err != nil {
		logger.Printf("initial favorites fetch failed: %v", err)
	}
	pipeline.Refresh("", "")

	fmt.Println("commands: search <text> | mode <slug> | size|brand|league|club <v> | sort <default|price|price-desc|name> | more | add <id> | rm <item-id> | cart | fav <id> | favs | checkout | orders | quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		cmd, arg := splitCommand(scanner.Text())

		switch cmd {
		case "quit", "exit":
			return
		case "search":
			mu.Lock()
			search = arg
			slug := selection.CategorySlug
			mu.Unlock()
			pipeline.SetQuery(search, slug)
		case "mode":
			mu.Lock()
			selection.CategorySlug = arg
			mu.Unlock()
			pipeline.Refresh(search, arg)
		case "size":
			if arg == "" {
				fmt.Printf("sizes: %s\n", strings.Join(catalog.DistinctSizes(pipeline.Results()), ", "))
				continue
			}
			mu.Lock()
			selection.Size = arg
			mu.Unlock()
			render(pipeline.Results())
		case "brand":
			mu.Lock()
			selection.Brand = arg
			mu.Unlock()
			render(pipeline.Results())
		case "league":
			if arg == "" {
				fmt.Printf("leagues: %s\n", strings.Join(catalog.Leagues(), ", "))
				continue
			}
			mu.Lock()
			selection.League = arg
			selection.Club = ""
			mu.Unlock()
			if clubs := catalog.ClubsForLeague(arg); clubs != nil {
				fmt.Printf("clubs: %s\n", strings.Join(clubs, ", "))
			}
			render(pipeline.Results())
		case "club":
			mu.Lock()
			selection.Club = arg
			mu.Unlock()
			render(pipeline.Results())
		case "sort":
			mu.Lock()
			selection.Sort = parseSort(arg)
			mu.Unlock()
			render(pipeline.Results())
		case "more":
			mu.Lock()
			grew := window.Advance()
			filtered := catalog.Apply(pipeline.Results(), selection)
			n := window.Visible()
			if n > len(filtered) {
				n = len(filtered)
			}
			visible := filtered[:n]
			mu.Unlock()
			if !grew {
				fmt.Println("nothing more to show")
				continue
			}
			for _, p := range visible {
				fmt.Printf("  #%d %s  %.2f\n", p.ID, p.Name, p.Price)
			}
		case "add":
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				fmt.Println("add needs a product id")
				continue
			}
			if st.AddToCart(ctx, id) {
				fmt.Println("added")
			} else {
				fmt.Println("already in cart or in flight")
			}
		case "rm":
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				fmt.Println("rm needs a cart item id")
				continue
			}
			if err := st.RemoveFromCart(ctx, id); err != nil {
				fmt.Printf("remove failed: %v\n", err)
			}
		case "cart":
			for _, item := range st.Cart() {
				fmt.Printf("  item #%d: %s  %.2f\n", item.ID, item.Product.Name, item.Product.Price)
			}
			fmt.Printf("  %d item(s)\n", st.CartCount())
		case "fav":
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				fmt.Println("fav needs a product id")
				continue
			}
			if err := st.ToggleFavorite(ctx, id); err != nil {
				fmt.Printf("toggle failed: %v\n", err)
			}
		case "favs":
			for _, fav := range st.Favorites() {
				fmt.Printf("  #%d %s\n", fav.Product.ID, fav.Product.Name)
			}
		case "checkout":
			order, err := client.CreateOrder(ctx)
			if err != nil {
				fmt.Printf("checkout failed: %v\n", err)
				continue
			}
			fmt.Printf("order #%d created, total %.2f\n", order.ID, order.TotalPrice)
			if err := st.FetchCart(ctx); err != nil {
				logger.Printf("cart refetch after checkout: %v", err)
			}
		case "orders":
			orders, err := client.ListOrders(ctx, gateway.ListOrdersParams{})
			if err != nil {
				fmt.Printf("list orders failed: %v\n", err)
				continue
			}
			for _, o := range orders {
				fmt.Printf("  order #%d %s %s %.2f (next: %s)\n",
					o.ID, o.CreatedAt.Format("2006-01-02 15:04"), o.Status, o.TotalPrice, domain.NextStatus(o.Status))
			}
		default:
			if cmd != "" {
				fmt.Println("unknown command")
			}
		}
	}
}

func splitCommand(line string) (string, string) {
	fields := strings.SplitN(strings.TrimSpace(line), " ", 2)
	cmd := strings.ToLower(fields[0])
	arg := ""
	if len(fields) > 1 {
		arg = strings.TrimSpace(fields[1])
	}
	return cmd, arg
}

func parseSort(arg string) catalog.Sort {
	switch arg {
	case "price":
		return catalog.SortPriceAsc
	case "price-desc":
		return catalog.SortPriceDesc
	case "name":
		return catalog.SortNameAsc
	}
	return catalog.SortDefault
}
