package commands

import (
	"context"
	"fmt"
	"strings"
)

// ShopHandlerFactory creates handlers that list shops or a shop's wares.
// Config:
//   - shop (optional): the shop to show; every shop is listed when empty
type ShopHandlerFactory struct {
	pub Publisher
}

func NewShopHandlerFactory(pub Publisher) *ShopHandlerFactory {
	return &ShopHandlerFactory{pub: pub}
}

func (f *ShopHandlerFactory) Spec() *HandlerSpec {
	return &HandlerSpec{
		Config: []ConfigRequirement{
			{Name: "shop", Required: false},
		},
	}
}

func (f *ShopHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *ShopHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		catalog := cmdCtx.Session().Catalog()
		shops := catalog.Shops()

		want := strings.TrimSpace(cmdCtx.Config["shop"])
		if want == "" {
			lines := []string{"Winkels:"}
			for _, s := range shops {
				lines = append(lines, fmt.Sprintf("  %s", s))
			}
			return publish(f.pub, cmdCtx, strings.Join(lines, "\n"))
		}

		shop := matchShop(shops, want)
		if shop == "" {
			return NewUserError(fmt.Sprintf("Er is geen winkel die %q heet.", want))
		}

		lines := []string{fmt.Sprintf("%s verkoopt:", shop)}
		for _, e := range catalog.ShopItems(shop) {
			lines = append(lines, fmt.Sprintf("  %s %-22s %3d wortels  (buy %s)", e.Emoji, e.Name, e.Price, e.ID))
		}
		return publish(f.pub, cmdCtx, strings.Join(lines, "\n"))
	}, nil
}

// matchShop finds a shop by case-insensitive name or name prefix.
func matchShop(shops []string, want string) string {
	for _, s := range shops {
		if strings.EqualFold(s, want) {
			return s
		}
	}
	for _, s := range shops {
		if strings.HasPrefix(strings.ToLower(s), strings.ToLower(want)) {
			return s
		}
	}
	return ""
}

// BuyHandlerFactory creates handlers that buy one item.
// Config:
//   - item (required): the item id to buy
type BuyHandlerFactory struct{}

func NewBuyHandlerFactory() *BuyHandlerFactory {
	return &BuyHandlerFactory{}
}

func (f *BuyHandlerFactory) Spec() *HandlerSpec {
	return &HandlerSpec{
		Config: []ConfigRequirement{
			{Name: "item", Required: true},
		},
	}
}

func (f *BuyHandlerFactory) ValidateConfig(config map[string]any) error {
	return requireString(config, "item")
}

func (f *BuyHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		// The shop notifies the outcome itself, including a refusal.
		_, err := cmdCtx.Session().Buy(strings.ToLower(cmdCtx.Config["item"]))
		return fromGame(err)
	}, nil
}
