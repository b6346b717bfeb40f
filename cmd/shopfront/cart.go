package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/niksmo/shopfront/internal/app"
	"github.com/niksmo/shopfront/internal/core/domain"
	"github.com/spf13/cobra"
)

var (
	cartID      string
	cartProduct string
	cartVariant string
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Inspect and change a cart on the storefront API",
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the cart",
	RunE:  runCartShow,
}

var cartAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add one unit of a product variant to the cart",
	Long: `Add one unit of a product variant to the cart.

When --variant is omitted the product's first variant is used.`,
	RunE: runCartAdd,
}

func init() {
	cartCmd.PersistentFlags().StringVar(
		&cartID, "cart", "", "cart id (defaults to api.cart_id)",
	)
	cartAddCmd.Flags().StringVar(&cartProduct, "product", "", "product id")
	cartAddCmd.Flags().StringVar(&cartVariant, "variant", "", "product variant")
	_ = cartAddCmd.MarkFlagRequired("product")

	cartCmd.AddCommand(cartShowCmd, cartAddCmd)
}

func runCartShow(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := app.NewAPIClient(cfg)
	if err != nil {
		return err
	}

	snap, err := client.Cart(cmd.Context(), cartOrDefault(cfg.API.CartID))
	if err != nil {
		return err
	}
	printCart(cmd.OutOrStdout(), snap)
	return nil
}

func runCartAdd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := app.NewAPIClient(cfg)
	if err != nil {
		return err
	}

	snap, err := client.AddToCart(
		cmd.Context(),
		cartOrDefault(cfg.API.CartID),
		domain.ProductID(cartProduct),
		cartVariant,
	)
	if err != nil {
		return err
	}
	printCart(cmd.OutOrStdout(), snap)
	return nil
}

func cartOrDefault(configured string) string {
	if cartID != "" {
		return cartID
	}
	return configured
}

func printCart(w io.Writer, snap domain.CartSnapshot) {
	fmt.Fprintf(w, "cart %q: %d items\n", snap.CartID, snap.TotalItems)
	if len(snap.Items) == 0 {
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tVARIANT\tQTY\tUNIT\tTOTAL")
	for _, it := range snap.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			it.ProductID, it.Name, it.Variant, it.Quantity,
			it.UnitPrice.StringFixed(2), it.LineTotal.StringFixed(2),
		)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "subtotal: %s\n", snap.Subtotal.StringFixed(2))
}
