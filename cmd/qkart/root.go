package main

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/niksmo/qkart/config"
	"github.com/niksmo/qkart/internal/adapter/tui"
	"github.com/niksmo/qkart/internal/app"
	"github.com/niksmo/qkart/internal/core/cartview"
	"github.com/niksmo/qkart/internal/core/domain"
	"github.com/niksmo/qkart/internal/core/form"
	"github.com/niksmo/qkart/internal/core/port"
	"github.com/niksmo/qkart/internal/core/service"
	"github.com/spf13/cobra"
)

const defaultConfigFile = "qkart.yaml"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "qkart",
		Short: "QKart storefront in the terminal",
		Long: `Browse the QKart catalog, search products, manage the cart and
check out. Without a subcommand the interactive storefront is started.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runBrowse,
	}
	root.PersistentFlags().String("config", defaultConfigFile,
		"config file (overridden by QKART_CONFIG_FILE)")

	root.AddCommand(
		newProductsCmd(),
		newSearchCmd(),
		newLoginCmd(),
		newRegisterCmd(),
		newLogoutCmd(),
		newCartCmd(),
		newCheckoutCmd(),
		newConfigCmd(),
	)
	return root
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	return config.Load(config.FilePath(cmd.Flags()))
}

func openApp(cmd *cobra.Command, n port.Notifier, r port.Router) (*app.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return app.New(cmd.Context(), cfg, n, r)
}

type storefrontFunc func(
	cmd *cobra.Command, args []string, sf *service.Storefront, con *console,
) error

// oneShot runs fn against a storefront with the persisted session restored.
func oneShot(fn storefrontFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		con := newConsole(cmd.ErrOrStderr())
		a, err := openApp(cmd, con, con)
		if err != nil {
			return err
		}
		defer a.Close()

		sf := a.Storefront()
		if _, err := sf.RestoreSession(cmd.Context()); err != nil {
			return err
		}
		return fn(cmd, args, sf, con)
	}
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	bridge := tui.NewBridge()
	a, err := openApp(cmd, bridge, bridge)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	sf := a.Storefront()
	if _, err := sf.RestoreSession(ctx); err != nil {
		return err
	}

	p := tea.NewProgram(
		tui.New(ctx, sf, bridge.Send),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	bridge.Bind(p.Send)

	_, err = p.Run()
	return err
}

func newProductsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List the catalog",
		Args:  cobra.NoArgs,
		RunE: oneShot(func(
			cmd *cobra.Command, _ []string, sf *service.Storefront, _ *console,
		) error {
			ps, err := sf.LoadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			printProducts(cmd.OutOrStdout(), ps)
			return nil
		}),
	}
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <text>",
		Short: "Search products by name or category",
		Args:  cobra.ExactArgs(1),
		RunE: oneShot(func(
			cmd *cobra.Command, args []string, sf *service.Storefront, _ *console,
		) error {
			ps, err := sf.Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printProducts(cmd.OutOrStdout(), ps)
			return nil
		}),
	}
}

func newLoginCmd() *cobra.Command {
	var f form.Login
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Args:  cobra.NoArgs,
		RunE: oneShot(func(
			cmd *cobra.Command, _ []string, sf *service.Storefront, _ *console,
		) error {
			sess, err := sf.Login(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s, balance %s\n",
				sess.Username, money(sess.Balance))
			return nil
		}),
	}
	cmd.Flags().StringVarP(&f.Username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&f.Password, "password", "p", "", "password")
	return cmd
}

func newRegisterCmd() *cobra.Command {
	var f form.Register
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: oneShot(func(
			cmd *cobra.Command, _ []string, sf *service.Storefront, _ *console,
		) error {
			return sf.Register(cmd.Context(), f)
		}),
	}
	cmd.Flags().StringVarP(&f.Username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&f.Password, "password", "p", "", "password")
	cmd.Flags().StringVar(&f.ConfirmPassword, "confirm", "", "password confirmation")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the session",
		Args:  cobra.NoArgs,
		RunE: oneShot(func(
			cmd *cobra.Command, _ []string, sf *service.Storefront, _ *console,
		) error {
			return sf.Logout(cmd.Context())
		}),
	}
}

func newCartCmd() *cobra.Command {
	show := func(
		cmd *cobra.Command, _ []string, sf *service.Storefront, _ *console,
	) error {
		if sf.Session().IsZero() {
			return service.ErrUnauthenticated
		}
		if _, err := sf.Refresh(cmd.Context()); err != nil {
			return err
		}
		printCart(cmd.OutOrStdout(), sf.Cart())
		return nil
	}

	cart := &cobra.Command{
		Use:   "cart",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE:  oneShot(show),
	}

	// then refreshes the cart, runs fn and shows the result.
	then := func(fn func(*cobra.Command, []string, *service.Storefront) error) storefrontFunc {
		return func(
			cmd *cobra.Command, args []string, sf *service.Storefront, _ *console,
		) error {
			if _, err := sf.Refresh(cmd.Context()); err != nil {
				return err
			}
			if err := fn(cmd, args, sf); err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), sf.Cart())
			return nil
		}
	}

	cart.AddCommand(
		&cobra.Command{
			Use:   "add <product-id>",
			Short: "Put one unit of a product into the cart",
			Args:  cobra.ExactArgs(1),
			RunE: oneShot(then(func(cmd *cobra.Command, args []string, sf *service.Storefront) error {
				_, err := sf.AddToCart(cmd.Context(), args[0])
				return err
			})),
		},
		&cobra.Command{
			Use:   "inc <product-id>",
			Short: "Add one more unit",
			Args:  cobra.ExactArgs(1),
			RunE: oneShot(then(func(cmd *cobra.Command, args []string, sf *service.Storefront) error {
				return sf.Increment(cmd.Context(), args[0])
			})),
		},
		&cobra.Command{
			Use:   "dec <product-id>",
			Short: "Remove one unit; the last one removes the product",
			Args:  cobra.ExactArgs(1),
			RunE: oneShot(then(func(cmd *cobra.Command, args []string, sf *service.Storefront) error {
				return sf.Decrement(cmd.Context(), args[0])
			})),
		},
		&cobra.Command{
			Use:   "set <product-id> <qty>",
			Short: "Set the quantity; 0 removes the product",
			Args:  cobra.ExactArgs(2),
			RunE: oneShot(then(func(cmd *cobra.Command, args []string, sf *service.Storefront) error {
				qty, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("invalid quantity %q: %w", args[1], err)
				}
				return sf.SetQuantity(cmd.Context(), args[0], qty)
			})),
		},
	)
	return cart
}

func newCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Show the order details of the cart",
		Args:  cobra.NoArgs,
		RunE: oneShot(func(
			cmd *cobra.Command, _ []string, sf *service.Storefront, con *console,
		) error {
			if _, err := sf.Refresh(cmd.Context()); err != nil {
				return err
			}
			if err := sf.Checkout(cmd.Context()); err != nil {
				return err
			}
			if con.Last().To != domain.RouteCheckout {
				return fmt.Errorf("checkout was not reached")
			}

			summary := cartview.NewSummary(sf.Cart().Items())
			printCart(cmd.OutOrStdout(), summary)
			printSummary(cmd.OutOrStdout(), summary.Summary())
			return nil
		}),
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cfg.Print(cmd.OutOrStdout())
			return nil
		},
	}
}
