package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/example/storefront-client/internal/checkout"
	"github.com/example/storefront-client/internal/config"
	"github.com/example/storefront-client/internal/domain/cart"
	"github.com/example/storefront-client/internal/domain/order"
	"github.com/example/storefront-client/internal/gateway"
	"github.com/example/storefront-client/internal/notification"
	"github.com/example/storefront-client/internal/payment"
	"github.com/example/storefront-client/internal/session"
	"github.com/example/storefront-client/internal/storage"
)

// lazyTokens breaks the construction cycle between the gateway client and the
// session store: the client needs a token source before the session store
// that backs it exists.
type lazyTokens struct {
	sessions *session.Store
}

func (l *lazyTokens) Token() string {
	if l.sessions == nil {
		return ""
	}
	return l.sessions.Token()
}

// app holds the wired client stack for one invocation.
type app struct {
	cfg      config.Config
	client   *gateway.Client
	sessions *session.Store
	guard    *session.Guard
	carts    *cart.Store
	cartDisk *storage.FileCartStore
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	a, err := newApp(cfg)
	if err != nil {
		log.Fatalf("[CLI] startup failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		if errors.Is(err, gateway.ErrSessionExpired) {
			log.Fatalf("[CLI] session expired, please log in again")
		}
		log.Fatalf("[CLI] %s: %v", os.Args[1], err)
	}
}

func newApp(cfg config.Config) (*app, error) {
	cartDisk, err := storage.NewFileCartStore(cfg.StateDir)
	if err != nil {
		return nil, err
	}
	tokenDisk, err := storage.NewFileTokenStore(cfg.StateDir)
	if err != nil {
		return nil, err
	}

	tokens := &lazyTokens{}
	client := gateway.New(cfg.APIBaseURL, &http.Client{Timeout: cfg.RequestTimeout}, tokens)
	sessions := session.NewStore(client.Users(), tokenDisk)
	tokens.sessions = sessions
	client.OnUnauthorized(sessions.Expire)

	carts := cart.NewStore()
	if snap, ok, err := cartDisk.Load(); err == nil && ok {
		state := carts.RestoreSnapshot(snap)
		log.Printf("[CLI] restored cart: %d line(s)", len(state.Items))
	}

	return &app{
		cfg:      cfg,
		client:   client,
		sessions: sessions,
		guard:    session.NewGuard(sessions, cfg.GuardTimeout),
		carts:    carts,
		cartDisk: cartDisk,
	}, nil
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.login(ctx, args)
	case "register":
		return a.register(ctx, args)
	case "logout":
		a.sessions.Logout()
		fmt.Println("signed out")
		return nil
	case "whoami":
		return a.whoami(ctx)
	case "products":
		return a.products(ctx, args)
	case "product":
		return a.product(ctx, args)
	case "cart":
		return a.cart(ctx, args)
	case "ship":
		return a.ship(args)
	case "pay-method":
		return a.payMethod(args)
	case "checkout":
		return a.checkout(ctx)
	case "orders":
		return a.orders(ctx)
	case "order":
		return a.order(ctx, args)
	case "admin":
		return a.admin(ctx, args)
	case "pay":
		return a.pay(ctx, args)
	case "notifications":
		return a.notifications(ctx, args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

// persistCart writes the cart snapshot after a mutation. A failed write is
// logged, not fatal; the in-memory cart is still correct for this run.
func (a *app) persistCart() {
	if err := a.cartDisk.Save(a.carts.Snapshot()); err != nil {
		log.Printf("[CLI] failed to persist cart: %v", err)
	}
}

// requireUser runs the route guard the storefront pages run.
func (a *app) requireUser(ctx context.Context) error {
	if a.guard.RequireUser(ctx) != session.Allow {
		return errors.New("not signed in, run: shopctl login")
	}
	return nil
}

// ============================================
// Session Commands
// ============================================

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	_ = fs.Parse(args)
	if *email == "" || *password == "" {
		return errors.New("usage: shopctl login -email <email> -password <password>")
	}

	user, err := a.sessions.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("signed in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	_ = fs.Parse(args)
	if *name == "" || *email == "" || *password == "" {
		return errors.New("usage: shopctl register -name <name> -email <email> -password <password>")
	}

	user, err := a.sessions.Register(ctx, *name, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("account created, signed in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	if err := a.requireUser(ctx); err != nil {
		return err
	}
	u := a.sessions.Current()
	role := "customer"
	if u.IsAdmin {
		role = "admin"
	}
	fmt.Printf("%s <%s> (%s)\n", u.Name, u.Email, role)
	return nil
}

// ============================================
// Catalog Commands
// ============================================

func (a *app) products(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	keyword := fs.String("keyword", "", "search keyword")
	category := fs.String("category", "", "filter by category")
	page := fs.Int("page", 1, "page number")
	_ = fs.Parse(args)

	result, err := a.client.Products().List(ctx, gateway.ProductQuery{
		Keyword:  *keyword,
		Category: *category,
		Page:     *page,
	})
	if err != nil {
		return err
	}

	for _, p := range result.Products {
		stock := "out of stock"
		if p.InStock() {
			stock = fmt.Sprintf("%d in stock", p.AvailableStock)
		}
		fmt.Printf("%-26s %-30s %8s  %s\n", p.ID, p.Name, p.Price.StringFixed(2), stock)
	}
	fmt.Printf("page %d/%d, %d product(s)\n", result.Page, result.Pages, result.Total)
	return nil
}

func (a *app) product(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: shopctl product <id>")
	}
	p, err := a.client.Products().Get(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s\n%s\nprice %s, %d in stock, categories %v\n",
		p.Name, p.Description, p.Price.StringFixed(2), p.AvailableStock, p.Categories)
	return nil
}

// ============================================
// Cart Commands
// ============================================

func (a *app) cart(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: shopctl cart <show|add|remove|qty|clear>")
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "show":
		a.printCart()
		return nil
	case "add":
		return a.cartAdd(ctx, rest)
	case "remove":
		if len(rest) < 1 {
			return errors.New("usage: shopctl cart remove <productID>")
		}
		a.carts.Dispatch(cart.RemoveItem{ProductID: rest[0]})
		a.persistCart()
		a.printCart()
		return nil
	case "qty":
		if len(rest) < 2 {
			return errors.New("usage: shopctl cart qty <productID> <quantity>")
		}
		qty, err := strconv.Atoi(rest[1])
		if err != nil {
			return fmt.Errorf("quantity %q is not a number", rest[1])
		}
		a.carts.Dispatch(cart.UpdateQuantity{ProductID: rest[0], Quantity: qty})
		a.persistCart()
		a.printCart()
		return nil
	case "clear":
		a.carts.Dispatch(cart.Clear{})
		a.persistCart()
		fmt.Println("cart cleared")
		return nil
	default:
		return fmt.Errorf("unknown cart subcommand %q", sub)
	}
}

func (a *app) cartAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cart add", flag.ExitOnError)
	qty := fs.Int("qty", 1, "quantity")
	_ = fs.Parse(args)
	if fs.NArg() < 1 {
		return errors.New("usage: shopctl cart add <productID> [-qty n]")
	}

	p, err := a.client.Products().Get(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	if !p.InStock() {
		return fmt.Errorf("%s is out of stock", p.Name)
	}

	a.carts.Dispatch(cart.AddItem{Product: *p, Quantity: p.ClampQuantity(*qty)})
	a.persistCart()
	a.printCart()
	return nil
}

func (a *app) printCart() {
	state := a.carts.State()
	if state.IsEmpty() {
		fmt.Println("cart is empty")
	}
	for _, item := range state.Items {
		fmt.Printf("%-26s %-30s x%-3d %8s\n",
			item.ProductID, item.Name, item.Quantity,
			item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).StringFixed(2))
	}
	t := state.Totals
	fmt.Printf("items %s  tax %s  shipping %s  total %s\n",
		t.ItemsTotal.StringFixed(2), t.Tax.StringFixed(2), t.Shipping.StringFixed(2), t.GrandTotal.StringFixed(2))
	if state.ShippingAddress != nil {
		addr := state.ShippingAddress
		fmt.Printf("ship to: %s, %s %s, %s\n", addr.Address, addr.PostalCode, addr.City, addr.Country)
	}
	if state.PaymentMethod != "" {
		fmt.Printf("pay with: %s\n", state.PaymentMethod)
	}
}

// ============================================
// Checkout Commands
// ============================================

func (a *app) ship(args []string) error {
	fs := flag.NewFlagSet("ship", flag.ExitOnError)
	address := fs.String("address", "", "street address")
	city := fs.String("city", "", "city")
	postal := fs.String("postal", "", "postal code")
	country := fs.String("country", "", "country")
	_ = fs.Parse(args)

	addr := cart.ShippingAddress{Address: *address, City: *city, PostalCode: *postal, Country: *country}
	if !addr.Complete() {
		return errors.New("usage: shopctl ship -address <a> -city <c> -postal <p> -country <co>")
	}

	a.carts.Dispatch(cart.SaveShippingAddress{Address: addr})
	a.persistCart()
	fmt.Println("shipping address saved")
	return nil
}

func (a *app) payMethod(args []string) error {
	if len(args) < 1 {
		return errors.New("usage: shopctl pay-method <method>")
	}
	a.carts.Dispatch(cart.SavePaymentMethod{Method: args[0]})
	a.persistCart()
	fmt.Printf("payment method set to %s\n", args[0])
	return nil
}

func (a *app) checkout(ctx context.Context) error {
	if err := a.requireUser(ctx); err != nil {
		return err
	}

	// Walk the checkout flow the way the storefront pages do; the sequencer
	// lands on the first step whose prerequisite is missing.
	seq := checkout.NewSequencer(a.carts)
	if entered := seq.Goto(checkout.StepPlaceOrder); entered != checkout.StepPlaceOrder {
		switch entered {
		case checkout.StepShipping:
			return errors.New("shipping address missing, run: shopctl ship")
		case checkout.StepPayment:
			return errors.New("payment method missing, run: shopctl pay-method")
		default:
			return fmt.Errorf("checkout stopped at %s", entered)
		}
	}
	if !checkout.CanPlaceOrder(a.carts.State()) {
		return checkout.ErrEmptyCart
	}

	created, err := checkout.NewService(a.carts, a.client.Orders()).PlaceOrder(ctx)
	if err != nil {
		return err
	}
	a.persistCart()

	fmt.Printf("order %s placed, total %s\n", created.ID, created.Totals.GrandTotal.StringFixed(2))
	fmt.Printf("pay it with: shopctl pay %s -number ... -name ... -exp MM/YY -cvv ... -otp ...\n", created.ID)
	return nil
}

// ============================================
// Order Commands
// ============================================

func (a *app) orders(ctx context.Context) error {
	if err := a.requireUser(ctx); err != nil {
		return err
	}
	mine, err := a.client.Orders().Mine(ctx)
	if err != nil {
		return err
	}
	for _, o := range mine {
		paid := "unpaid"
		if o.IsPaid {
			paid = "paid"
		}
		fmt.Printf("%-26s %-11s %-7s %8s  %s\n",
			o.ID, o.Status, paid, o.Totals.GrandTotal.StringFixed(2), o.CreatedAt.Format("2006-01-02"))
	}
	if len(mine) == 0 {
		fmt.Println("no orders yet")
	}
	return nil
}

func (a *app) order(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: shopctl order <id> [cancel -reason <r>]")
	}
	if err := a.requireUser(ctx); err != nil {
		return err
	}
	if len(args) > 1 && args[1] == "cancel" {
		return a.orderCancel(ctx, args[0], args[2:])
	}
	o, err := a.client.Orders().Get(ctx, args[0])
	if err != nil {
		return err
	}
	printOrder(o)
	return nil
}

func (a *app) orderCancel(ctx context.Context, id string, args []string) error {
	fs := flag.NewFlagSet("order cancel", flag.ExitOnError)
	reason := fs.String("reason", "", "cancellation reason")
	_ = fs.Parse(args)

	o, err := a.client.Orders().Get(ctx, id)
	if err != nil {
		return err
	}
	if !o.CanCancel() {
		return fmt.Errorf("order %s cannot be cancelled (status %s, paid %v)", o.ID, o.Status, o.IsPaid)
	}

	cancelled, err := a.client.Orders().Cancel(ctx, id, *reason)
	if err != nil {
		return err
	}
	fmt.Printf("order %s cancelled\n", cancelled.ID)
	return nil
}

func printOrder(o *order.Order) {
	fmt.Printf("order %s, status %s (%s)\n", o.ID, o.Status, o.Status.Severity())
	for _, item := range o.Items {
		fmt.Printf("  %-30s x%-3d %8s\n", item.Name, item.Quantity, item.LineTotal().StringFixed(2))
	}
	t := o.Totals
	fmt.Printf("items %s  tax %s  shipping %s  total %s\n",
		t.ItemsTotal.StringFixed(2), t.Tax.StringFixed(2), t.Shipping.StringFixed(2), t.GrandTotal.StringFixed(2))
	switch {
	case o.IsPaid && o.PaidAt != nil:
		fmt.Printf("paid at %s\n", o.PaidAt.Format(time.RFC3339))
	case o.ShowPayNow():
		fmt.Println("unpaid, pay with: shopctl pay " + o.ID)
	}
	if o.CanCancel() {
		fmt.Println("cancellable")
	}
}

// ============================================
// Payment Command
// ============================================

func (a *app) pay(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("pay", flag.ExitOnError)
	number := fs.String("number", "", "16-digit card number")
	name := fs.String("name", "", "name on card")
	exp := fs.String("exp", "", "expiry MM/YY")
	cvv := fs.String("cvv", "", "3-digit cvv")
	otp := fs.String("otp", "", "one-time password")
	_ = fs.Parse(args)
	if fs.NArg() < 1 {
		return errors.New("usage: shopctl pay <orderID> -number <n> -name <n> -exp <MM/YY> -cvv <c> -otp <o>")
	}
	if err := a.requireUser(ctx); err != nil {
		return err
	}

	o, err := a.client.Orders().Get(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	if !o.ShowPayNow() {
		return fmt.Errorf("order %s is not payable (status %s, paid %v)", o.ID, o.Status, o.IsPaid)
	}

	flow := payment.NewFlow(a.client.Payments(), a.client.Orders())
	flow.SetCard(payment.Card{CardNumber: *number, CardName: *name, ExpDate: *exp, CVV: *cvv})

	log.Printf("[CLI] validating card...")
	if err := flow.SubmitCard(ctx); err != nil {
		return err
	}

	flow.SetOTP(*otp)
	log.Printf("[CLI] processing payment...")
	paid, err := flow.SubmitOTP(ctx, o)
	if err != nil {
		return err
	}

	fmt.Printf("payment accepted for order %s\n", paid.ID)
	printOrder(paid)
	return nil
}

// ============================================
// Admin Commands
// ============================================

func (a *app) admin(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: shopctl admin <stats|health>")
	}
	if a.guard.RequireAdmin(ctx) != session.Allow {
		return errors.New("admin access required")
	}

	switch args[0] {
	case "stats":
		stats, err := a.client.Admin().DashboardStats(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("sales %.2f, %d product(s), %d user(s) (%d admin)\n",
			stats.TotalSales, stats.TotalProducts, stats.UserStats.TotalUsers, stats.UserStats.TotalAdmins)
		o := stats.OrderStats
		fmt.Printf("orders: %d pending, %d processing, %d shipped, %d delivered, %d cancelled\n",
			o.Pending, o.Processing, o.Shipped, o.Delivered, o.Cancelled)
		for _, p := range stats.LowStockProducts {
			fmt.Printf("low stock: %-30s %d left\n", p.Name, p.StockQuantity)
		}
		return nil
	case "health":
		report, err := a.client.Admin().Health(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("backend %s\n", report.Status)
		for _, svc := range report.Services {
			fmt.Printf("  %-16s %-10s %s\n", svc.Service, svc.Status, svc.ResponseTime)
		}
		return nil
	default:
		return fmt.Errorf("unknown admin subcommand %q", args[0])
	}
}

// ============================================
// Notification Command
// ============================================

func (a *app) notifications(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("notifications", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	_ = fs.Parse(args)
	if err := a.requireUser(ctx); err != nil {
		return err
	}

	result, err := a.client.Notifications().ListForUser(ctx, a.sessions.Current().ID, *page, 10)
	if err != nil {
		return err
	}

	inbox := notification.NewStore()
	inbox.SetAll(result.Notifications)

	for _, n := range inbox.All() {
		read := " "
		if !n.Read {
			read = "*"
		}
		fmt.Printf("%s %-26s [%s] %s: %s\n", read, n.ID, n.Type, n.Title, n.Message)
	}
	fmt.Printf("page %d/%d, %d notification(s), %d unread on this page\n",
		result.Page, result.Pages, result.Total, inbox.UnreadCount())
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: shopctl <command> [flags]

  login -email <e> -password <p>   sign in
  register -name -email -password  create an account
  logout                           sign out
  whoami                           show the signed-in user

  products [-keyword -category -page]  browse the catalog
  product <id>                         show one product

  cart show                        print the cart
  cart add <productID> [-qty n]    add a product (replaces quantity)
  cart remove <productID>          remove a line
  cart qty <productID> <n>         change a line's quantity
  cart clear                       empty the cart

  ship -address -city -postal -country   save the shipping address
  pay-method <method>                    choose a payment method
  checkout                               place the order

  orders                           list your orders
  order <id>                       show one order
  order <id> cancel -reason <r>    cancel an order
  pay <orderID> -number -name -exp -cvv -otp   pay an order

  notifications [-page]            list your notifications
  admin stats|health               back-office dashboard`)
}
