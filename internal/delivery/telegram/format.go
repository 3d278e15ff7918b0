package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
)

// Telegram xabar uzunligi chegarasi
const maxMessageLen = 4000

const (
	cbAdd       = "add"
	cbProduct   = "product"
	cbCurrency  = "cur"
	cbDeleteYes = "del_yes"
	cbDeleteNo  = "del_no"
)

// PriceFormatter narxlarni formatlash va valyuta jadvali
type PriceFormatter interface {
	MustFormat(amount float64, code entity.CurrencyCode) string
	Currencies() []entity.Currency
}

// sessionID maps a Telegram user to a storefront session
func sessionID(userID int64) string {
	return "tg-" + strconv.FormatInt(userID, 10)
}

func callbackData(action string, arg any) string {
	return fmt.Sprintf("%s:%v", action, arg)
}

func parseCallback(data string) (action, arg string) {
	action, arg, _ = strings.Cut(data, ":")
	return action, arg
}

// parseLine converts a 1-based cart line number to an index
func parseLine(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("line must be a number from the cart list")
	}
	return n - 1, nil
}

// parseStockArg "+5"/"-1" is a delta, a bare number sets the stock
func parseStockArg(arg string) (value int, isDelta bool, err error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return 0, false, fmt.Errorf("stock value is required")
	}
	isDelta = arg[0] == '+' || arg[0] == '-'
	value, err = strconv.Atoi(arg)
	if err != nil {
		return 0, false, fmt.Errorf("invalid stock value %q", arg)
	}
	return value, isDelta, nil
}

// parseRegistration name|email|phone|password|confirm
func parseRegistration(args string) (entity.Registration, error) {
	parts := strings.Split(args, "|")
	if len(parts) != 5 {
		return entity.Registration{}, fmt.Errorf("usage: /register name|email|phone|password|password")
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return entity.Registration{
		Name:            parts[0],
		Email:           parts[1],
		PhoneNumber:     parts[2],
		Password:        parts[3],
		ConfirmPassword: parts[4],
	}, nil
}

func stockLabel(p entity.Product) string {
	switch p.StockStatus() {
	case entity.StockOut:
		return "Out of Stock"
	case entity.StockLow:
		return fmt.Sprintf("In Stock (Only %d left!)", p.Stock)
	default:
		return "In Stock"
	}
}

func formatProductLine(p entity.Product, price string) string {
	line := fmt.Sprintf("#%d %s - %s", p.ID, p.Name, price)
	if !p.InStock() {
		line += " (out of stock)"
	}
	return line
}

// formatProductList ro'yxatni limit bilan chiqarish
func formatProductList(title string, products []entity.Product, prices PriceFormatter, code entity.CurrencyCode, limit int) string {
	if len(products) == 0 {
		return "No products found matching your criteria. Try /clear to reset filters."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d)\n\n", title, len(products))
	for i, p := range products {
		if limit > 0 && i >= limit {
			fmt.Fprintf(&b, "\n...and %d more. Narrow it down with /catalog <text>.", len(products)-limit)
			break
		}
		b.WriteString(formatProductLine(p, prices.MustFormat(p.Price, code)))
		b.WriteString("\n")
	}
	b.WriteString("\n/product <id> for details, /add <id> to buy")
	return b.String()
}

func formatProductDetail(d *entity.ProductDetail, price string) string {
	p := d.Product
	var b strings.Builder
	fmt.Fprintf(&b, "%s\nSKU: %s\n", p.Name, p.SKU)
	if d.Brand != nil {
		fmt.Fprintf(&b, "Brand: %s\n", d.Brand.Name)
	}
	if d.Category != nil {
		fmt.Fprintf(&b, "Category: %s\n", d.Category.Name)
	}
	fmt.Fprintf(&b, "Price: %s\n%s\n", price, stockLabel(p))
	if len(p.CompatibleModels) > 0 {
		fmt.Fprintf(&b, "Fits: %s\n", strings.Join(p.CompatibleModels, ", "))
	}
	if p.Description != "" {
		fmt.Fprintf(&b, "\n%s", p.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatCart numbers lines from 1
func formatCart(v entity.CartView, prices PriceFormatter, code entity.CurrencyCode) string {
	if v.Empty {
		return "Your cart is empty. Browse parts with /catalog."
	}

	money := func(amount float64) string { return prices.MustFormat(amount, code) }

	var b strings.Builder
	b.WriteString("Your cart\n\n")
	for i, l := range v.Lines {
		fmt.Fprintf(&b, "%d. %s x%d = %s\n", i+1, l.Product.Name, l.Quantity, money(l.LineTotal()))
	}
	fmt.Fprintf(&b, "\nItems: %d\nSubtotal: %s\nTax: %s\nTotal: %s\n",
		v.Totals.ItemCount, money(v.Totals.Subtotal), money(v.Totals.Tax), money(v.Totals.Total))
	b.WriteString("\n/qty <line> <n>, /remove <line>, /checkout <address>")
	return b.String()
}

func formatOrder(o *entity.Order, prices PriceFormatter, code entity.CurrencyCode) string {
	return fmt.Sprintf("Order placed! Thank you for shopping with us.\n\nOrder: %s\nItems: %d\nTotal: %s\nShip to: %s",
		o.ID, len(o.Items), prices.MustFormat(o.Total, code), o.ShippingAddress)
}

func formatCatalogInfo(info entity.CatalogInfo, inventoryValue string, actions []entity.AdminAction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dashboard\n\nProducts: %d\nBrands: %d\nCategories: %d\nOut of stock: %d\nInventory value: %s\n",
		info.Products, info.Brands, info.Categories, info.OutOfStock, inventoryValue)
	if len(actions) > 0 {
		b.WriteString("\nRecent actions:\n")
		for _, a := range actions {
			fmt.Fprintf(&b, "%s %s %s\n", a.Timestamp.Format("01-02 15:04"), a.Action, a.Details)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func productKeyboard(p entity.Product) tgbotapi.InlineKeyboardMarkup {
	row := []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("Details", callbackData(cbProduct, p.ID)),
	}
	if p.InStock() {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("Add to cart", callbackData(cbAdd, p.ID)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

func currencyKeyboard(currencies []entity.Currency) tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(currencies))
	for _, c := range currencies {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(c.Label, callbackData(cbCurrency, c.Code)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

func deleteKeyboard(id int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Yes, delete", callbackData(cbDeleteYes, id)),
		tgbotapi.NewInlineKeyboardButtonData("No", callbackData(cbDeleteNo, id)),
	))
}

// userMessage xatoni foydalanuvchiga tushunarli matnga aylantirish
func userMessage(err error) string {
	switch {
	case errors.Is(err, entity.ErrOutOfStock):
		return "Sorry, this item is out of stock."
	case errors.Is(err, entity.ErrProductNotFound):
		return "Product not found."
	case errors.Is(err, entity.ErrCartLineNotFound):
		return "That line is not in your cart. Check /cart."
	case errors.Is(err, entity.ErrEmptyCart):
		return "Your cart is empty."
	case errors.Is(err, entity.ErrLoginRequired):
		return "Please /login first."
	case errors.Is(err, entity.ErrForbidden):
		return "This command is for admins only."
	case errors.Is(err, entity.ErrPasswordMismatch):
		return "Passwords do not match."
	case errors.Is(err, entity.ErrInvalidEmail):
		return "Email is required."
	case errors.Is(err, entity.ErrInvalidAddress):
		return "Shipping address is required: /checkout <address>"
	case errors.Is(err, entity.ErrUnsupportedCurrency):
		return "Unsupported currency. Use /currency to pick one."
	case errors.Is(err, entity.ErrAdvisorDisabled):
		return "The parts advisor is not available right now."
	case errors.Is(err, entity.ErrEmptyImport):
		return "No products found in the spreadsheet."
	case errors.Is(err, entity.ErrInvalidProduct),
		errors.Is(err, entity.ErrInvalidName),
		errors.Is(err, entity.ErrEmptyQuestion):
		return err.Error()
	case isQuotaError(err):
		return "The advisor is busy, please try again in a minute."
	default:
		return "Something went wrong, please try again."
	}
}

func isQuotaError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "quota") || strings.Contains(msg, "retry in") || strings.Contains(msg, "rate limit")
}

func truncateString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
